package fu

import (
	"compress/gzip"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

/*
File is a local file output. Data is written into a temporary file
in the same directory and moved to the target path on Commit
*/
type File string

type fileWhole struct {
	path string
	f    *os.File
	done bool
}

func (p File) Create() (iokit.Whole, error) {
	dir := filepath.Dir(string(p))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, zorros.Wrapf(err, "failed to create directory %v: %v", dir, err.Error())
	}
	f, err := ioutil.TempFile(dir, "."+filepath.Base(string(p))+".*")
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to create file %v: %v", string(p), err.Error())
	}
	return &fileWhole{path: string(p), f: f}, nil
}

func (w *fileWhole) Write(b []byte) (int, error) {
	return w.f.Write(b)
}

func (w *fileWhole) Commit() error {
	if w.done {
		return zorros.Errorf("file %v is already committed", w.path)
	}
	if err := w.f.Close(); err != nil {
		return zorros.Wrapf(err, "failed to close file %v: %v", w.path, err.Error())
	}
	if err := os.Rename(w.f.Name(), w.path); err != nil {
		return zorros.Wrapf(err, "failed to commit file %v: %v", w.path, err.Error())
	}
	w.done = true
	return nil
}

func (w *fileWhole) End() {
	if !w.done {
		w.f.Close()
		os.Remove(w.f.Name())
		w.done = true
	}
}

/*
Xz wraps output with xz compression
*/
func Xz(out iokit.Output) iokit.Output {
	return xzOutput{out}
}

type xzOutput struct{ iokit.Output }

type xzWhole struct {
	iokit.Whole
	xw *xz.Writer
}

func (o xzOutput) Create() (iokit.Whole, error) {
	w, err := o.Output.Create()
	if err != nil {
		return nil, err
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		w.End()
		return nil, zorros.Wrapf(err, "failed to create xz writer: %v", err.Error())
	}
	return &xzWhole{w, xw}, nil
}

func (w *xzWhole) Write(b []byte) (int, error) {
	return w.xw.Write(b)
}

func (w *xzWhole) Commit() error {
	if err := w.xw.Close(); err != nil {
		return zorros.Wrapf(err, "failed to finish xz stream: %v", err.Error())
	}
	return w.Whole.Commit()
}

/*
Open opens a local file for reading, decompressing .xz and .gz files
*/
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open file %v: %v", path, err.Error())
	}
	switch {
	case strings.HasSuffix(path, ".xz"):
		r, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, zorros.Wrapf(err, "failed to read xz file %v: %v", path, err.Error())
		}
		return readCloser{r, f}, nil
	case strings.HasSuffix(path, ".gz"):
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, zorros.Wrapf(err, "failed to read gzip file %v: %v", path, err.Error())
		}
		return readCloser{r, multiCloser{r, f}}, nil
	}
	return f, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

type multiCloser []io.Closer

func (m multiCloser) Close() (err error) {
	for _, c := range m {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}
