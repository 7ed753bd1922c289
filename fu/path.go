package fu

import (
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zorros"
	"os"
	"path/filepath"
)

/*
Layout is a processed dataset directory tree
*/
type Layout struct {
	Name string
	Root string // <out>/<name>
}

/*
DatasetLayout returns layout of the dataset name under the out folder.
Relative out (or empty) is resolved against the go-ml cache
*/
func DatasetLayout(name, out string) Layout {
	if !filepath.IsAbs(out) {
		out = iokit.CacheFile(filepath.Join("go-ml", "Datasets", out))
	}
	return Layout{Name: name, Root: filepath.Join(out, name)}
}

func (l Layout) FingerprintsDir() string { return filepath.Join(l.Root, "fingerprints") }
func (l Layout) DescriptorsDir() string  { return filepath.Join(l.Root, "descriptors") }
func (l Layout) TargetsDir() string      { return filepath.Join(l.Root, "targets") }
func (l Layout) ShardsDir() string       { return filepath.Join(l.Root, "shards") }

/*
Targets is the compressed record table path
*/
func (l Layout) Targets() string {
	return filepath.Join(l.TargetsDir(), l.Name+".jsonl.xz")
}

/*
Shard is the compressed structure file path
*/
func (l Layout) Shard() string {
	return filepath.Join(l.ShardsDir(), l.Name+"-0.sdf.xz")
}

func (l Layout) Fingerprints() string {
	return filepath.Join(l.FingerprintsDir(), l.Name+"-fingerprints.db")
}

func (l Layout) Descriptors() string {
	return filepath.Join(l.DescriptorsDir(), l.Name+"-descriptors.db")
}

/*
Create makes all dataset directories
*/
func (l Layout) Create() error {
	for _, d := range []string{l.FingerprintsDir(), l.DescriptorsDir(), l.TargetsDir(), l.ShardsDir()} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return zorros.Wrapf(err, "failed to create dataset directory %v: %v", d, err.Error())
		}
	}
	return nil
}
