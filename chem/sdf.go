package chem

import (
	"bufio"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
	"strings"
)

const sdfTerminator = "$$$$"

/*
SDFReader reads structure file records one by one
*/
type SDFReader struct {
	sc  *bufio.Scanner
	err error
}

func NewSDFReader(r io.Reader) *SDFReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &SDFReader{sc: sc}
}

/*
Next returns the next record. A record which can not be parsed is returned
as nil molecule with nil error. io.EOF is returned after the last record
*/
func (r *SDFReader) Next() (*Molecule, error) {
	var lines []string
	eof := true
	for r.sc.Scan() {
		l := strings.TrimRight(r.sc.Text(), "\r")
		if l == sdfTerminator {
			eof = false
			break
		}
		lines = append(lines, l)
	}
	if err := r.sc.Err(); err != nil {
		return nil, zorros.Wrapf(err, "failed to read structure file: %v", err.Error())
	}
	if eof && len(strings.TrimSpace(strings.Join(lines, ""))) == 0 {
		return nil, io.EOF
	}
	return parseRecord(lines), nil
}

func parseRecord(lines []string) *Molecule {
	end := -1
	for i, l := range lines {
		if strings.HasPrefix(l, "M  END") {
			end = i
			break
		}
	}
	if end < 3 {
		return nil
	}
	m := &Molecule{Block: strings.Join(lines[:end+1], "\n")}
	for i := end + 1; i < len(lines); i++ {
		l := lines[i]
		if !strings.HasPrefix(l, ">") {
			continue
		}
		a, b := strings.Index(l, "<"), strings.LastIndex(l, ">")
		if a < 0 || b <= a {
			return nil
		}
		name := l[a+1 : b]
		var value []string
		for i+1 < len(lines) && lines[i+1] != "" {
			i++
			value = append(value, lines[i])
		}
		m.SetProp(name, strings.Join(value, "\n"))
	}
	return m
}

/*
ReadSDF reads all parsable records
*/
func ReadSDF(r io.Reader) ([]*Molecule, error) {
	var mols []*Molecule
	rd := NewSDFReader(r)
	for {
		m, err := rd.Next()
		if err == io.EOF {
			return mols, nil
		}
		if err != nil {
			return nil, err
		}
		if m != nil {
			mols = append(mols, m)
		}
	}
}

/*
WriteSDF writes molecules into the output as one structure file.
Identifier is written as smiles data item if molecule does not carry it
*/
func WriteSDF(out iokit.Output, mols []*Molecule) (err error) {
	w, err := out.Create()
	if err != nil {
		return
	}
	defer w.End()
	bw := bufio.NewWriter(w)
	for _, m := range mols {
		bw.WriteString(m.Block)
		bw.WriteString("\n")
		if m.Smiles != "" && !m.HasProp("smiles") {
			writeProp(bw, "smiles", m.Smiles)
		}
		for _, n := range m.PropNames() {
			writeProp(bw, n, m.Props[n])
		}
		bw.WriteString(sdfTerminator + "\n")
	}
	if err = bw.Flush(); err != nil {
		return zorros.Wrapf(err, "failed to write structure file: %v", err.Error())
	}
	return w.Commit()
}

func writeProp(w *bufio.Writer, name, value string) {
	w.WriteString(">  <" + name + ">\n")
	w.WriteString(value)
	w.WriteString("\n\n")
}
