package rows

import (
	"go-ml.dev/pkg/molprep/chem"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
)

type structures struct {
	rd *chem.SDFReader
	tk chem.Toolkit
	c  io.Closer
}

/*
OpenStructures opens structure data file
*/
func OpenStructures(path string, tk chem.Toolkit) (Source, error) {
	f, err := fu.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStructures(f, f, tk), nil
}

/*
NewStructures reads molecules from the reader, c is closed by Close if not nil
*/
func NewStructures(r io.Reader, c io.Closer, tk chem.Toolkit) Source {
	return &structures{chem.NewSDFReader(r), tk, c}
}

/*
Next returns the next parsed molecule. Unparsable records are dropped
here and do not take a row index
*/
func (s *structures) Next() (Row, error) {
	for {
		m, err := s.rd.Next()
		if err != nil {
			return nil, err
		}
		if m != nil {
			return MoleculeRow{m, s.tk}, nil
		}
	}
}

func (s *structures) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

/*
MoleculeRow is a row of a structure file
*/
type MoleculeRow struct {
	Molecule *chem.Molecule
	Toolkit  chem.Toolkit
}

/*
Fields reads data items of the molecule. Structure files do not store
identifiers, so the smiles field is generated by the toolkit
*/
func (r MoleculeRow) Fields(names []string) (map[int]fields.Raw, error) {
	m := make(map[int]fields.Raw, len(names))
	for i, n := range names {
		switch {
		case n == fields.SmilesField:
			s, err := r.Toolkit.Canonical(r.Molecule)
			if err != nil {
				return nil, zorros.Wrapf(err, "failed to generate smiles: %v", err.Error())
			}
			m[i] = fields.Text(s)
		case r.Molecule.HasProp(n):
			m[i] = fields.Text(r.Molecule.Prop(n))
		default:
			m[i] = fields.NullRaw
		}
	}
	return m, nil
}
