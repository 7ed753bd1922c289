/*
Package chem defines the boundary to chemistry toolkits: molecules as
structure file records, canonical identifiers and external featurization
*/
package chem

import (
	"go-ml.dev/pkg/zorros/zorros"
	"sort"
	"strings"
)

/*
Molecule is a structure record. Block is the connection table (mol block)
without data items, Props are named data items
*/
type Molecule struct {
	Smiles string
	Block  string
	Props  map[string]string
	order  []string
}

func (m *Molecule) HasProp(name string) bool {
	_, ok := m.Props[name]
	return ok
}

func (m *Molecule) Prop(name string) string {
	return m.Props[name]
}

/*
SetProp sets data item keeping the insertion order
*/
func (m *Molecule) SetProp(name, value string) {
	if m.Props == nil {
		m.Props = map[string]string{}
	}
	if _, ok := m.Props[name]; !ok {
		m.order = append(m.order, name)
	}
	m.Props[name] = value
}

/*
PropNames returns data item names in insertion order
*/
func (m *Molecule) PropNames() []string {
	if len(m.order) == len(m.Props) {
		return m.order
	}
	r := make([]string, 0, len(m.Props))
	for k := range m.Props {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

/*
Toolkit is a chemistry toolkit converting between identifiers and molecules
*/
type Toolkit interface {
	// FromSmiles parses identifier into a molecule
	FromSmiles(smiles string) (*Molecule, error)
	// Canonical returns canonical identifier of the molecule
	Canonical(m *Molecule) (string, error)
}

/*
Verbatim is a toolkit trusting identifiers to be canonical already.
Structure file molecules are expected to carry a smiles data item
*/
type Verbatim struct{}

func (Verbatim) FromSmiles(smiles string) (*Molecule, error) {
	s := strings.TrimSpace(smiles)
	if s == "" {
		return nil, zorros.Errorf("empty smiles")
	}
	m := &Molecule{Smiles: s, Block: emptyBlock(s)}
	return m, nil
}

func (Verbatim) Canonical(m *Molecule) (string, error) {
	if m.Smiles != "" {
		return m.Smiles, nil
	}
	for _, n := range []string{"smiles", "SMILES", "Smiles"} {
		if s, ok := m.Props[n]; ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), nil
		}
	}
	return "", zorros.Errorf("molecule has no smiles data item")
}

// no atoms, the identifier is kept in the header line
func emptyBlock(title string) string {
	return title + "\n  molprep\n\n  0  0  0  0  0  0  0  0  0  0999 V2000\nM  END"
}
