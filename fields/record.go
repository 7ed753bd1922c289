package fields

/*
Record maps field names to parsed values of one compound observation
*/
type Record map[string]Value

const (
	SmilesField   = "smiles"
	ScaffoldField = "scaffold"
	SplitField    = "split"
)

/*
Smiles returns the canonical chemical identifier of the record
*/
func (r Record) Smiles() string {
	s, _ := r[SmilesField].Text()
	return s
}

/*
Hint returns string field or empty string if the field is absent or not a string
*/
func (r Record) Hint(name string) (string, bool) {
	v, ok := r[name]
	if !ok {
		return "", false
	}
	return v.Text()
}
