/*
Package rows adapts delimited text, spreadsheet, serialized tabular and
structure files to uniform rows of raw fields
*/
package rows

import (
	"go-ml.dev/pkg/molprep/chem"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"io"
)

/*
Kind is a source format
*/
type Kind string

const (
	Delimited   Kind = "csv"     // tab delimited text
	Spreadsheet Kind = "xlsx"    // first sheet or Options.Sheet of a workbook
	Tabular     Kind = "tabular" // JSON lines keyed by column name, optionally xz compressed
	Structure   Kind = "sdf"     // structure data file, optionally xz/gzip compressed
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Delimited, Spreadsheet, Tabular, Structure:
		return k, nil
	}
	return "", fu.ConfigErrorf("unsupported input type `%v`", s)
}

/*
Row is a raw source row
*/
type Row interface {
	// Fields extracts raw values of declared fields keyed by field index
	Fields(names []string) (map[int]fields.Raw, error)
}

/*
Source is a stream of rows. Next returns nil row for a record failed to
parse and io.EOF after the last row
*/
type Source interface {
	Next() (Row, error)
	Close() error
}

/*
Options of opening sources
*/
type Options struct {
	Sheet   string       // spreadsheet sheet name, Sheet1 by default
	Toolkit chem.Toolkit // identifiers of structure file molecules, chem.Verbatim by default
}

/*
Open opens the file as a source of the kind
*/
func Open(path string, kind Kind, opts Options) (Source, error) {
	switch kind {
	case Delimited:
		return OpenDelimited(path)
	case Spreadsheet:
		return OpenSpreadsheet(path, fu.Fnzs(opts.Sheet, DefaultSheet))
	case Tabular:
		return OpenTabular(path)
	case Structure:
		tk := opts.Toolkit
		if tk == nil {
			tk = chem.Verbatim{}
		}
		return OpenStructures(path, tk)
	}
	return nil, fu.ConfigErrorf("unsupported input type `%v`", kind)
}

/*
Each calls f for every data row with its index in the source.
The first row is a header and always skipped, so are rows failed to parse
*/
func Each(src Source, f func(index int, row Row) error) error {
	for index := 0; ; index++ {
		row, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if index == 0 || row == nil {
			continue
		}
		if err = f(index, row); err != nil {
			return err
		}
	}
}

type sliceRow struct {
	values []string
	null   func(string) bool
}

func (r sliceRow) Fields(names []string) (map[int]fields.Raw, error) {
	m := make(map[int]fields.Raw, len(names))
	for i := range names {
		if i >= len(r.values) || (r.null != nil && r.null(r.values[i])) {
			m[i] = fields.NullRaw
		} else {
			m[i] = fields.Text(r.values[i])
		}
	}
	return m, nil
}
