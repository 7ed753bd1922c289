package rows

import (
	"encoding/csv"
	"github.com/xuri/excelize/v2"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
)

type delimited struct {
	rd *csv.Reader
	c  io.Closer
}

/*
OpenDelimited opens tab delimited text file
*/
func OpenDelimited(path string) (Source, error) {
	f, err := fu.Open(path)
	if err != nil {
		return nil, err
	}
	return NewDelimited(f, f), nil
}

/*
NewDelimited reads tab delimited rows from the reader, c is closed by Close if not nil
*/
func NewDelimited(r io.Reader, c io.Closer) Source {
	rd := csv.NewReader(r)
	rd.Comma = '\t'
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true
	return &delimited{rd, c}
}

func (s *delimited) Next() (Row, error) {
	rec, err := s.rd.Read()
	if err == io.EOF {
		return nil, err
	}
	if err != nil {
		if _, ok := err.(*csv.ParseError); ok {
			return nil, nil
		}
		return nil, zorros.Wrapf(err, "failed to read delimited text: %v", err.Error())
	}
	return sliceRow{values: rec}, nil
}

func (s *delimited) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

/*
DefaultSheet is the spreadsheet sheet read when no other is specified
*/
const DefaultSheet = "Sheet1"

type spreadsheet struct {
	f    *excelize.File
	rows *excelize.Rows
}

/*
OpenSpreadsheet opens the sheet of an xlsx workbook. Cells are read as
resolved values, empty cells are null
*/
func OpenSpreadsheet(path, sheet string) (Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open spreadsheet %v: %v", path, err.Error())
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, zorros.Wrapf(err, "failed to read sheet %v of %v: %v", sheet, path, err.Error())
	}
	return &spreadsheet{f, rows}, nil
}

func (s *spreadsheet) Next() (Row, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, zorros.Wrapf(err, "failed to read spreadsheet: %v", err.Error())
		}
		return nil, io.EOF
	}
	cols, err := s.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil
	}
	return sliceRow{values: cols, null: func(s string) bool { return s == "" }}, nil
}

func (s *spreadsheet) Close() error {
	s.rows.Close()
	return s.f.Close()
}
