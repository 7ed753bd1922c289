package rows

import (
	"bufio"
	"bytes"
	"encoding/json"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/zorros/zorros"
	"io"
	"strings"
)

type tabular struct {
	sc *bufio.Scanner
	c  io.Closer
}

/*
OpenTabular opens JSON lines table. Every line is an object keyed by column name
*/
func OpenTabular(path string) (Source, error) {
	f, err := fu.Open(path)
	if err != nil {
		return nil, err
	}
	return NewTabular(f, f), nil
}

/*
NewTabular reads JSON lines rows from the reader, c is closed by Close if not nil
*/
func NewTabular(r io.Reader, c io.Closer) Source {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	return &tabular{sc, c}
}

func (s *tabular) Next() (Row, error) {
	for s.sc.Scan() {
		line := bytes.TrimSpace(s.sc.Bytes())
		if len(line) == 0 {
			continue
		}
		row := TabularRow{}
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, nil
		}
		return row, nil
	}
	if err := s.sc.Err(); err != nil {
		return nil, zorros.Wrapf(err, "failed to read table: %v", err.Error())
	}
	return nil, io.EOF
}

func (s *tabular) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

/*
TabularRow is a table row keyed by column name
*/
type TabularRow map[string]json.RawMessage

// re-keys columns by declared field order
func (r TabularRow) Fields(names []string) (map[int]fields.Raw, error) {
	m := make(map[int]fields.Raw, len(names))
	for i, n := range names {
		raw, err := decodeRaw(r[n])
		if err != nil {
			return nil, fu.DataErrorf("malformed value of column `%v`: %v", n, err.Error())
		}
		m[i] = raw
	}
	return m, nil
}

func decodeRaw(b json.RawMessage) (fields.Raw, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return fields.NullRaw, nil
	}
	switch b[0] {
	case '"':
		var s string
		err := json.Unmarshal(b, &s)
		return fields.Text(s), err
	case '[':
		var a []json.RawMessage
		if err := json.Unmarshal(b, &a); err != nil {
			return fields.Raw{}, err
		}
		s := make([]string, len(a))
		for i, x := range a {
			q, err := decodeRaw(x)
			if err != nil {
				return fields.Raw{}, err
			}
			s[i] = q.Text
		}
		return fields.Text(strings.Join(s, ",")), nil
	case '{':
		var t fields.Tensor
		if err := json.Unmarshal(b, &t); err != nil {
			return fields.Raw{}, err
		}
		return fields.Raw{Array: &t}, nil
	}
	// numbers and booleans
	return fields.Text(string(b)), nil
}
