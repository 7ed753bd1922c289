package fields

import (
	"go-ml.dev/pkg/molprep/fu"
	"math"
	"strconv"
	"strings"
)

/*
Type is a declared semantic type of a record field
*/
type Type string

const (
	TypeString     Type = "string"
	TypeFloat      Type = "float"
	TypeStringList Type = "list-string"
	TypeFloatList  Type = "list-float"
	TypeArray      Type = "ndarray"
)

/*
ParseType validates the declared field type name
*/
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeString, TypeFloat, TypeStringList, TypeFloatList, TypeArray:
		return t, nil
	}
	return "", fu.ConfigErrorf("unsupported field type `%v`", s)
}

/*
ParseTypes validates a list of field type names
*/
func ParseTypes(a []string) ([]Type, error) {
	r := make([]Type, len(a))
	for i, s := range a {
		t, err := ParseType(s)
		if err != nil {
			return nil, err
		}
		r[i] = t
	}
	return r, nil
}

/*
Raw is a raw field extracted from a source row.
Array is set only by sources materializing arrays themselves
*/
type Raw struct {
	Text  string
	Null  bool
	Array *Tensor
}

func Text(s string) Raw { return Raw{Text: s} }

var NullRaw = Raw{Null: true}

/*
Parse interprets raw field according to declared type.

Float fields which fail numeric coercion but contain '>', '<' or '-'
are censored or ranged measurements and become NaN. Any other malformed
number is a data error
*/
func Parse(raw Raw, t Type) (Value, error) {
	if _, err := ParseType(string(t)); err != nil {
		return Value{}, err
	}
	if raw.Null && t != TypeArray {
		return Value{}, nil
	}
	switch t {
	case TypeString:
		return StringValue(raw.Text), nil
	case TypeFloat:
		return parseFloat(raw.Text)
	case TypeStringList:
		return StringListValue(strings.Split(raw.Text, ",")), nil
	case TypeFloatList:
		parts := strings.Split(raw.Text, ",")
		r := make([]float64, len(parts))
		for i, p := range parts {
			v, err := parseFloat(p)
			if err != nil {
				return Value{}, err
			}
			r[i] = v.num
		}
		return FloatListValue(r), nil
	default: // TypeArray
		if raw.Array == nil {
			return Value{}, nil
		}
		v, err := ArrayValue(*raw.Array)
		if err != nil {
			return Value{}, fu.DataErrorf("malformed ndarray field: %v", err.Error())
		}
		return v, nil
	}
}

func parseFloat(s string) (Value, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err == nil {
		return FloatValue(f), nil
	}
	if strings.ContainsAny(s, "<>-") {
		return FloatValue(math.NaN()), nil
	}
	return Value{}, fu.DataErrorf("malformed numeric field `%v`", s)
}
