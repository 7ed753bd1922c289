/*
Package fields implements typed values of chemical record fields and
the parser converting raw source fields into them
*/
package fields

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

/*
Kind is a tag of the Value variant
*/
type Kind int

const (
	Null Kind = iota
	String
	Float
	StringList
	FloatList
	Array
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Float:
		return "float"
	case StringList:
		return "list-string"
	case FloatList:
		return "list-float"
	case Array:
		return "ndarray"
	}
	return "null"
}

/*
Tensor is a dense row-major array of any rank
*/
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

/*
MarshalJSON encodes tensor as {"shape":[...],"data":[...]}, NaN and
infinities in data are encoded as strings
*/
func (t Tensor) MarshalJSON() ([]byte, error) {
	shape, err := json.Marshal(t.Shape)
	if err != nil {
		return nil, err
	}
	b := append([]byte(`{"shape":`), shape...)
	b = append(b, `,"data":`...)
	b = appendFloats(b, t.Data)
	return append(b, '}'), nil
}

/*
UnmarshalJSON decodes tensor accepting both numbers and quoted NaN or
infinities as data elements
*/
func (t *Tensor) UnmarshalJSON(b []byte) error {
	var q struct {
		Shape []int             `json:"shape"`
		Data  []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &q); err != nil {
		return err
	}
	data := make([]float64, len(q.Data))
	for i, x := range q.Data {
		f, err := strconv.ParseFloat(strings.Trim(string(x), `" `), 64)
		if err != nil {
			return fmt.Errorf("bad tensor element %s: %v", x, err.Error())
		}
		data[i] = f
	}
	t.Shape, t.Data = q.Shape, data
	return nil
}

/*
Volume is the count of elements required by the shape
*/
func (t Tensor) Volume() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

/*
Vector makes a rank-1 tensor
*/
func Vector(a ...float64) Tensor {
	return Tensor{Shape: []int{len(a)}, Data: a}
}

/*
SameShape reports whether two tensors have identical shapes
*/
func (t Tensor) SameShape(q Tensor) bool {
	if len(t.Shape) != len(q.Shape) {
		return false
	}
	for i, d := range t.Shape {
		if q.Shape[i] != d {
			return false
		}
	}
	return true
}

/*
Value is a parsed field value. The zero Value is Null
*/
type Value struct {
	kind   Kind
	str    string
	num    float64
	strs   []string
	nums   []float64
	tensor Tensor
}

func StringValue(s string) Value       { return Value{kind: String, str: s} }
func FloatValue(f float64) Value       { return Value{kind: Float, num: f} }
func StringListValue(s []string) Value { return Value{kind: StringList, strs: s} }
func FloatListValue(f []float64) Value { return Value{kind: FloatList, nums: f} }
func ArrayValue(t Tensor) (Value, error) {
	if t.Volume() != len(t.Data) {
		return Value{}, fmt.Errorf("tensor shape %v does not match %d elements", t.Shape, len(t.Data))
	}
	return Value{kind: Array, tensor: t}, nil
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }

/*
Text returns string value, ok is false if value is not a string
*/
func (v Value) Text() (string, bool) {
	return v.str, v.kind == String
}

/*
Float returns numeric value. Null and non-numeric values are NaN
*/
func (v Value) Float() float64 {
	if v.kind == Float {
		return v.num
	}
	return math.NaN()
}

func (v Value) Strings() []string { return v.strs }
func (v Value) Floats() []float64 { return v.nums }
func (v Value) Tensor() Tensor    { return v.tensor }

func (v Value) String() string {
	switch v.kind {
	case String:
		return v.str
	case Float:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case StringList:
		return strings.Join(v.strs, ",")
	case FloatList:
		s := make([]string, len(v.nums))
		for i, x := range v.nums {
			s[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return strings.Join(s, ",")
	case Array:
		return fmt.Sprintf("ndarray%v", v.tensor.Shape)
	}
	return ""
}

/*
MarshalJSON encodes value as a plain JSON value, NaN and infinities are
encoded as strings
*/
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case String:
		return json.Marshal(v.str)
	case Float:
		return floatJSON(v.num), nil
	case StringList:
		return json.Marshal(v.strs)
	case FloatList:
		return appendFloats(nil, v.nums), nil
	case Array:
		return v.tensor.MarshalJSON()
	}
	return []byte("null"), nil
}

func appendFloats(b []byte, a []float64) []byte {
	b = append(b, '[')
	for i, x := range a {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, floatJSON(x)...)
	}
	return append(b, ']')
}

func floatJSON(x float64) []byte {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return []byte(`"` + s + `"`)
	}
	return []byte(s)
}
