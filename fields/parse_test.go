package fields

import (
	"encoding/json"
	"go-ml.dev/pkg/molprep/fu"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"math"
	"testing"
)

func Test_ParseFloat(t *testing.T) {
	for s, x := range map[string]float64{"1.5": 1.5, "-2": -2, "1e-3": 0.001, " 42 ": 42} {
		v, err := Parse(Text(s), TypeFloat)
		assert.NilError(t, err)
		assert.Equal(t, v.Kind(), Float)
		assert.Equal(t, v.Float(), x)
	}
}

func Test_ParseCensored(t *testing.T) {
	for _, s := range []string{">100", "<0.5", "10-20", "n-a"} {
		v, err := Parse(Text(s), TypeFloat)
		assert.NilError(t, err)
		assert.Equal(t, v.Kind(), Float)
		assert.Assert(t, math.IsNaN(v.Float()), s)
	}
}

func Test_ParseMalformed(t *testing.T) {
	_, err := Parse(Text("abc"), TypeFloat)
	assert.Assert(t, xerrors.Is(err, fu.ErrData))
	_, err = Parse(Text("1,x"), TypeFloatList)
	assert.Assert(t, xerrors.Is(err, fu.ErrData))
}

func Test_ParseLists(t *testing.T) {
	v, err := Parse(Text("a,b,c"), TypeStringList)
	assert.NilError(t, err)
	assert.DeepEqual(t, v.Strings(), []string{"a", "b", "c"})
	v, err = Parse(Text("1,2.5,3"), TypeFloatList)
	assert.NilError(t, err)
	assert.DeepEqual(t, v.Floats(), []float64{1, 2.5, 3})
}

func Test_ParseNull(t *testing.T) {
	for _, tp := range []Type{TypeString, TypeFloat, TypeStringList, TypeFloatList, TypeArray} {
		v, err := Parse(NullRaw, tp)
		assert.NilError(t, err)
		assert.Assert(t, v.IsNull())
	}
	v, _ := Parse(NullRaw, TypeFloat)
	assert.Assert(t, math.IsNaN(v.Float()))
}

func Test_ParseArray(t *testing.T) {
	a := Tensor{Shape: []int{2, 2}, Data: []float64{1, 2, 3, 4}}
	v, err := Parse(Raw{Array: &a}, TypeArray)
	assert.NilError(t, err)
	assert.Equal(t, v.Kind(), Array)
	assert.DeepEqual(t, v.Tensor(), a)
	_, err = Parse(Raw{Array: &Tensor{Shape: []int{3}, Data: []float64{1}}}, TypeArray)
	assert.Assert(t, xerrors.Is(err, fu.ErrData))
}

func Test_ParseType(t *testing.T) {
	_, err := ParseType("integer")
	assert.Assert(t, xerrors.Is(err, fu.ErrConfig))
	_, err = Parse(Text("1"), Type("integer"))
	assert.Assert(t, xerrors.Is(err, fu.ErrConfig))
	ts, err := ParseTypes([]string{"string", "float"})
	assert.NilError(t, err)
	assert.DeepEqual(t, ts, []Type{TypeString, TypeFloat})
}

func Test_RecordJSON(t *testing.T) {
	r := Record{
		"smiles": StringValue("CCO"),
		"ic50":   FloatValue(math.NaN()),
		"y":      FloatValue(2),
		"tags":   StringListValue([]string{"a", "b"}),
		"fp":     FloatListValue([]float64{1, math.Inf(1)}),
		"note":   Value{},
	}
	b, err := json.Marshal(r)
	assert.NilError(t, err)
	assert.Equal(t, string(b), `{"fp":[1,"+Inf"],"ic50":"NaN","note":null,"smiles":"CCO","tags":["a","b"],"y":2}`)
	assert.Equal(t, r.Smiles(), "CCO")
}

func Test_TensorJSON(t *testing.T) {
	v, err := ArrayValue(Tensor{Shape: []int{1, 3}, Data: []float64{1, math.NaN(), math.Inf(-1)}})
	assert.NilError(t, err)
	b, err := json.Marshal(Record{"img": v})
	assert.NilError(t, err)
	assert.Equal(t, string(b), `{"img":{"shape":[1,3],"data":[1,"NaN","-Inf"]}}`)
	var q Tensor
	assert.NilError(t, json.Unmarshal(b[7:len(b)-1], &q))
	assert.DeepEqual(t, q.Shape, []int{1, 3})
	assert.Equal(t, q.Data[0], 1.0)
	assert.Assert(t, math.IsNaN(q.Data[1]))
	assert.Assert(t, math.IsInf(q.Data[2], -1))
	assert.Assert(t, json.Unmarshal([]byte(`{"shape":[1],"data":["x"]}`), &q) != nil)
}
