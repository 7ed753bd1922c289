package dataset

import (
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"gonum.org/v1/gonum/mat"
	"math"
)

/*
Datatype selects layout of feature arrays
*/
type Datatype string

const (
	Vector Datatype = "vector" // flat features, any count of tasks
	Tensor Datatype = "tensor" // features of any shape, single task
)

func ParseDatatype(s string) (Datatype, error) {
	switch d := Datatype(s); d {
	case Vector, Tensor:
		return d, nil
	}
	return "", fu.ConfigErrorf("improper datatype `%v`", s)
}

/*
Options of dataset assembling
*/
type Options struct {
	Datatype Datatype // Vector by default
	// Binary requires every present label to be 0 or 1
	Binary bool
}

/*
Arrays are dense training arrays. Rows are compounds in ascending identifier
order, columns of Y and W are tasks in lexicographic order.
X has shape [len(Keys)] + feature shape
*/
type Arrays struct {
	Keys  []string
	Tasks []string
	X     fields.Tensor
	Y, W  *mat.Dense
}

/*
Features returns X as a matrix [samples, features]. It shares data with X
*/
func (a *Arrays) Features() *mat.Dense {
	n := len(a.Keys)
	return mat.NewDense(n, len(a.X.Data)/n, a.X.Data)
}

/*
Assemble builds dense arrays from the dataset.
Missing labels get Missing value and zero weight, present labels get weight 1
*/
func Assemble(ds Dataset, opts Options) (*Arrays, error) {
	if len(ds) == 0 {
		return nil, fu.DataErrorf("can't assemble arrays from empty dataset")
	}
	datatype := opts.Datatype
	if datatype == "" {
		datatype = Vector
	}
	if _, err := ParseDatatype(string(datatype)); err != nil {
		return nil, err
	}
	keys := ds.Keys()
	tasks := ds.Tasks()
	if len(tasks) == 0 {
		return nil, fu.DataErrorf("dataset has no labels")
	}
	if datatype == Tensor && len(tasks) != 1 {
		return nil, fu.ConfigErrorf("tensor datatype supports single task only, dataset has %d tasks", len(tasks))
	}

	sample := ds[keys[0]]
	if sample == nil || len(sample.Features.Data) == 0 {
		return nil, fu.DataErrorf("compound %v has no features", keys[0])
	}
	shape := sample.Features.Shape
	if datatype == Vector {
		shape = []int{len(sample.Features.Data)}
	}
	width := len(sample.Features.Data)

	n, m := len(keys), len(tasks)
	x := make([]float64, 0, n*width)
	y := mat.NewDense(n, m, nil)
	w := mat.NewDense(n, m, nil)
	for i, k := range keys {
		e := ds[k]
		if e == nil || len(e.Features.Data) == 0 {
			return nil, fu.DataErrorf("compound %v has no features", k)
		}
		if e.Labels == nil {
			return nil, fu.DataErrorf("compound %v has no labels", k)
		}
		if datatype == Vector && len(e.Features.Data) != width {
			return nil, fu.DataErrorf("compound %v has %d features, expected %d", k, len(e.Features.Data), width)
		}
		if datatype == Tensor && !e.Features.SameShape(sample.Features) {
			return nil, fu.DataErrorf("compound %v has features of shape %v, expected %v", k, e.Features.Shape, shape)
		}
		x = append(x, e.Features.Data...)
		for j, t := range tasks {
			v, ok := e.Labels[t]
			if !ok || v == Missing {
				y.Set(i, j, Missing)
				continue
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fu.DataErrorf("task `%v` of compound %v has invalid label %v", t, k, v)
			}
			if opts.Binary && v != 0 && v != 1 {
				return nil, fu.DataErrorf("task `%v` of compound %v has label %v, only 0/1 or %v are allowed", t, k, v, Missing)
			}
			y.Set(i, j, v)
			w.Set(i, j, 1)
		}
	}

	return &Arrays{
		Keys:  keys,
		Tasks: tasks,
		X:     fields.Tensor{Shape: append([]int{n}, shape...), Data: x},
		Y:     y,
		W:     w,
	}, nil
}
