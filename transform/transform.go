/*
Package transform normalizes feature columns and transforms label columns
of assembled arrays. Functions never modify their arguments
*/
package transform

import (
	"fmt"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/zorros/zlog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"math"
)

const (
	Normalize = "normalize"
	Log       = "log"
	OneMaxVal = "1+max-val"
)

/*
Trunc is the bound feature values are truncated to after normalization
*/
const Trunc = 10.0

/*
CheckInputs validates input transform names
*/
func CheckInputs(ops []string) error {
	for _, op := range ops {
		if op != Normalize {
			return fu.ConfigErrorf("unsupported input transform `%v`", op)
		}
	}
	return nil
}

/*
CheckOutputs validates output transform names
*/
func CheckOutputs(ops map[string][]string) error {
	for task, a := range ops {
		for _, op := range a {
			switch op {
			case Normalize, Log, OneMaxVal:
			default:
				return fu.ConfigErrorf("unsupported output transform `%v` for task `%v`", op, task)
			}
		}
	}
	return nil
}

/*
Inputs transforms feature columns of x.

Normalize touches only columns having values out of [-Trunc,Trunc]: they are
centered, scaled to unit deviation if it is not zero and truncated to
[-Trunc,Trunc]. Binary fingerprints therefore are not normalized while
real-valued descriptors are
*/
func Inputs(x *mat.Dense, ops []string) (*mat.Dense, error) {
	if err := CheckInputs(ops); err != nil {
		return nil, err
	}
	n, m := x.Dims()
	z := mat.NewDense(n, m, nil)
	col := make([]float64, n)
	for j := 0; j < m; j++ {
		mat.Col(col, j, x)
		for range ops {
			if n == 0 || (floats.Max(col) <= Trunc && floats.Min(col) >= -Trunc) {
				continue
			}
			mean, std := fu.PopMeanStd(col)
			floats.AddConst(-mean, col)
			if std != 0 {
				floats.Scale(1/std, col)
			}
			fu.Clamp(col, -Trunc, Trunc)
			if floats.Max(col) > Trunc || floats.Min(col) < -Trunc {
				return nil, fu.DataErrorf("truncation failed on feature %d", j)
			}
		}
		z.SetCol(j, col)
	}
	return z, nil
}

/*
Outputs transforms label columns of y in the order of operations declared
for every task. tasks are column names of y. Only entries having non-zero
weight in w are labels, others are left as is.

	log        natural logarithm, non-positive labels are caller's responsibility
	1+max-val  v -> 1 + max - v
	normalize  center and scale to unit deviation, skipped if deviation is 0
*/
func Outputs(y, w *mat.Dense, tasks []string, ops map[string][]string) (*mat.Dense, error) {
	if err := CheckOutputs(ops); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(tasks))
	for j, t := range tasks {
		index[t] = j
	}
	for t := range ops {
		if _, ok := index[t]; !ok {
			return nil, fu.ConfigErrorf("output transforms declared for unknown task `%v`", t)
		}
	}
	n, _ := y.Dims()
	r := mat.DenseCopyOf(y)
	col := make([]float64, n)
	for j, t := range tasks {
		mat.Col(col, j, y)
		present := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if w.At(i, j) != 0 {
				present = append(present, i)
			}
		}
		if len(present) == 0 && len(ops[t]) > 0 {
			zlog.Warning(fmt.Sprintf("task %d (%v) has no labels, output transforms skipped", j, t))
			continue
		}
		for _, op := range ops[t] {
			switch op {
			case Log:
				for _, i := range present {
					col[i] = math.Log(col[i])
				}
			case OneMaxVal:
				maxval := math.Inf(-1)
				for _, i := range present {
					maxval = math.Max(maxval, col[i])
				}
				for _, i := range present {
					col[i] = 1 + maxval - col[i]
				}
			case Normalize:
				v := make([]float64, len(present))
				for k, i := range present {
					v[k] = col[i]
				}
				mean, std := fu.PopMeanStd(v)
				if std == 0 {
					zlog.Warning(fmt.Sprintf("variance normalization skipped for task %d (%v) due to 0 stdev", j, t))
					continue
				}
				for _, i := range present {
					col[i] = (col[i] - mean) / std
				}
			}
		}
		r.SetCol(j, col)
	}
	return r, nil
}
