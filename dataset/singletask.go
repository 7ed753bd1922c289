package dataset

import (
	"go-ml.dev/pkg/molprep/fu"
	"gonum.org/v1/gonum/mat"
	"math"
)

/*
MultitaskToSingletask splits dataset into a dataset per task. Every compound
gets into datasets of tasks it has measured labels for, carrying only that label
*/
func MultitaskToSingletask(ds Dataset) map[string]Dataset {
	tasks := ds.Tasks()
	r := make(map[string]Dataset, len(tasks))
	for _, t := range tasks {
		r[t] = Dataset{}
	}
	for k, e := range ds {
		for t, v := range e.Labels {
			if v == Missing {
				continue
			}
			q := *e
			q.Labels = map[string]float64{t: v}
			r[t][k] = &q
		}
	}
	return r
}

/*
OneHot transforms binary labels into [samples, 2] matrix.
Rows of labels other than 0 or 1 stay zero
*/
func OneHot(y []float64) *mat.Dense {
	r := mat.NewDense(len(y), 2, nil)
	for i, v := range y {
		switch v {
		case 0:
			r.Set(i, 0, 1)
		case 1:
			r.Set(i, 1, 1)
		}
	}
	return r
}

/*
LabelsToWeights computes sample weights from binary labels.
Negatives get 1, positives get floor(negatives/positives)
*/
func LabelsToWeights(y []float64) ([]float64, error) {
	npos := 0
	for _, v := range y {
		if v == 1 {
			npos++
		}
	}
	if npos == 0 {
		return nil, fu.DataErrorf("can't weight labels without positives")
	}
	posWeight := math.Floor(float64(len(y)-npos) / float64(npos))
	r := make([]float64, len(y))
	for i, v := range y {
		switch v {
		case 0:
			r[i] = 1
		case 1:
			r[i] = posWeight
		default:
			return nil, fu.DataErrorf("labels can only contain 0s or 1s, got %v", v)
		}
	}
	return r, nil
}
