package dataset

import (
	"fmt"
	"go-ml.dev/pkg/zorros/zlog"
	"gonum.org/v1/gonum/mat"
)

/*
ZeroPositives is a policy for tasks without positive examples
*/
type ZeroPositives int

const (
	// ZeroWeightPositives sets positive factor to 0, negatives still get weight 1
	ZeroWeightPositives ZeroPositives = iota
	// SkipTask leaves weights of the task unchanged
	SkipTask
)

/*
BalanceOptions of positive/negative balancing
*/
type BalanceOptions struct {
	ZeroPositives ZeroPositives
	Verbose       func(string)
}

/*
Balance returns new weights where positive and negative examples of every
task have equal total weight. Negatives get weight 1, positives get
negatives/positives. Missing labels keep zero weight.
Task having labels other than 0, 1 or Missing is left unbalanced
*/
func Balance(y, w *mat.Dense, opts BalanceOptions) *mat.Dense {
	n, m := y.Dims()
	r := mat.DenseCopyOf(w)
	for t := 0; t < m; t++ {
		var pos, neg []int
		valid := true
		for i := 0; i < n; i++ {
			switch y.At(i, t) {
			case 1:
				pos = append(pos, i)
			case 0:
				neg = append(neg, i)
			case Missing:
			default:
				valid = false
			}
			if !valid {
				break
			}
		}
		if !valid {
			zlog.Warning(fmt.Sprintf("labels must be 0/1 or %v (missing data) for balancing task %d, continuing without balancing", Missing, t))
			continue
		}
		if opts.Verbose != nil {
			opts.Verbose(fmt.Sprintf("For task %d, n_positives: %d, n_negatives: %d", t, len(pos), len(neg)))
		}
		posWeight := 0.0
		if len(pos) == 0 {
			if opts.ZeroPositives == SkipTask {
				zlog.Warning(fmt.Sprintf("task %d has no positive examples, balancing skipped", t))
				continue
			}
			zlog.Warning(fmt.Sprintf("task %d has no positive examples, negatives only are weighted", t))
		} else {
			posWeight = float64(len(neg)) / float64(len(pos))
		}
		for _, i := range pos {
			r.Set(i, t, posWeight)
		}
		for _, i := range neg {
			r.Set(i, t, 1)
		}
	}
	return r
}
