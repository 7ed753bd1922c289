package fu

import (
	"gonum.org/v1/gonum/stat"
	"math"
)

/*
PopMeanStd returns mean and population standard deviation of a
*/
func PopMeanStd(a []float64) (mean, std float64) {
	if len(a) == 0 {
		return math.NaN(), math.NaN()
	}
	mean = stat.Mean(a, nil)
	std = math.Sqrt(stat.Moment(2, a, nil))
	return
}

/*
Clamp limits every element of a to [lo,hi] in place
*/
func Clamp(a []float64, lo, hi float64) {
	for i, x := range a {
		if x > hi {
			a[i] = hi
		} else if x < lo {
			a[i] = lo
		}
	}
}

/*
Fnzf returns the first non-zero value or zero if all are zero
*/
func Fnzf(a ...float64) float64 {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

/*
Fnzs returns the first non-empty string
*/
func Fnzs(a ...string) string {
	for _, x := range a {
		if x != "" {
			return x
		}
	}
	return ""
}
