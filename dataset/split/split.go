/*
Package split implements train/test partitioning of compound datasets:
uniform random, scaffold grouped and specified by the source data
*/
package split

import (
	"go-ml.dev/pkg/molprep/dataset"
	"go-ml.dev/pkg/molprep/fu"
	"math"
	"math/rand"
	"sort"
	"strings"
)

/*
Policy is a split policy name
*/
type Policy string

const (
	Random    Policy = "random"
	Scaffold  Policy = "scaffold"
	Specified Policy = "specified"
)

/*
DefaultFracTrain is the train part used when Splitter.FracTrain is zero
*/
const DefaultFracTrain = 0.8

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case Random, Scaffold, Specified:
		return p, nil
	}
	return "", fu.ConfigErrorf("improper split policy `%v`", s)
}

/*
Splitter partitions datasets into train and test subsets
*/
type Splitter struct {
	Policy    Policy
	FracTrain float64 // 0.8 if zero
	Seed      int64   // random policy seed
}

/*
Split partitions the dataset according to the policy
*/
func (s Splitter) Split(ds dataset.Dataset) (train, test dataset.Dataset, err error) {
	frac := fu.Fnzf(s.FracTrain, DefaultFracTrain)
	if frac < 0 || frac > 1 {
		return nil, nil, fu.ConfigErrorf("train fraction %v is out of [0,1]", frac)
	}
	switch s.Policy {
	case Random:
		train, test = RandomSplit(ds, frac, s.Seed)
	case Scaffold:
		train, test = ScaffoldSplit(ds, frac)
	case Specified:
		train, test, err = SpecifiedSplit(ds)
	default:
		err = fu.ConfigErrorf("improper split policy `%v`", s.Policy)
	}
	return
}

/*
RandomSplit shuffles identifiers with the seed and puts the first
floor(frac*N) into train
*/
func RandomSplit(ds dataset.Dataset, frac float64, seed int64) (train, test dataset.Dataset) {
	keys := ds.Keys()
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	cutoff := int(math.Floor(frac * float64(len(keys))))
	return ds.Subset(keys[:cutoff]), ds.Subset(keys[cutoff:])
}

/*
ScaffoldSplit puts the largest scaffold groups into train until the next
group would make train larger than frac*N. That group and all the following
go to test. A scaffold group is never divided
*/
func ScaffoldSplit(ds dataset.Dataset, frac float64) (train, test dataset.Dataset) {
	size := frac * float64(len(ds))
	train, test = dataset.Dataset{}, dataset.Dataset{}
	full := false
	for _, g := range GroupByScaffold(ds) {
		if !full && float64(len(train)+len(g.Keys)) > size {
			full = true
		}
		dst := train
		if full {
			dst = test
		}
		for _, k := range g.Keys {
			dst[k] = ds[k]
		}
	}
	return
}

/*
SpecifiedSplit uses split annotations of compounds, train and valid go to
train, test goes to test
*/
func SpecifiedSplit(ds dataset.Dataset) (train, test dataset.Dataset, err error) {
	train, test = dataset.Dataset{}, dataset.Dataset{}
	for _, k := range ds.Keys() {
		e := ds[k]
		switch strings.ToLower(e.Split) {
		case "train", "valid":
			train[k] = e
		case "test":
			test[k] = e
		case "":
			return nil, nil, fu.ConfigErrorf("missing required split information for compound %v", k)
		default:
			return nil, nil, fu.ConfigErrorf("improper split `%v` specified for compound %v", e.Split, k)
		}
	}
	return
}

/*
Group is a set of compounds sharing one scaffold
*/
type Group struct {
	Scaffold string
	Keys     []string
}

/*
GroupByScaffold groups compounds by scaffold. Groups are ordered by
descending size, groups of equal size keep order of their first compound
in ascending identifier order
*/
func GroupByScaffold(ds dataset.Dataset) []Group {
	index := map[string]int{}
	var groups []Group
	for _, k := range ds.Keys() {
		s := ds[k].Scaffold
		i, ok := index[s]
		if !ok {
			i = len(groups)
			index[s] = i
			groups = append(groups, Group{Scaffold: s})
		}
		groups[i].Keys = append(groups[i].Keys, k)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Keys) > len(groups[j].Keys)
	})
	return groups
}
