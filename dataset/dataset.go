/*
Package dataset converts keyed compound entries into dense feature, label
and weight arrays ready to train models
*/
package dataset

import (
	"fmt"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/zorros/zlog"
	"math"
	"sort"
)

/*
Missing is the label sentinel of unmeasured task. Genuine labels never equal it
*/
const Missing = -1.0

/*
Entry is a featurized compound
*/
type Entry struct {
	Features fields.Tensor
	Labels   map[string]float64
	Scaffold string
	Split    string
}

/*
Dataset maps canonical identifiers to compound entries
*/
type Dataset map[string]*Entry

/*
Keys returns identifiers in ascending order
*/
func (ds Dataset) Keys() []string {
	keys := make([]string, 0, len(ds))
	for k := range ds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

/*
Tasks returns the union of task names sorted lexicographically
*/
func (ds Dataset) Tasks() []string {
	m := map[string]bool{}
	for _, e := range ds {
		for t := range e.Labels {
			m[t] = true
		}
	}
	r := make([]string, 0, len(m))
	for t := range m {
		r = append(r, t)
	}
	sort.Strings(r)
	return r
}

/*
Subset returns dataset containing only given keys
*/
func (ds Dataset) Subset(keys []string) Dataset {
	r := make(Dataset, len(keys))
	for _, k := range keys {
		r[k] = ds[k]
	}
	return r
}

/*
FeatureRow is a featurizer output for one compound
*/
type FeatureRow struct {
	Features fields.Tensor
	Scaffold string
}

/*
FeatureTable maps canonical identifiers to featurizer outputs
*/
type FeatureTable map[string]FeatureRow

/*
Merge joins featurized compounds with the record table. Every task field of
a record becomes a label, Null and NaN values become Missing. Records
without features are dropped
*/
func Merge(features FeatureTable, records []fields.Record, tasks []string) (Dataset, error) {
	ds := Dataset{}
	dropped := 0
	for _, r := range records {
		smiles := r.Smiles()
		ft, ok := features[smiles]
		if !ok {
			dropped++
			continue
		}
		if _, exists := ds[smiles]; exists {
			zlog.Warning("duplicate compound " + smiles + " in record table, keeping the first one")
			continue
		}
		e := &Entry{Features: ft.Features, Scaffold: ft.Scaffold, Labels: make(map[string]float64, len(tasks))}
		if s, ok := r.Hint(fields.SplitField); ok {
			e.Split = s
		}
		for _, t := range tasks {
			v := r[t]
			switch v.Kind() {
			case fields.Float:
				if math.IsNaN(v.Float()) {
					e.Labels[t] = Missing
				} else {
					e.Labels[t] = v.Float()
				}
			case fields.Null:
				e.Labels[t] = Missing
			default:
				return nil, fu.DataErrorf("task `%v` of compound %v is %v, not a number", t, smiles, v.Kind())
			}
		}
		ds[smiles] = e
	}
	if dropped > 0 {
		zlog.Warning(fmt.Sprintf("%d records have no features and are dropped", dropped))
	}
	if len(ds) == 0 {
		return nil, fu.DataErrorf("no featurized compounds in the record table")
	}
	return ds, nil
}
