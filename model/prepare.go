package model

import (
	"fmt"
	"go-ml.dev/pkg/molprep/dataset"
	"go-ml.dev/pkg/molprep/dataset/split"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/molprep/transform"
	"go-ml.dev/pkg/zorros/zorros"
	"golang.org/x/xerrors"
)

/*
Preprocessing turns a featurized dataset into train and test arrays
*/
type Preprocessing struct {
	Split    split.Splitter
	Datatype dataset.Datatype // dataset.Vector by default
	// Binary requires labels to be 0/1 or missing
	Binary bool
	// WeightPositives balances positive and negative examples of every task
	WeightPositives bool
	ZeroPositives   dataset.ZeroPositives
	// InputTransforms are applied to every feature column, vector datatype only
	InputTransforms []string
	// OutputTransforms map task names to ordered label transforms
	OutputTransforms map[string][]string
	Verbose          func(string)
}

func (p Preprocessing) check() error {
	if err := transform.CheckInputs(p.InputTransforms); err != nil {
		return err
	}
	if err := transform.CheckOutputs(p.OutputTransforms); err != nil {
		return err
	}
	if p.Datatype == dataset.Tensor && len(p.InputTransforms) > 0 {
		return fu.ConfigErrorf("input transforms are not supported for tensor datatype")
	}
	return nil
}

/*
Prepare splits the dataset, assembles arrays of both parts and transforms them
*/
func (p Preprocessing) Prepare(ds dataset.Dataset) (*Dataset, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	train, test, err := p.Split.Split(ds)
	if err != nil {
		return nil, err
	}
	p.verbose("split %v: %d train, %d test", p.Split.Policy, len(train), len(test))
	r := &Dataset{}
	if r.Train, err = p.arrays(train); err != nil {
		return nil, xerrors.Errorf("train subset: %w", err)
	}
	if r.Test, err = p.arrays(test); err != nil {
		return nil, xerrors.Errorf("test subset: %w", err)
	}
	if !sameTasks(r.Train.Tasks, r.Test.Tasks) {
		return nil, fu.DataErrorf("train tasks %v differ from test tasks %v", r.Train.Tasks, r.Test.Tasks)
	}
	return r, nil
}

/*
LuckyPrepare prepares dataset and panics on error
*/
func (p Preprocessing) LuckyPrepare(ds dataset.Dataset) *Dataset {
	r, err := p.Prepare(ds)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

func (p Preprocessing) arrays(ds dataset.Dataset) (*dataset.Arrays, error) {
	a, err := dataset.Assemble(ds, dataset.Options{Datatype: p.Datatype, Binary: p.Binary})
	if err != nil {
		return nil, err
	}
	if p.WeightPositives {
		a.W = dataset.Balance(a.Y, a.W, dataset.BalanceOptions{ZeroPositives: p.ZeroPositives, Verbose: p.Verbose})
	}
	if len(p.InputTransforms) > 0 {
		x, err := transform.Inputs(a.Features(), p.InputTransforms)
		if err != nil {
			return nil, err
		}
		a.X.Data = x.RawMatrix().Data
	}
	if len(p.OutputTransforms) > 0 {
		if a.Y, err = transform.Outputs(a.Y, a.W, a.Tasks, p.OutputTransforms); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (p Preprocessing) verbose(f string, a ...interface{}) {
	if p.Verbose != nil {
		p.Verbose(fmt.Sprintf(f, a...))
	}
}

func sameTasks(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
