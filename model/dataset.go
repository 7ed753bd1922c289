package model

import (
	"go-ml.dev/pkg/molprep/dataset"
	"go-ml.dev/pkg/molprep/dataset/sqlstore"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/molprep/target"
)

/*
Dataset is a prepared dataset to feed hungry models
*/
type Dataset struct {
	Train *dataset.Arrays
	Test  *dataset.Arrays
}

/*
Tasks are label columns of both Train and Test
*/
func (d *Dataset) Tasks() []string {
	return d.Train.Tasks
}

/*
LoadDataset joins the record table of the layout with the feature table.
Tasks are record fields used as labels, all float fields except
identifiers are used if tasks is empty
*/
func LoadDataset(layout fu.Layout, features string, tasks ...string) (dataset.Dataset, error) {
	t, err := target.ReadRecords(layout.Targets())
	if err != nil {
		return nil, err
	}
	ft, err := sqlstore.LoadFeatures(features)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		for i, c := range t.Columns {
			if t.Types[i] == fields.TypeFloat {
				tasks = append(tasks, c)
			}
		}
	}
	if len(tasks) == 0 {
		return nil, fu.ConfigErrorf("record table has no float fields to use as tasks")
	}
	return dataset.Merge(ft, t.Records, tasks)
}
