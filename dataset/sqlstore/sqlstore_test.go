package sqlstore

import (
	"go-ml.dev/pkg/molprep/dataset"
	"go-ml.dev/pkg/molprep/fields"
	"gotest.tools/assert"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func tempdb(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "molprep")
	assert.NilError(t, err)
	return filepath.Join(dir, "features.db"), func() { os.RemoveAll(dir) }
}

func Test_Features(t *testing.T) {
	path, cleanup := tempdb(t)
	defer cleanup()
	table := dataset.FeatureTable{
		"CCO":       {Features: fields.Vector(1, 0, 1), Scaffold: ""},
		"c1ccccc1O": {Features: fields.Tensor{Shape: []int{1, 3}, Data: []float64{0.5, -2, 3}}, Scaffold: "c1ccccc1"},
	}
	s, err := Open(path)
	assert.NilError(t, err)
	assert.NilError(t, s.WriteFeatures(table))
	assert.NilError(t, s.Close())

	q, err := LoadFeatures(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, q, table)
}

func Test_Dataset(t *testing.T) {
	path, cleanup := tempdb(t)
	defer cleanup()
	ds := dataset.Dataset{
		"A": {Features: fields.Vector(1, 2), Labels: map[string]float64{"t1": 1, "t2": dataset.Missing}, Scaffold: "s", Split: "train"},
		"B": {Features: fields.Vector(3, 4), Labels: map[string]float64{"t1": 0}, Split: "test"},
	}
	s, err := Open(path)
	assert.NilError(t, err)
	defer s.Close()
	assert.NilError(t, s.WriteDataset(ds))
	// rewriting replaces labels
	ds["B"].Labels = map[string]float64{"t2": 1}
	assert.NilError(t, s.WriteDataset(ds))

	q, err := s.ReadDataset()
	assert.NilError(t, err)
	assert.DeepEqual(t, q, ds)
}
