/*
Package sqlstore keeps keyed feature tables and datasets in SQLite databases.
It is the exchange format of the external featurizer
*/
package sqlstore

import (
	"database/sql"
	"encoding/binary"
	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/molprep/dataset"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"go-ml.dev/pkg/zorros/zorros"
	"math"
	"strconv"
	"strings"
)

const schema = `
CREATE TABLE IF NOT EXISTS features (
	smiles   TEXT PRIMARY KEY,
	scaffold TEXT NOT NULL DEFAULT '',
	split    TEXT NOT NULL DEFAULT '',
	shape    TEXT NOT NULL,
	data     BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS labels (
	smiles TEXT NOT NULL,
	task   TEXT NOT NULL,
	value  REAL NOT NULL,
	PRIMARY KEY (smiles, task)
);`

/*
Store is an opened SQLite feature database
*/
type Store struct {
	db *sql.DB
}

/*
Open opens or creates the database file
*/
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open feature database %v: %v", path, err.Error())
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, zorros.Wrapf(err, "failed to initialize feature database %v: %v", path, err.Error())
	}
	return &Store{db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

/*
WriteFeatures stores featurizer outputs, existing compounds are replaced
*/
func (s *Store) WriteFeatures(table dataset.FeatureTable) error {
	return s.tx(func(tx *sql.Tx) error {
		for k, r := range table {
			if err := putFeatures(tx, k, r.Scaffold, "", r.Features); err != nil {
				return err
			}
		}
		return nil
	})
}

/*
ReadFeatures loads featurizer outputs
*/
func (s *Store) ReadFeatures() (dataset.FeatureTable, error) {
	table := dataset.FeatureTable{}
	err := s.scanFeatures(func(smiles, scaffold, _ string, t fields.Tensor) {
		table[smiles] = dataset.FeatureRow{Features: t, Scaffold: scaffold}
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

/*
WriteDataset stores compounds with their labels
*/
func (s *Store) WriteDataset(ds dataset.Dataset) error {
	return s.tx(func(tx *sql.Tx) error {
		for _, k := range ds.Keys() {
			e := ds[k]
			if err := putFeatures(tx, k, e.Scaffold, e.Split, e.Features); err != nil {
				return err
			}
			if _, err := tx.Exec(`DELETE FROM labels WHERE smiles = ?`, k); err != nil {
				return zorros.Wrapf(err, "failed to replace labels of %v: %v", k, err.Error())
			}
			for t, v := range e.Labels {
				if _, err := tx.Exec(`INSERT INTO labels (smiles, task, value) VALUES (?, ?, ?)`, k, t, v); err != nil {
					return zorros.Wrapf(err, "failed to write label %v of %v: %v", t, k, err.Error())
				}
			}
		}
		return nil
	})
}

/*
ReadDataset loads compounds with their labels.
Compounds without any label get empty label set
*/
func (s *Store) ReadDataset() (dataset.Dataset, error) {
	ds := dataset.Dataset{}
	err := s.scanFeatures(func(smiles, scaffold, split string, t fields.Tensor) {
		ds[smiles] = &dataset.Entry{Features: t, Scaffold: scaffold, Split: split, Labels: map[string]float64{}}
	})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT smiles, task, value FROM labels`)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to query labels: %v", err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var smiles, task string
		var value float64
		if err = rows.Scan(&smiles, &task, &value); err != nil {
			return nil, zorros.Wrapf(err, "failed to read label: %v", err.Error())
		}
		if e, ok := ds[smiles]; ok {
			e.Labels[task] = value
		}
	}
	if err = rows.Err(); err != nil {
		return nil, zorros.Wrapf(err, "failed to read labels: %v", err.Error())
	}
	return ds, nil
}

/*
LoadFeatures reads feature table from the database file
*/
func LoadFeatures(path string) (dataset.FeatureTable, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.ReadFeatures()
}

func (s *Store) tx(f func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return zorros.Wrapf(err, "failed to begin transaction: %v", err.Error())
	}
	if err = f(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return zorros.Wrapf(err, "failed to commit transaction: %v", err.Error())
	}
	return nil
}

func putFeatures(tx *sql.Tx, smiles, scaffold, split string, t fields.Tensor) error {
	_, err := tx.Exec(
		`INSERT OR REPLACE INTO features (smiles, scaffold, split, shape, data) VALUES (?, ?, ?, ?, ?)`,
		smiles, scaffold, split, encodeShape(t.Shape), encodeData(t.Data))
	if err != nil {
		return zorros.Wrapf(err, "failed to write features of %v: %v", smiles, err.Error())
	}
	return nil
}

func (s *Store) scanFeatures(f func(smiles, scaffold, split string, t fields.Tensor)) error {
	rows, err := s.db.Query(`SELECT smiles, scaffold, split, shape, data FROM features ORDER BY smiles`)
	if err != nil {
		return zorros.Wrapf(err, "failed to query features: %v", err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var smiles, scaffold, split, shape string
		var data []byte
		if err = rows.Scan(&smiles, &scaffold, &split, &shape, &data); err != nil {
			return zorros.Wrapf(err, "failed to read features: %v", err.Error())
		}
		t, err := decode(shape, data)
		if err != nil {
			return fu.DataErrorf("malformed features of %v: %v", smiles, err.Error())
		}
		f(smiles, scaffold, split, t)
	}
	if err = rows.Err(); err != nil {
		return zorros.Wrapf(err, "failed to read features: %v", err.Error())
	}
	return nil
}

func encodeShape(shape []int) string {
	s := make([]string, len(shape))
	for i, d := range shape {
		s[i] = strconv.Itoa(d)
	}
	return strings.Join(s, ",")
}

func encodeData(a []float64) []byte {
	b := make([]byte, 8*len(a))
	for i, x := range a {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(x))
	}
	return b
}

func decode(shape string, data []byte) (t fields.Tensor, err error) {
	if shape != "" {
		for _, s := range strings.Split(shape, ",") {
			var d int
			if d, err = strconv.Atoi(s); err != nil {
				return
			}
			t.Shape = append(t.Shape, d)
		}
	}
	if len(data)%8 != 0 {
		return t, zorros.Errorf("data length %d is not a multiple of 8", len(data))
	}
	t.Data = make([]float64, len(data)/8)
	for i := range t.Data {
		t.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	if t.Volume() != len(t.Data) {
		return t, zorros.Errorf("shape %v does not match %d values", t.Shape, len(t.Data))
	}
	return
}
