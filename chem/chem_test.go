package chem

import (
	"bytes"
	"context"
	"go-ml.dev/pkg/molprep/fu"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoMols = `ethanol
  test

  3  2  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0
    1.0000    0.0000    0.0000 C   0  0
    2.0000    0.0000    0.0000 O   0  0
  1  2  1  0
  2  3  1  0
M  END
>  <name>
ethanol

>  <activity>
1.5

$$$$
broken
$$$$
methane
  test

  1  0  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0
M  END
>  <smiles>
C

$$$$
`

func Test_ReadSDF(t *testing.T) {
	rd := NewSDFReader(strings.NewReader(twoMols))
	m, err := rd.Next()
	assert.NilError(t, err)
	assert.Equal(t, m.Prop("name"), "ethanol")
	assert.Equal(t, m.Prop("activity"), "1.5")
	assert.DeepEqual(t, m.PropNames(), []string{"name", "activity"})
	assert.Assert(t, strings.HasSuffix(m.Block, "M  END"))
	m, err = rd.Next()
	assert.NilError(t, err)
	assert.Assert(t, m == nil)
	m, err = rd.Next()
	assert.NilError(t, err)
	s, err := Verbatim{}.Canonical(m)
	assert.NilError(t, err)
	assert.Equal(t, s, "C")

	mols, err := ReadSDF(strings.NewReader(twoMols))
	assert.NilError(t, err)
	assert.Equal(t, len(mols), 2)
}

func Test_WriteSDF(t *testing.T) {
	dir, err := ioutil.TempDir("", "molprep")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "x.sdf.xz")

	a, err := Verbatim{}.FromSmiles("CCO")
	assert.NilError(t, err)
	b, err := Verbatim{}.FromSmiles("c1ccccc1")
	assert.NilError(t, err)
	b.SetProp("scaffold", "c1ccccc1")
	assert.NilError(t, WriteSDF(fu.Xz(fu.File(path)), []*Molecule{a, b}))

	f, err := fu.Open(path)
	assert.NilError(t, err)
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	assert.NilError(t, err)
	mols, err := ReadSDF(bytes.NewReader(data))
	assert.NilError(t, err)
	assert.Equal(t, len(mols), 2)
	for i, s := range []string{"CCO", "c1ccccc1"} {
		q, err := Verbatim{}.Canonical(mols[i])
		assert.NilError(t, err)
		assert.Equal(t, q, s)
	}
	assert.Equal(t, mols[1].Prop("scaffold"), "c1ccccc1")
}

func Test_Verbatim(t *testing.T) {
	_, err := Verbatim{}.FromSmiles("  ")
	assert.ErrorContains(t, err, "empty smiles")
	_, err = Verbatim{}.Canonical(&Molecule{})
	assert.ErrorContains(t, err, "no smiles")
}

func Test_CommandExitStatus(t *testing.T) {
	c := Command{Program: "sh", Args: []string{"-c", "echo oops >&2; exit 3", "sh"}, Output: "nowhere.db", Kind: Circular}
	_, err := c.Featurize(context.Background(), "x.sdf.xz")
	assert.Assert(t, xerrors.Is(err, fu.ErrData))
	assert.ErrorContains(t, err, "status 3")
	assert.ErrorContains(t, err, "oops")
}
