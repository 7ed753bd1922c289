package rows

import (
	"github.com/xuri/excelize/v2"
	"go-ml.dev/pkg/molprep/chem"
	"go-ml.dev/pkg/molprep/fields"
	"go-ml.dev/pkg/molprep/fu"
	"golang.org/x/xerrors"
	"gotest.tools/assert"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func collect(t *testing.T, src Source, names []string) (index []int, rs []map[int]fields.Raw) {
	err := Each(src, func(i int, row Row) error {
		m, err := row.Fields(names)
		if err != nil {
			return err
		}
		index = append(index, i)
		rs = append(rs, m)
		return nil
	})
	assert.NilError(t, err)
	return
}

func Test_Delimited(t *testing.T) {
	text := "smiles\tic50\tsplit\nCCO\t1.5\ttrain\nCCN\t>10\n"
	index, rs := collect(t, NewDelimited(strings.NewReader(text), nil), []string{"smiles", "ic50", "split"})
	assert.DeepEqual(t, index, []int{1, 2})
	assert.Equal(t, rs[0][0].Text, "CCO")
	assert.Equal(t, rs[0][1].Text, "1.5")
	assert.Equal(t, rs[1][1].Text, ">10")
	assert.Assert(t, rs[1][2].Null)
}

func Test_Tabular(t *testing.T) {
	text := `{"header":true}
{"ic50":3,"smiles":"CCO","fp":[1,0,1],"img":{"shape":[1,2],"data":[5,6]}}
not a json
{"smiles":"CCN","ic50":null}
`
	index, rs := collect(t, NewTabular(strings.NewReader(text), nil), []string{"smiles", "ic50", "fp", "img"})
	assert.DeepEqual(t, index, []int{1, 3})
	assert.Equal(t, rs[0][0].Text, "CCO")
	assert.Equal(t, rs[0][1].Text, "3")
	assert.Equal(t, rs[0][2].Text, "1,0,1")
	assert.DeepEqual(t, rs[0][3].Array.Data, []float64{5, 6})
	assert.Assert(t, rs[1][1].Null)
	assert.Assert(t, rs[1][3].Null)
}

const sdf = `first
  test

  0  0  0  0  0  0  0  0  0  0999 V2000
M  END
>  <smiles>
C

$$$$
second
  test

  0  0  0  0  0  0  0  0  0  0999 V2000
M  END
>  <smiles>
CC

>  <activity>
7

$$$$
`

func Test_Structures(t *testing.T) {
	_, rs := collect(t, NewStructures(strings.NewReader(sdf), nil, chem.Verbatim{}), []string{"smiles", "activity", "absent"})
	assert.Equal(t, len(rs), 1)
	assert.Equal(t, rs[0][0].Text, "CC")
	assert.Equal(t, rs[0][1].Text, "7")
	assert.Assert(t, rs[0][2].Null)
}

func Test_StructuresBroken(t *testing.T) {
	text := "broken\nM  END\n$$$$\n" + sdf
	index, rs := collect(t, NewStructures(strings.NewReader(text), nil, chem.Verbatim{}), []string{"smiles"})
	assert.DeepEqual(t, index, []int{1})
	assert.Equal(t, rs[0][0].Text, "CC")
}

func Test_Spreadsheet(t *testing.T) {
	dir, err := ioutil.TempDir("", "molprep")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "data.xlsx")
	f := excelize.NewFile()
	for cell, v := range map[string]interface{}{
		"A1": "smiles", "B1": "ic50",
		"A2": "CCO", "B2": 1.5,
		"A3": "CCN",
		"A4": "CCC", "B4": 12345.678,
	} {
		assert.NilError(t, f.SetCellValue("Sheet1", cell, v))
	}
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	assert.NilError(t, err)
	assert.NilError(t, f.SetCellStyle("Sheet1", "B4", "B4", style))
	assert.NilError(t, f.SaveAs(path))
	assert.NilError(t, f.Close())

	src, err := Open(path, Spreadsheet, Options{})
	assert.NilError(t, err)
	defer src.Close()
	_, rs := collect(t, src, []string{"smiles", "ic50"})
	assert.Equal(t, len(rs), 3)
	assert.Equal(t, rs[0][0].Text, "CCO")
	assert.Equal(t, rs[0][1].Text, "1.5")
	assert.Assert(t, rs[1][1].Null)
	v, err := fields.Parse(rs[2][1], fields.TypeFloat)
	assert.NilError(t, err)
	assert.Equal(t, v.Float(), 12345.678)
}

func Test_ParseKind(t *testing.T) {
	_, err := ParseKind("parquet")
	assert.Assert(t, xerrors.Is(err, fu.ErrConfig))
	k, err := ParseKind("sdf")
	assert.NilError(t, err)
	assert.Equal(t, k, Structure)
}
