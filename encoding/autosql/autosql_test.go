package autosql_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/biocolumns/bioformats/encoding/autosql"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

var exampleTable = autosql.Table{
	Name: "bedExample",
	Desc: "Browser extensible data",
	Entries: []autosql.TableEntry{
		{Type: "string", Name: "chrom", Desc: "Reference sequence chromosome or scaffold"},
		{Type: "uint", Name: "chromStart", Desc: "Start position of feature on chromosome"},
		{Type: "uint", Name: "chromEnd", Desc: "End position of feature on chromosome"},
		{Type: "char", Num: 1, Name: "strand", Desc: "+ or - for strand"},
		{Type: "int[blockCount]", Name: "blockSizes", Desc: "Block sizes"},
	},
}

const exampleText = `table bedExample
"Browser extensible data"
(
string chrom; "Reference sequence chromosome or scaffold"
uint chromStart; "Start position of feature on chromosome"
uint chromEnd; "End position of feature on chromosome"
char[1] strand; "+ or - for strand"
int[blockCount] blockSizes; "Block sizes"
)
`

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := autosql.NewWriter(&buf, exampleTable.Name, exampleTable.Desc)
	assert.NoError(t, w.WriteTable(exampleTable))
	assert.NoError(t, w.Close())
	expect.EQ(t, buf.String(), exampleText)
}

func TestReader(t *testing.T) {
	r, err := autosql.NewReader(strings.NewReader(exampleText))
	assert.NoError(t, err)
	expect.EQ(t, r.TableName(), "bedExample")
	expect.EQ(t, r.TableDesc(), "Browser extensible data")
	table, err := r.Table()
	assert.NoError(t, err)
	expect.EQ(t, table, exampleTable)
}

func TestReaderMalformed(t *testing.T) {
	_, err := autosql.NewReader(strings.NewReader("not a table\n"))
	expect.NotNil(t, err)

	r, err := autosql.NewReader(strings.NewReader("table t\n\"d\"\n(\ngarbage\n)\n"))
	assert.NoError(t, err)
	var entry autosql.TableEntry
	expect.False(t, r.Scan(&entry))
	expect.NotNil(t, r.Err())
}
