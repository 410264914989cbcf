package bed

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestReaderBed6Aux(t *testing.T) {
	in := "chr1\t100\t200\tgeneA\t500\t+\t7.5\tfoo\n" +
		"chr2\t300\t400\tgeneB\t900\t-\t1.5\tbar\n"
	r := NewReader(strings.NewReader(in), Opts{})
	var rec Record
	assert.True(t, r.Scan(&rec))
	expect.EQ(t, rec, Record{
		Chrom:   "chr1",
		Start:   100,
		End:     200,
		Name:    "geneA",
		Score:   500,
		Strand:  "+",
		Columns: 6,
		Aux:     []string{"7.5", "foo"},
	})
	assert.True(t, r.Scan(&rec))
	expect.EQ(t, rec.Chrom, "chr2")
	expect.False(t, r.Scan(&rec))
	assert.NoError(t, r.Err())
	expect.EQ(t, r.BedColumns(), 6)
	expect.EQ(t, r.AuxColumns(), 2)
}

// The file-wide canonical column count converges to the minimum seen,
// and the auxiliary count to the maximum, monotonically.
func TestReaderConvergence(t *testing.T) {
	in := "chr1\t0\t100\tg1\t500\t+\t0\t100\t255,0,0\t2\t40,40\t0,60\n" +
		"chr1\t100\t200\tg2\t500\t+\tx\ty\n" +
		"chr1\t200\t300\tg3\tabc\n"
	r := NewReader(strings.NewReader(in), Opts{})
	var rec Record

	assert.True(t, r.Scan(&rec))
	expect.EQ(t, r.BedColumns(), 12)
	expect.EQ(t, r.AuxColumns(), 0)
	prevBed, prevAux := r.BedColumns(), r.AuxColumns()

	for r.Scan(&rec) {
		expect.True(t, r.BedColumns() <= prevBed)
		expect.True(t, r.AuxColumns() >= prevAux)
		prevBed, prevAux = r.BedColumns(), r.AuxColumns()
	}
	assert.NoError(t, r.Err())
	expect.EQ(t, r.BedColumns(), 4)
	expect.EQ(t, r.AuxColumns(), 2)
}

func TestReaderShortRow(t *testing.T) {
	in := "chr1\t100\t200\n" + "chr1\t100\n"
	r := NewReader(strings.NewReader(in), Opts{})
	var rec Record
	assert.True(t, r.Scan(&rec))
	expect.False(t, r.Scan(&rec))
	err := r.Err()
	assert.NotNil(t, err)
	rowErr, ok := err.(*RowError)
	assert.True(t, ok)
	expect.EQ(t, rowErr.Line, 2)
	// Once scanning has failed it stays failed.
	expect.False(t, r.Scan(&rec))
}

func TestReaderCheckOrder(t *testing.T) {
	in := "chr1\t200\t300\n" + "chr1\t100\t200\n"
	r := NewReader(strings.NewReader(in), Opts{CheckOrder: true})
	var rec Record
	assert.True(t, r.Scan(&rec))
	expect.False(t, r.Scan(&rec))
	expect.NotNil(t, r.Err())

	r = NewReader(strings.NewReader(in), Opts{})
	for r.Scan(&rec) {
	}
	expect.Nil(t, r.Err())
}

func TestReaderSkipsBlankLines(t *testing.T) {
	in := "chr1\t100\t200\n\n\nchr1\t300\t400\n"
	r := NewReader(strings.NewReader(in), Opts{})
	n := 0
	var rec Record
	for r.Scan(&rec) {
		n++
	}
	assert.NoError(t, r.Err())
	expect.EQ(t, n, 2)
}

// A later, narrower row truncates how much of a wide row is exposed
// as canonical columns.
func TestReaderNarrowing(t *testing.T) {
	in := "chr1\t0\t10\n" + "chr1\t10\t20\tgeneB\t500\t+\n"
	r := NewReader(strings.NewReader(in), Opts{})
	var rec Record
	assert.True(t, r.Scan(&rec))
	assert.True(t, r.Scan(&rec))
	expect.EQ(t, rec.Columns, 3)
	expect.EQ(t, rec.Name, "")
	expect.EQ(t, rec.Aux, []string{"geneB", "500", "+"})
	expect.False(t, r.Scan(&rec))
	assert.NoError(t, r.Err())
	expect.EQ(t, r.BedColumns(), 3)
	// The auxiliary count tracks per-row detection results, and the
	// wide row's fields all validated as canonical columns.
	expect.EQ(t, r.AuxColumns(), 0)
}
