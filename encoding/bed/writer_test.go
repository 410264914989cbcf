package bed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.NoError(t, w.Write(&Record{Chrom: "chr1", Start: 100, End: 200, Columns: 3}))
	assert.NoError(t, w.Write(&Record{
		Chrom:   "chr2",
		Start:   300,
		End:     400,
		Name:    "geneA",
		Score:   500,
		Strand:  "+",
		Columns: 6,
		Aux:     []string{"x", "y"},
	}))
	assert.NoError(t, w.Write(&Record{
		Chrom:       "chr3",
		Start:       0,
		End:         100,
		Name:        "geneB",
		Score:       1000,
		Strand:      "-",
		ThickStart:  0,
		ThickEnd:    100,
		ItemRGB:     "255,0,0",
		BlockCount:  2,
		BlockSizes:  "40,40",
		BlockStarts: "0,60",
		Columns:     12,
	}))
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(),
		"chr1\t100\t200\n"+
			"chr2\t300\t400\tgeneA\t500\t+\tx\ty\n"+
			"chr3\t0\t100\tgeneB\t1000\t-\t0\t100\t255,0,0\t2\t40,40\t0,60\n")
}

// Reading a file and writing it back preserves the text.
func TestWriterRoundTrip(t *testing.T) {
	in := "chr1\t0\t100\tg1\t500\t+\t0\t100\t255,0,0\t2\t40,40\t0,60\n" +
		"chr1\t100\t200\tg2\t900\t-\t100\t200\t0,255,0\t1\t100\t0\n"
	r := NewReader(strings.NewReader(in), Opts{})
	var buf bytes.Buffer
	w := NewWriter(&buf)
	var rec Record
	for r.Scan(&rec) {
		assert.NoError(t, w.Write(&rec))
	}
	assert.NoError(t, r.Err())
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(), in)
}

func TestFormatInts(t *testing.T) {
	expect.EQ(t, formatInts(nil), "")
	expect.EQ(t, formatInts([]int{7}), "7")
	expect.EQ(t, formatInts([]int{0, 20, 45}), "0,20,45")
}
