package blasttab

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const exampleReport = "# BLASTN 2.9.0+\n" +
	"# Query: q1\n" +
	"q1\tchr7\t98.765\t81\t1\t0\t1\t81\t140453075\t140453155\t3e-35\t147\n" +
	"q1\tchr12\t87.5\t80\t8\t2\t2\t80\t25398207\t25398284\t5e-20\t95.3\n"

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(exampleReport))
	var aln Alignment

	assert.True(t, r.Scan(&aln))
	expect.EQ(t, aln, Alignment{
		Query:        "q1",
		Subject:      "chr7",
		Identity:     98.765,
		Length:       81,
		Mismatches:   1,
		GapOpenings:  0,
		QueryStart:   1,
		QueryEnd:     81,
		SubjectStart: 140453075,
		SubjectEnd:   140453155,
		EValue:       3e-35,
		BitScore:     147,
	})

	assert.True(t, r.Scan(&aln))
	expect.EQ(t, aln.Subject, "chr12")
	expect.EQ(t, aln.GapOpenings, 2)
	expect.False(t, r.Scan(&aln))
	assert.NoError(t, r.Err())
}

func TestReaderMalformed(t *testing.T) {
	tests := []string{
		"q1\tchr7\t98.765\t81\t1\t0\t1\t81\t140453075\t140453155\t3e-35\n",
		"q1\tchr7\tx\t81\t1\t0\t1\t81\t140453075\t140453155\t3e-35\t147\n",
		"q1\tchr7\t98.765\t81.5\t1\t0\t1\t81\t140453075\t140453155\t3e-35\t147\n",
	}
	for _, in := range tests {
		r := NewReader(strings.NewReader(in))
		var aln Alignment
		expect.False(t, r.Scan(&aln))
		expect.NotNil(t, r.Err())
	}
}
