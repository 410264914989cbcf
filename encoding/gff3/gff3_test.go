package gff3

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleGFF3 = "##gff-version 3\n" +
	"# a comment\n" +
	"chr1\thavana\tgene\t11869\t14409\t.\t+\t.\tID=ENSG00000223972;Name=DDX11L1\n" +
	"chr1\thavana\tCDS\t12010\t12057\t0.9\t+\t0\tParent=ENST00000450305\n" +
	"\n" +
	"chr1\thavana\tregion\t1\t248956422\t.\t.\t.\n"

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(exampleGFF3))
	var rec Record

	require.True(t, r.Scan(&rec))
	assert.Equal(t, Record{
		SeqID:  "chr1",
		Source: "havana",
		Type:   "gene",
		Start:  11869,
		End:    14409,
		Strand: "+",
		Attributes: Attributes{
			{Tag: "ID", Value: "ENSG00000223972"},
			{Tag: "Name", Value: "DDX11L1"},
		},
	}, rec)
	name, ok := rec.Attributes.Get("Name")
	assert.True(t, ok)
	assert.Equal(t, "DDX11L1", name)
	_, ok = rec.Attributes.Get("Alias")
	assert.False(t, ok)

	require.True(t, r.Scan(&rec))
	assert.True(t, rec.HasScore)
	assert.Equal(t, 0.9, rec.Score)
	assert.True(t, rec.HasPhase)
	assert.Equal(t, 0, rec.Phase)

	require.True(t, r.Scan(&rec))
	assert.Equal(t, "region", rec.Type)
	assert.False(t, rec.HasScore)
	assert.False(t, rec.HasPhase)
	assert.Nil(t, rec.Attributes)

	assert.False(t, r.Scan(&rec))
	assert.NoError(t, r.Err())
}

// A raw tab inside an attribute value does not break the record apart.
func TestReaderTabInAttributes(t *testing.T) {
	in := "##gff-version 3\n" +
		"chr1\tx\tgene\t1\t10\t.\t+\t.\tNote=contains\ta tab\n"
	r := NewReader(strings.NewReader(in))
	var rec Record
	require.True(t, r.Scan(&rec))
	v, ok := rec.Attributes.Get("Note")
	assert.True(t, ok)
	assert.Equal(t, "contains\ta tab", v)
}

func TestReaderMalformed(t *testing.T) {
	tests := []string{
		"##gff-version 3\nchr1\tx\tgene\t1\n",
		"##gff-version 3\nchr1\tx\tgene\tone\t10\t.\t+\t.\n",
		"##gff-version 3\nchr1\tx\tgene\t1\tten\t.\t+\t.\n",
		"##gff-version 3\nchr1\tx\tgene\t1\t10\thigh\t+\t.\n",
		"##gff-version 3\nchr1\tx\tgene\t1\t10\t.\t+\tzero\n",
		"##gff-version 3\nchr1\tx\tgene\t1\t10\t.\t+\t.\tnoequals\n",
	}
	for _, in := range tests {
		r := NewReader(strings.NewReader(in))
		var rec Record
		assert.False(t, r.Scan(&rec), in)
		assert.Error(t, r.Err(), in)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(&Record{
		SeqID:  "chr1",
		Source: "havana",
		Type:   "gene",
		Start:  11869,
		End:    14409,
		Strand: "+",
		Attributes: Attributes{
			{Tag: "ID", Value: "ENSG00000223972"},
		},
	}))
	require.NoError(t, w.Write(&Record{
		SeqID:    "chr1",
		Source:   "havana",
		Type:     "CDS",
		Start:    12010,
		End:      12057,
		Score:    0.9,
		HasScore: true,
		Strand:   "+",
		HasPhase: true,
	}))
	require.NoError(t, w.Flush())
	assert.Equal(t,
		"##gff-version 3\n"+
			"chr1\thavana\tgene\t11869\t14409\t.\t+\t.\tID=ENSG00000223972\n"+
			"chr1\thavana\tCDS\t12010\t12057\t0.9\t+\t0\n",
		buf.String())
}

func TestAnalyzeTags(t *testing.T) {
	stats, err := AnalyzeTags(strings.NewReader(exampleGFF3), "havana", "gene")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Filtered)
	assert.Equal(t, map[string]int{"ID": 1, "Name": 1}, stats.TagCounts)

	stats, err = AnalyzeTags(strings.NewReader(exampleGFF3), "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Filtered)
	assert.Equal(t, 1, stats.TagCounts["Parent"])
}
