package bed

import (
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
)

// Writer serializes BED records.  Canonical columns beyond
// Record.Columns are omitted, so a file of BED6 records stays six
// columns wide; auxiliary columns are appended after the canonical
// prefix.
type Writer struct {
	w *tsv.Writer
}

// NewWriter creates a BED writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// Write writes one record.
func (w *Writer) Write(rec *Record) error {
	w.w.WriteString(rec.Chrom)
	w.w.WriteUint32(uint32(rec.Start))
	w.w.WriteUint32(uint32(rec.End))
	if rec.Columns > 3 {
		w.w.WriteString(rec.Name)
	}
	if rec.Columns > 4 {
		w.w.WriteUint32(uint32(rec.Score))
	}
	if rec.Columns > 5 {
		w.w.WriteString(rec.Strand)
	}
	if rec.Columns > 6 {
		w.w.WriteUint32(uint32(rec.ThickStart))
		w.w.WriteUint32(uint32(rec.ThickEnd))
	}
	if rec.Columns > 8 {
		w.w.WriteString(rec.ItemRGB)
	}
	if rec.Columns > 9 {
		w.w.WriteUint32(uint32(rec.BlockCount))
		w.w.WriteString(rec.BlockSizes)
		w.w.WriteString(rec.BlockStarts)
	}
	for _, aux := range rec.Aux {
		w.w.WriteString(aux)
	}
	return w.w.EndLine()
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func formatInts(values []int) string {
	var b []byte
	for i, v := range values {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
