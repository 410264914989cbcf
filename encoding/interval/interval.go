// Package interval reads and writes the simple interval text format:
// a ">name" line introduces a sequence, and each following line holds
// one "start - end" pair of 1-based inclusive coordinates on it.
package interval

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biocolumns/bioformats/encoding/bed"
	pkgerrors "github.com/pkg/errors"
)

// Record is one interval.
type Record struct {
	Seq   string
	Start int
	End   int
}

var errEOF = errors.New("eof")

// Reader scans intervals from a stream, following the Scan/Err
// contract of bufio.Scanner.
type Reader struct {
	s    *bufio.Scanner
	line int
	seq  string
	err  error
}

// NewReader creates an interval format reader from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// Scan reads the next interval into rec.  It returns false at end of
// input or on the first malformed line; check Err afterwards.
func (r *Reader) Scan(rec *Record) bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := strings.TrimSpace(r.s.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			// Drop any trailing comment after the sequence name.
			r.seq = strings.Fields(line)[0][1:]
			continue
		}
		dash := strings.IndexByte(line, '-')
		if dash < 0 {
			r.err = pkgerrors.Errorf("interval: line %d: invalid interval line %q", r.line, line)
			return false
		}
		start, err1 := strconv.Atoi(strings.TrimSpace(line[:dash]))
		end, err2 := strconv.Atoi(strings.TrimSpace(line[dash+1:]))
		if err1 != nil || err2 != nil {
			r.err = pkgerrors.Errorf("interval: line %d: invalid interval line %q", r.line, line)
			return false
		}
		*rec = Record{Seq: r.seq, Start: start, End: end}
		return true
	}
	r.err = r.s.Err()
	if r.err == nil {
		r.err = errEOF
	}
	return false
}

// Err returns the error that stopped scanning, or nil at a clean end
// of input.
func (r *Reader) Err() error {
	if r.err == errEOF {
		return nil
	}
	return r.err
}

// Writer serializes intervals, emitting a ">name" line whenever the
// sequence changes.
type Writer struct {
	w   io.Writer
	seq string
	err error
}

// NewWriter creates an interval format writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes one interval.
func (w *Writer) Write(rec *Record) error {
	if w.err != nil {
		return w.err
	}
	if w.seq != rec.Seq {
		w.seq = rec.Seq
		if _, w.err = fmt.Fprintf(w.w, ">%s\n", w.seq); w.err != nil {
			return w.err
		}
	}
	_, w.err = fmt.Fprintf(w.w, "%d - %d\n", rec.Start, rec.End)
	return w.err
}

// ToBED converts interval records from r to BED3 records on w,
// shifting starts to BED's 0-based half-open convention.
func ToBED(r *Reader, w *bed.Writer) error {
	var rec Record
	for r.Scan(&rec) {
		bedRec := bed.Record{
			Chrom:   rec.Seq,
			Start:   rec.Start - 1,
			End:     rec.End,
			Columns: 3,
		}
		if err := w.Write(&bedRec); err != nil {
			return err
		}
	}
	if err := r.Err(); err != nil {
		return err
	}
	return w.Flush()
}
