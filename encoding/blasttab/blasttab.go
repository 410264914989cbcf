// Package blasttab reads BLAST tabular (-outfmt 6/7) alignment files.
package blasttab

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Alignment is one line of a BLAST tabular report.
type Alignment struct {
	Query        string
	Subject      string
	Identity     float64
	Length       int
	Mismatches   int
	GapOpenings  int
	QueryStart   int
	QueryEnd     int
	SubjectStart int
	SubjectEnd   int
	EValue       float64
	BitScore     float64
}

var errEOF = errors.New("eof")

// Reader scans alignments from a stream, following the Scan/Err
// contract of bufio.Scanner.  Comment lines ('#', as produced by
// -outfmt 7) are skipped.
type Reader struct {
	s    *bufio.Scanner
	line int
	err  error
}

// NewReader creates a BLAST tabular reader from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// Scan reads the next alignment into aln.  It returns false at end of
// input or on the first malformed line; check Err afterwards.
func (r *Reader) Scan(aln *Alignment) bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return r.parseRow(aln, strings.Split(line, "\t"))
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

func (r *Reader) parseRow(aln *Alignment, fields []string) bool {
	if len(fields) < 12 {
		r.err = pkgerrors.Errorf("blasttab: line %d: %d columns instead of at least 12",
			r.line, len(fields))
		return false
	}
	*aln = Alignment{
		Query:   fields[0],
		Subject: fields[1],
	}
	var err error
	for i, dst := range map[int]*float64{2: &aln.Identity, 10: &aln.EValue, 11: &aln.BitScore} {
		if *dst, err = strconv.ParseFloat(fields[i], 64); err != nil {
			r.err = pkgerrors.Errorf("blasttab: line %d: invalid numerical value %q", r.line, fields[i])
			return false
		}
	}
	for i, dst := range map[int]*int{
		3: &aln.Length, 4: &aln.Mismatches, 5: &aln.GapOpenings,
		6: &aln.QueryStart, 7: &aln.QueryEnd, 8: &aln.SubjectStart, 9: &aln.SubjectEnd,
	} {
		if *dst, err = strconv.Atoi(fields[i]); err != nil {
			r.err = pkgerrors.Errorf("blasttab: line %d: invalid integer value %q", r.line, fields[i])
			return false
		}
	}
	return true
}
