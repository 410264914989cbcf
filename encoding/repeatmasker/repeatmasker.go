// Package repeatmasker reads RepeatMasker annotation (.out) files.
//
// The format is whitespace-aligned with a three-line header followed
// by one repeat annotation per line: alignment score, divergence
// percentages, query coordinates, repeat identity and repeat
// coordinates, plus an optional trailing overlap marker.
package repeatmasker

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/biocolumns/bioformats/encoding/bed"
	pkgerrors "github.com/pkg/errors"
)

// Record is one RepeatMasker annotation.  Coordinates are 1-based
// inclusive.  The repeat start/end/left fields stay raw strings since
// they carry parenthesized values for complement matches.
type Record struct {
	SWScore      int
	SubstPct     float64
	DelPct       float64
	InsPct       float64
	Query        string
	QueryStart   int
	QueryEnd     int
	QueryLeft    string
	IsComplement string
	RepeatName   string
	RepeatClass  string
	RepeatPrior  string
	RepeatStart  string
	RepeatEnd    string
	ID           string
}

var errEOF = errors.New("eof")

const headerLines = 3

// Reader scans repeat records from a stream, following the Scan/Err
// contract of bufio.Scanner.  The three header lines are skipped.
type Reader struct {
	s    *bufio.Scanner
	line int
	err  error
}

// NewReader creates a RepeatMasker out reader from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// Scan reads the next record into rec.  It returns false at end of
// input or on the first malformed record; check Err afterwards.
func (r *Reader) Scan(rec *Record) bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		if r.line <= headerLines {
			continue
		}
		fields := strings.Fields(r.s.Text())
		if len(fields) == 0 {
			continue
		}
		return r.parseRow(rec, fields)
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

func (r *Reader) parseRow(rec *Record, fields []string) bool {
	if len(fields) < 14 || len(fields) > 15 {
		r.err = pkgerrors.Errorf("repeatmasker: line %d: %d columns instead of 14 or 15",
			r.line, len(fields))
		return false
	}
	*rec = Record{
		Query:        fields[4],
		QueryLeft:    fields[7],
		IsComplement: fields[8],
		RepeatName:   fields[9],
		RepeatClass:  fields[10],
		RepeatPrior:  fields[11],
		RepeatStart:  fields[12],
		RepeatEnd:    fields[13],
	}
	if len(fields) == 15 {
		rec.ID = fields[14]
	}
	var err error
	if rec.SWScore, err = strconv.Atoi(fields[0]); err != nil {
		r.err = pkgerrors.Errorf("repeatmasker: line %d: invalid integer value %q", r.line, fields[0])
		return false
	}
	if rec.QueryStart, err = strconv.Atoi(fields[5]); err != nil {
		r.err = pkgerrors.Errorf("repeatmasker: line %d: invalid integer value %q", r.line, fields[5])
		return false
	}
	if rec.QueryEnd, err = strconv.Atoi(fields[6]); err != nil {
		r.err = pkgerrors.Errorf("repeatmasker: line %d: invalid integer value %q", r.line, fields[6])
		return false
	}
	for i, dst := range []*float64{&rec.SubstPct, &rec.DelPct, &rec.InsPct} {
		if *dst, err = strconv.ParseFloat(fields[i+1], 64); err != nil {
			r.err = pkgerrors.Errorf("repeatmasker: line %d: invalid float value %q", r.line, fields[i+1])
			return false
		}
	}
	return true
}

// ToBED projects a repeat annotation onto a BED6 record named after
// the repeat, with the strand taken from the complement marker.
func ToBED(rec *Record) bed.Record {
	strand := "+"
	if rec.IsComplement == "C" {
		strand = "-"
	}
	score := rec.SWScore
	if score > 1000 {
		score = 1000
	}
	return bed.Record{
		Chrom:   rec.Query,
		Start:   rec.QueryStart - 1,
		End:     rec.QueryEnd,
		Name:    rec.RepeatName + "#" + rec.RepeatClass,
		Score:   score,
		Strand:  strand,
		Columns: 6,
	}
}
