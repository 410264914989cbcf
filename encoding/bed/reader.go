package bed

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

var errEOF = errors.New("eof")

// Opts defines behavior of a Reader.
type Opts struct {
	// CheckOrder makes Scan fail when records are not sorted by
	// (chrom, start).  Conversions that group records by position
	// depend on sorted input.
	CheckOrder bool
}

// Reader scans BED rows from a stream, converging on the file's
// canonical column format as it goes.  The canonical column count
// starts at 12 and only decreases; the auxiliary column count starts
// at 0 and only increases.  The counts reported by BedColumns and
// AuxColumns are only final once the whole stream has been consumed,
// since any later row can force a narrower common prefix.
//
// Reader follows the Scan/Err contract of bufio.Scanner: Scan returns
// false at end of input or on the first malformed row, and Err
// distinguishes the two.  Readers are not thread-safe.
type Reader struct {
	s    *bufio.Scanner
	opts Opts
	line int

	bedCols int
	auxCols int

	prevChrom string
	prevStart int

	err error
}

// NewReader creates a BED reader from r.
func NewReader(r io.Reader, opts Opts) *Reader {
	return &Reader{
		s:         bufio.NewScanner(r),
		opts:      opts,
		bedCols:   12,
		prevStart: -1,
	}
}

// BedColumns returns the running number of canonical BED columns.
func (r *Reader) BedColumns() int { return r.bedCols }

// AuxColumns returns the running number of auxiliary columns.
func (r *Reader) AuxColumns() int { return r.auxCols }

// Scan reads the next record into rec.  It returns false at end of
// input or on the first malformed row; check Err afterwards.  Once
// Scan returns false it never returns true again.
func (r *Reader) Scan(rec *Record) bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		if line == "" {
			continue
		}
		if !r.parseRow(rec, strings.Split(line, "\t")) {
			return false
		}
		if r.opts.CheckOrder {
			if r.prevChrom > rec.Chrom || (r.prevChrom == rec.Chrom && r.prevStart > rec.Start) {
				r.err = &RowError{Line: r.line, Reason: "record order violated"}
				return false
			}
		}
		r.prevChrom = rec.Chrom
		r.prevStart = rec.Start
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

func (r *Reader) parseRow(rec *Record, fields []string) bool {
	bedCols, auxCols := detectFormat(fields)
	if r.bedCols > bedCols {
		r.bedCols = bedCols
	}
	if r.auxCols < auxCols {
		r.auxCols = auxCols
	}
	// Convergence across rows could in principle leave the running
	// pair violating a column-group coupling even though every row
	// was clamped individually, so the clamps are re-applied here.
	switch {
	case r.bedCols == 7:
		r.bedCols = 6
		r.auxCols++
	case r.bedCols == 10 || r.bedCols == 11:
		r.auxCols += r.bedCols - 9
		r.bedCols = 9
	}
	if r.bedCols < 3 {
		r.err = &RowError{Line: r.line, Reason: "chrom, start and end columns are mandatory"}
		return false
	}

	*rec = Record{Columns: r.bedCols}
	rec.Chrom = fields[0]
	var ok bool
	if rec.Start, ok = r.atoi(fields[1]); !ok {
		return false
	}
	if rec.End, ok = r.atoi(fields[2]); !ok {
		return false
	}
	if r.bedCols > 3 {
		rec.Name = fields[3]
	}
	if r.bedCols > 4 {
		if rec.Score, ok = r.atoi(fields[4]); !ok {
			return false
		}
	}
	if r.bedCols > 5 {
		rec.Strand = fields[5]
	}
	if r.bedCols > 6 {
		if rec.ThickStart, ok = r.atoi(fields[6]); !ok {
			return false
		}
		if rec.ThickEnd, ok = r.atoi(fields[7]); !ok {
			return false
		}
	}
	if r.bedCols > 8 {
		rec.ItemRGB = fields[8]
	}
	if r.bedCols > 9 {
		if rec.BlockCount, ok = r.atoi(fields[9]); !ok {
			return false
		}
		rec.BlockSizes = fields[10]
		rec.BlockStarts = fields[11]
	}
	if len(fields) > r.bedCols {
		rec.Aux = append([]string(nil), fields[r.bedCols:]...)
	}
	return true
}

func (r *Reader) atoi(field string) (int, bool) {
	n, err := strconv.Atoi(field)
	if err != nil {
		r.err = &RowError{Line: r.line, Field: field, Reason: "invalid numeric value"}
		return 0, false
	}
	return n, true
}
