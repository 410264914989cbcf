// Package agp reads and writes AGP assembly description files.
//
// Every AGP line has nine tab-delimited columns describing either a
// placed component (a sequence making up part of the object) or a gap.
// Columns 6-9 are overloaded: for components they hold the component
// ID, its coordinates and orientation; for gaps they hold the gap
// length, gap type and linkage information.
package agp

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	pkgerrors "github.com/pkg/errors"
)

// Component type codes allowed in column 5.  N and U denote gaps.
var componentTypes = map[string]bool{
	"A": true, "D": true, "F": true, "G": true, "O": true,
	"P": true, "W": true, "N": true, "U": true,
}

// Record is one AGP line.  The component fields are set for component
// lines, the gap fields for gap lines; IsGap tells which.
type Record struct {
	Object        string
	ObjectStart   int
	ObjectEnd     int
	PartNumber    int
	ComponentType string

	// Component lines.
	ComponentID    string
	ComponentStart int
	ComponentEnd   int
	Orientation    string

	// Gap lines.
	GapLength       int
	GapType         string
	Linkage         string
	LinkageEvidence string
}

// IsGap reports whether the record describes a gap.
func (r *Record) IsGap() bool {
	return r.ComponentType == "N" || r.ComponentType == "U"
}

var errEOF = errors.New("eof")

// Reader scans AGP records from a stream, following the Scan/Err
// contract of bufio.Scanner.  Comment lines are skipped.
type Reader struct {
	s    *bufio.Scanner
	line int
	err  error
}

// NewReader creates an AGP reader from r.
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
		line := r.s.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return r.parseRow(rec, strings.Split(line, "\t"))
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
	if len(fields) != 9 {
		r.err = pkgerrors.Errorf("agp: line %d: %d columns instead of 9", r.line, len(fields))
		return false
	}
	if !componentTypes[fields[4]] {
		r.err = pkgerrors.Errorf("agp: line %d: invalid component type %q", r.line, fields[4])
		return false
	}
	*rec = Record{
		Object:        fields[0],
		ComponentType: fields[4],
	}
	var ok bool
	if rec.ObjectStart, ok = r.atoi(fields[1]); !ok {
		return false
	}
	if rec.ObjectEnd, ok = r.atoi(fields[2]); !ok {
		return false
	}
	if rec.PartNumber, ok = r.atoi(fields[3]); !ok {
		return false
	}
	if rec.IsGap() {
		if rec.GapLength, ok = r.atoi(fields[5]); !ok {
			return false
		}
		rec.GapType = fields[6]
		rec.Linkage = fields[7]
		rec.LinkageEvidence = fields[8]
		return true
	}
	rec.ComponentID = fields[5]
	if rec.ComponentStart, ok = r.atoi(fields[6]); !ok {
		return false
	}
	if rec.ComponentEnd, ok = r.atoi(fields[7]); !ok {
		return false
	}
	rec.Orientation = fields[8]
	return true
}

func (r *Reader) atoi(field string) (int, bool) {
	n, err := strconv.Atoi(field)
	if err != nil {
		r.err = pkgerrors.Errorf("agp: line %d: invalid numeric value %q", r.line, field)
		return 0, false
	}
	return n, true
}

// Writer serializes AGP records.
type Writer struct {
	w *tsv.Writer
}

// NewWriter creates an AGP writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// Write writes one record.
func (w *Writer) Write(rec *Record) error {
	w.w.WriteString(rec.Object)
	w.w.WriteUint32(uint32(rec.ObjectStart))
	w.w.WriteUint32(uint32(rec.ObjectEnd))
	w.w.WriteUint32(uint32(rec.PartNumber))
	w.w.WriteString(rec.ComponentType)
	if rec.IsGap() {
		w.w.WriteUint32(uint32(rec.GapLength))
		w.w.WriteString(rec.GapType)
		w.w.WriteString(rec.Linkage)
		w.w.WriteString(rec.LinkageEvidence)
	} else {
		w.w.WriteString(rec.ComponentID)
		w.w.WriteUint32(uint32(rec.ComponentStart))
		w.w.WriteUint32(uint32(rec.ComponentEnd))
		w.w.WriteString(rec.Orientation)
	}
	return w.w.EndLine()
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
