// Package gff3 reads and writes GFF3 genomic feature files.
//
// A GFF3 file starts with a "##gff-version 3" directive followed by
// one tab-delimited record per line: seqid, source, type, start, end,
// score, strand, phase and an optional attribute column of
// semicolon-separated tag=value pairs.
package gff3

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	pkgerrors "github.com/pkg/errors"
)

// Attribute is one tag=value pair from the attribute column.
type Attribute struct {
	Tag   string
	Value string
}

// Attributes is the ordered attribute list of a record.
type Attributes []Attribute

// Get returns the value for tag and whether it is present.
func (a Attributes) Get(tag string) (string, bool) {
	for _, attr := range a {
		if attr.Tag == tag {
			return attr.Value, true
		}
	}
	return "", false
}

// Record is one GFF3 feature.  Score and Phase are optional in the
// format ('.'); HasScore and HasPhase report whether they were set.
// Start and End are 1-based inclusive coordinates.
type Record struct {
	SeqID      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      float64
	HasScore   bool
	Strand     string
	Phase      int
	HasPhase   bool
	Attributes Attributes
}

var errEOF = errors.New("eof")

// Reader scans GFF3 records from a stream, following the Scan/Err
// contract of bufio.Scanner.
type Reader struct {
	s       *bufio.Scanner
	line    int
	started bool
	err     error
}

// NewReader creates a GFF3 reader from r.
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
		if !r.started {
			// The first line is the ##gff-version directive.
			r.started = true
			continue
		}
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
	if len(fields) < 8 {
		r.err = pkgerrors.Errorf("gff3: line %d: %d columns instead of at least 8", r.line, len(fields))
		return false
	}
	if len(fields) > 9 {
		// Attribute values occasionally contain raw tabs; glue the
		// overflow back into the attribute column.
		fields[8] = strings.Join(fields[8:], "\t")
		fields = fields[:9]
	}
	*rec = Record{
		SeqID:  fields[0],
		Source: fields[1],
		Type:   fields[2],
		Strand: fields[6],
	}
	var err error
	if rec.Start, err = strconv.Atoi(fields[3]); err != nil {
		r.err = pkgerrors.Errorf("gff3: line %d: invalid start %q", r.line, fields[3])
		return false
	}
	if rec.End, err = strconv.Atoi(fields[4]); err != nil {
		r.err = pkgerrors.Errorf("gff3: line %d: invalid end %q", r.line, fields[4])
		return false
	}
	if fields[5] != "." {
		if rec.Score, err = strconv.ParseFloat(fields[5], 64); err != nil {
			r.err = pkgerrors.Errorf("gff3: line %d: invalid score %q", r.line, fields[5])
			return false
		}
		rec.HasScore = true
	}
	if fields[7] != "." {
		if rec.Phase, err = strconv.Atoi(fields[7]); err != nil {
			r.err = pkgerrors.Errorf("gff3: line %d: invalid phase %q", r.line, fields[7])
			return false
		}
		rec.HasPhase = true
	}
	if len(fields) == 9 {
		for _, pair := range strings.Split(fields[8], ";") {
			eq := strings.IndexByte(pair, '=')
			if eq <= 0 || eq == len(pair)-1 {
				r.err = pkgerrors.Errorf("gff3: line %d: invalid attribute %q", r.line, pair)
				return false
			}
			rec.Attributes = append(rec.Attributes, Attribute{
				Tag:   pair[:eq],
				Value: pair[eq+1:],
			})
		}
	}
	return true
}

// Writer serializes GFF3 records.  The ##gff-version directive is
// written ahead of the first record.
type Writer struct {
	w       *tsv.Writer
	started bool
	err     error
}

// NewWriter creates a GFF3 writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// Write writes one record.
func (w *Writer) Write(rec *Record) error {
	if w.err != nil {
		return w.err
	}
	if !w.started {
		w.started = true
		w.w.WriteString("##gff-version 3")
		if w.err = w.w.EndLine(); w.err != nil {
			return w.err
		}
	}
	w.w.WriteString(rec.SeqID)
	w.w.WriteString(rec.Source)
	w.w.WriteString(rec.Type)
	w.w.WriteUint32(uint32(rec.Start))
	w.w.WriteUint32(uint32(rec.End))
	if rec.HasScore {
		w.w.WriteString(strconv.FormatFloat(rec.Score, 'g', -1, 64))
	} else {
		w.w.WriteString(".")
	}
	w.w.WriteString(rec.Strand)
	if rec.HasPhase {
		w.w.WriteString(strconv.Itoa(rec.Phase))
	} else {
		w.w.WriteString(".")
	}
	if len(rec.Attributes) > 0 {
		pairs := make([]string, 0, len(rec.Attributes))
		for _, attr := range rec.Attributes {
			pairs = append(pairs, attr.Tag+"="+attr.Value)
		}
		w.w.WriteString(strings.Join(pairs, ";"))
	}
	w.err = w.w.EndLine()
	return w.err
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// TagStats summarizes attribute tag usage across a GFF3 file.
type TagStats struct {
	Total     int // all records seen
	Filtered  int // records matching the source/type filters
	TagCounts map[string]int
}

// AnalyzeTags collects attribute tag statistics from a GFF3 stream.
// Empty source or featureType values disable the respective filter.
func AnalyzeTags(r io.Reader, source, featureType string) (TagStats, error) {
	stats := TagStats{TagCounts: make(map[string]int)}
	reader := NewReader(r)
	var rec Record
	for reader.Scan(&rec) {
		stats.Total++
		if source != "" && rec.Source != source {
			continue
		}
		if featureType != "" && rec.Type != featureType {
			continue
		}
		stats.Filtered++
		for _, attr := range rec.Attributes {
			stats.TagCounts[attr.Tag]++
		}
	}
	if err := reader.Err(); err != nil {
		return TagStats{}, err
	}
	return stats, nil
}
