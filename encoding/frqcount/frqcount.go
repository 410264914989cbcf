// Package frqcount reads allele frequency count files produced by
// VCFtools with its --counts option (*.frq.count).
//
// Each line holds a chromosome, a position, the number of alleles,
// the total chromosome count, the reference allele count and one or
// more alternative allele counts, the allele counts formatted as
// ALLELE:COUNT.
package frqcount

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	pkgerrors "github.com/pkg/errors"
)

// AlleleCount is one ALLELE:COUNT pair.
type AlleleCount struct {
	Allele string
	Count  int
}

// Record is one variant's allele counts.
type Record struct {
	Chrom    string
	Pos      int
	NAlleles int
	NChr     int
	Ref      AlleleCount
	Alt      []AlleleCount
}

var errEOF = errors.New("eof")

// Reader scans allele count records from a stream, following the
// Scan/Err contract of bufio.Scanner.  The CHROM header line is
// skipped.
type Reader struct {
	s    *bufio.Scanner
	line int
	err  error
}

// NewReader creates a frequency count reader from r.
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
		line := strings.TrimRight(r.s.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "CHROM") {
			continue
		}
		return r.parseRow(rec, strings.Fields(line))
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
	if len(fields) < 6 {
		r.err = pkgerrors.Errorf("frqcount: line %d: %d fields instead of at least 6",
			r.line, len(fields))
		return false
	}
	*rec = Record{Chrom: fields[0]}
	var ok bool
	if rec.Pos, ok = r.atoi(fields[1]); !ok {
		return false
	}
	if rec.NAlleles, ok = r.atoi(fields[2]); !ok {
		return false
	}
	if rec.NChr, ok = r.atoi(fields[3]); !ok {
		return false
	}
	if rec.Ref, ok = r.parseAlleleCount(fields[4], nil); !ok {
		return false
	}
	seen := map[string]bool{rec.Ref.Allele: true}
	for _, field := range fields[5:] {
		count, ok := r.parseAlleleCount(field, seen)
		if !ok {
			return false
		}
		rec.Alt = append(rec.Alt, count)
	}
	return true
}

func (r *Reader) parseAlleleCount(field string, seen map[string]bool) (AlleleCount, bool) {
	colon := strings.LastIndexByte(field, ':')
	if colon <= 0 {
		r.err = pkgerrors.Errorf("frqcount: line %d: invalid allele record %q", r.line, field)
		return AlleleCount{}, false
	}
	count, err := strconv.Atoi(field[colon+1:])
	if err != nil {
		r.err = pkgerrors.Errorf("frqcount: line %d: invalid allele count %q", r.line, field[colon+1:])
		return AlleleCount{}, false
	}
	allele := field[:colon]
	if seen != nil {
		if seen[allele] {
			r.err = pkgerrors.Errorf("frqcount: line %d: multiple counts for allele %q", r.line, allele)
			return AlleleCount{}, false
		}
		seen[allele] = true
	}
	return AlleleCount{Allele: allele, Count: count}, true
}

func (r *Reader) atoi(field string) (int, bool) {
	n, err := strconv.Atoi(field)
	if err != nil {
		r.err = pkgerrors.Errorf("frqcount: line %d: invalid numeric value %q", r.line, field)
		return 0, false
	}
	return n, true
}

// ReadAllFromPath reads a whole frequency count file, transparently
// decompressing gzipped inputs.
func ReadAllFromPath(path string) (records []Record, err error) {
	ctx := vcontext.Background()
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	r := NewReader(reader)
	var rec Record
	for r.Scan(&rec) {
		records = append(records, rec)
	}
	err = r.Err()
	return
}

// Writer serializes frequency count records, including the header
// line VCFtools writes.
type Writer struct {
	w       *tsv.Writer
	started bool
	err     error
}

// NewWriter creates a frequency count writer on top of w.
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
		w.w.WriteString("CHROM\tPOS\tN_ALLELES\tN_CHR\t{ALLELE:COUNT}")
		if w.err = w.w.EndLine(); w.err != nil {
			return w.err
		}
	}
	w.w.WriteString(rec.Chrom)
	w.w.WriteUint32(uint32(rec.Pos))
	w.w.WriteUint32(uint32(rec.NAlleles))
	w.w.WriteUint32(uint32(rec.NChr))
	w.w.WriteString(rec.Ref.Allele + ":" + strconv.Itoa(rec.Ref.Count))
	for _, alt := range rec.Alt {
		w.w.WriteString(alt.Allele + ":" + strconv.Itoa(alt.Count))
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
