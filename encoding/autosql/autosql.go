// Package autosql reads and writes autoSql table definitions and
// infers autoSql column types from observed string values.
//
// autoSql is the schema description language used by the UCSC genome
// browser tools.  A definition looks like:
//
//	table bedExample
//	"An example table"
//	(
//	string chrom; "Reference sequence chromosome or scaffold"
//	uint   chromStart; "Start position of feature on chromosome"
//	char[1] strand; "+ or - for strand"
//	)
package autosql

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TableEntry is one column definition of an autoSql table.  Num is
// the fixed array length of the column, or zero when the column is
// not an array.
type TableEntry struct {
	Type string
	Num  int
	Name string
	Desc string
}

// Table is a complete autoSql table definition.
type Table struct {
	Name    string
	Desc    string
	Entries []TableEntry
}

var errEOF = errors.New("eof")

// Reader parses an autoSql definition from an io.Reader.
type Reader struct {
	s    *bufio.Scanner
	name string
	desc string
	err  error
}

// NewReader creates a Reader and consumes the table header (the
// "table NAME" line, the quoted description and the opening
// parenthesis).
func NewReader(r io.Reader) (*Reader, error) {
	ar := &Reader{s: bufio.NewScanner(r)}
	nameLine, err := ar.readLine()
	if err != nil {
		return nil, errors.Wrap(err, "autosql: missing table line")
	}
	fields := strings.Fields(nameLine)
	if len(fields) != 2 || fields[0] != "table" {
		return nil, errors.Errorf("autosql: malformed table line %q", nameLine)
	}
	ar.name = fields[1]
	descLine, err := ar.readLine()
	if err != nil {
		return nil, errors.Wrap(err, "autosql: missing description line")
	}
	ar.desc = strings.Trim(descLine, `"`)
	if _, err := ar.readLine(); err != nil {
		return nil, errors.Wrap(err, "autosql: missing opening parenthesis")
	}
	return ar, nil
}

func (r *Reader) readLine() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(r.s.Text(), " \t\r"), nil
}

// TableName returns the name from the table header.
func (r *Reader) TableName() string { return r.name }

// TableDesc returns the description from the table header.
func (r *Reader) TableDesc() string { return r.desc }

// Scan reads the next column definition into entry.  It returns false
// at the closing parenthesis or on error; check Err afterwards.
func (r *Reader) Scan(entry *TableEntry) bool {
	if r.err != nil {
		return false
	}
	line, err := r.readLine()
	if err != nil {
		r.err = err
		return false
	}
	line = strings.TrimSpace(line)
	if line == ")" {
		r.err = errEOF
		return false
	}
	parsed, err := parseEntry(line)
	if err != nil {
		r.err = err
		return false
	}
	*entry = parsed
	return true
}

// Err returns the first error encountered while scanning entries, nil
// once the closing parenthesis has been reached.
func (r *Reader) Err() error {
	if r.err == errEOF {
		return nil
	}
	return r.err
}

// Table reads all remaining entries and returns the whole table.
func (r *Reader) Table() (Table, error) {
	t := Table{Name: r.name, Desc: r.desc}
	var entry TableEntry
	for r.Scan(&entry) {
		t.Entries = append(t.Entries, entry)
	}
	if err := r.Err(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func parseEntry(line string) (TableEntry, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return TableEntry{}, errors.Errorf("autosql: malformed entry %q", line)
	}
	entry := TableEntry{
		Type: fields[0],
		Name: strings.TrimSuffix(fields[1], ";"),
	}
	if quote := strings.IndexByte(line, '"'); quote >= 0 {
		entry.Desc = strings.Trim(line[quote:], `"`)
	} else {
		entry.Desc = strings.Join(fields[2:], " ")
	}
	// A numeric array suffix such as char[2] moves into Num; a
	// symbolic one such as int[blockCount] stays part of the type.
	if open := strings.IndexByte(entry.Type, '['); open >= 0 && strings.HasSuffix(entry.Type, "]") {
		if n, err := strconv.Atoi(entry.Type[open+1 : len(entry.Type)-1]); err == nil {
			entry.Num = n
			entry.Type = entry.Type[:open]
		}
	}
	return entry, nil
}

// Writer serializes an autoSql table definition.  The table header is
// written by NewWriter; each Write adds one column definition and
// Close terminates the definition with the closing parenthesis.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a Writer and writes the table header for the
// given name and description.
func NewWriter(w io.Writer, name, desc string) *Writer {
	aw := &Writer{w: w}
	aw.printf("table %s\n\"%s\"\n(\n", name, desc)
	return aw
}

// Write writes one column definition line.
func (w *Writer) Write(entry TableEntry) error {
	if entry.Num > 0 {
		w.printf("%s[%d] %s; \"%s\"\n", entry.Type, entry.Num, entry.Name, entry.Desc)
	} else {
		w.printf("%s %s; \"%s\"\n", entry.Type, entry.Name, entry.Desc)
	}
	return w.err
}

// WriteTable writes all entries of t.
func (w *Writer) WriteTable(t Table) error {
	for _, entry := range t.Entries {
		if err := w.Write(entry); err != nil {
			return err
		}
	}
	return w.err
}

// Close terminates the table definition.
func (w *Writer) Close() error {
	w.printf(")\n")
	return w.err
}

func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}
