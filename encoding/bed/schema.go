package bed

import (
	"fmt"
	"io"

	"github.com/biocolumns/bioformats/encoding/autosql"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// autoSQLFields is the standard autoSql description of the 12
// canonical BED columns.
var autoSQLFields = [12]autosql.TableEntry{
	{Type: "string", Name: "chrom", Desc: "Reference sequence chromosome or scaffold"},
	{Type: "uint", Name: "chromStart", Desc: "Start position of feature on chromosome"},
	{Type: "uint", Name: "chromEnd", Desc: "End position of feature on chromosome"},
	{Type: "string", Name: "name", Desc: "Name of feature"},
	{Type: "uint", Name: "score", Desc: "Score"},
	{Type: "char", Num: 1, Name: "strand", Desc: "+ or - for strand"},
	{Type: "uint", Name: "thickStart", Desc: "Coding region start"},
	{Type: "uint", Name: "thickEnd", Desc: "Coding region end"},
	{Type: "uint", Name: "reserved", Desc: "Color set"},
	{Type: "int", Name: "blockCount", Desc: "The number of blocks in feature"},
	{Type: "int[blockCount]", Name: "blockSizes", Desc: "Block sizes"},
	{Type: "int[blockCount]", Name: "chromStarts", Desc: "Block start positions"},
}

// AutoSQLTable scans records from r and synthesizes an autoSql table
// describing the file: one fixed entry per canonical BED column
// present, followed by one inferred entry per auxiliary column.
// Auxiliary column types are derived by feeding every observed value
// into a column classifier, so a column of small nonnegative integers
// comes out as ubyte and an all-same-length text column as char[L].
//
// maxRows caps the number of rows examined; a non-positive value
// scans the whole stream.  The first malformed row aborts the scan
// with its error; no partial table is returned.
func AutoSQLTable(r *Reader, name, desc string, maxRows int) (autosql.Table, error) {
	var rec Record
	if !r.Scan(&rec) {
		if err := r.Err(); err != nil {
			return autosql.Table{}, err
		}
		return autosql.Table{}, errors.New("bed: no records to classify")
	}
	var classifiers []*autosql.Classifier
	addRow := func(aux []string) {
		for len(classifiers) < len(aux) {
			classifiers = append(classifiers, autosql.NewClassifier())
		}
		for i, v := range aux {
			classifiers[i].AddValue(v)
		}
	}
	addRow(rec.Aux)
	for rows := 1; maxRows <= 0 || rows < maxRows; rows++ {
		if !r.Scan(&rec) {
			break
		}
		addRow(rec.Aux)
	}
	if err := r.Err(); err != nil {
		return autosql.Table{}, err
	}

	table := autosql.Table{Name: name, Desc: desc}
	table.Entries = append(table.Entries, autoSQLFields[:r.BedColumns()]...)
	for i := 0; i < r.AuxColumns(); i++ {
		colType := "string"
		if i < len(classifiers) {
			colType = classifiers[i].DataType()
		}
		table.Entries = append(table.Entries, autosql.TableEntry{
			Type: colType,
			Name: fmt.Sprintf("column_%d", i+1),
			Desc: fmt.Sprintf("Column #%d with %s values", i+1, colType),
		})
	}
	return table, nil
}

// AutoSQLTableFromPath is a wrapper for AutoSQLTable that takes a path
// instead of a Reader.  Gzipped inputs are decompressed transparently.
func AutoSQLTableFromPath(path, name, desc string, maxRows int) (table autosql.Table, err error) {
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
	return AutoSQLTable(NewReader(reader, Opts{}), name, desc, maxRows)
}
