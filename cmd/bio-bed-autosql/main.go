package main

/*
bio-bed-autosql derives an autoSql table definition from a BED file.
The canonical column count is auto-detected across the whole file and
auxiliary column types are inferred from their values.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/biocolumns/bioformats/encoding/autosql"
	"github.com/biocolumns/bioformats/encoding/bed"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	tableName = flag.String("name", "Table", "Name of the output autoSql table")
	tableDesc = flag.String("desc", "Description", "Description of the output autoSql table")
	lines     = flag.Int("lines", 0, "Number of BED rows to analyze; 0 analyzes the whole file")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] input.bed output.as\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		log.Fatalf("Expected 2 positional arguments (input.bed and output.as), got %d", flag.NArg())
	}
	table, err := bed.AutoSQLTableFromPath(flag.Arg(0), *tableName, *tableDesc, *lines)
	if err != nil {
		log.Fatalf("incorrect BED file %s: %v", flag.Arg(0), err)
	}

	ctx := vcontext.Background()
	out, err := file.Create(ctx, flag.Arg(1))
	if err != nil {
		log.Fatalf("%v", err)
	}
	w := autosql.NewWriter(out.Writer(ctx), table.Name, table.Desc)
	if err := w.WriteTable(table); err != nil {
		log.Fatalf("%v", err)
	}
	if err := w.Close(); err != nil {
		log.Fatalf("%v", err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("wrote %d entries to %s", len(table.Entries), flag.Arg(1))
}
