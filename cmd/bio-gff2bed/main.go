package main

/*
bio-gff2bed converts GFF3 features to the BED format.  In the default
mode each feature of the requested type becomes one BED8 record; with
-genes, exon records are grouped by their Parent attribute into BED12
gene models.
*/

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biocolumns/bioformats/encoding/bed"
	"github.com/biocolumns/bioformats/encoding/gff3"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

var (
	featureType = flag.String("type", "", "GFF3 feature type to convert (required unless -genes)")
	nameTag     = flag.String("name-tag", "", "Attribute whose value becomes the BED name")
	missing     = flag.String("missing", "NA", "Value denoting a missing attribute")
	attributes  = flag.String("attributes", "", "Comma-separated attribute tags to append as auxiliary columns")
	genes       = flag.Bool("genes", false, "Group exons into BED12 gene models")
	exonType    = flag.String("exon-type", "exon", "GFF3 type of exon records (with -genes)")
	parentTag   = flag.String("parent-tag", "Parent", "Attribute tying an exon to its gene (with -genes)")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] input.gff3 output.bed\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 2 {
		log.Fatalf("Expected 2 positional arguments (input.gff3 and output.bed), got %d", flag.NArg())
	}
	if !*genes && *featureType == "" {
		log.Fatalf("Either -type or -genes is required")
	}

	ctx := vcontext.Background()
	in, err := file.Open(ctx, flag.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
	}
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(flag.Arg(0)) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			log.Fatalf("%v", err)
		}
	}
	out, err := file.Create(ctx, flag.Arg(1))
	if err != nil {
		log.Fatalf("%v", err)
	}

	gffReader := gff3.NewReader(reader)
	bedWriter := bed.NewWriter(out.Writer(ctx))
	if *genes {
		err = bed.ConvertGFF3Genes(gffReader, bedWriter, bed.GeneOpts{
			ExonType:  *exonType,
			ParentTag: *parentTag,
		})
	} else {
		var attrs []string
		if *attributes != "" {
			attrs = strings.Split(*attributes, ",")
		}
		err = bed.ConvertGFF3(gffReader, bedWriter, bed.GFF3Opts{
			FeatureType:  *featureType,
			NameTag:      *nameTag,
			MissingValue: *missing,
			Attributes:   attrs,
		})
	}
	if err != nil {
		log.Fatalf("conversion failed: %v", err)
	}
	if err := out.Close(ctx); err != nil {
		log.Fatalf("%v", err)
	}
	if err := in.Close(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
