package bed

import (
	"fmt"

	"github.com/biocolumns/bioformats/encoding/gff3"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// GFF3Opts controls the plain GFF3-to-BED feature projection.
type GFF3Opts struct {
	// FeatureType selects which GFF3 records are converted.
	FeatureType string
	// NameTag is the attribute whose value becomes the BED name.  If
	// empty, features are named feature_0, feature_1, ...
	NameTag string
	// MissingValue substitutes for an absent attribute.  Defaults to
	// "NA".
	MissingValue string
	// Attributes lists attribute tags to append as auxiliary columns.
	Attributes []string
}

// ConvertGFF3 projects GFF3 features of one type onto BED8 records
// with attribute-derived names and auxiliary columns.
func ConvertGFF3(gr *gff3.Reader, w *Writer, opts GFF3Opts) error {
	missing := opts.MissingValue
	if missing == "" {
		missing = "NA"
	}
	totalProcessed, totalBed := 0, 0
	var feature gff3.Record
	for gr.Scan(&feature) {
		totalProcessed++
		if feature.Type != opts.FeatureType {
			continue
		}
		name := fmt.Sprintf("feature_%d", totalBed)
		if opts.NameTag != "" {
			name = missing
			if v, ok := feature.Attributes.Get(opts.NameTag); ok {
				name = v
			}
		}
		rec := Record{
			Chrom:      feature.SeqID,
			Start:      feature.Start - 1,
			End:        feature.End,
			Name:       name,
			Score:      1000,
			Strand:     feature.Strand,
			ThickStart: feature.Start - 1,
			ThickEnd:   feature.End,
			Columns:    8,
		}
		for _, tag := range opts.Attributes {
			v, ok := feature.Attributes.Get(tag)
			if !ok {
				v = missing
			}
			rec.Aux = append(rec.Aux, v)
		}
		if err := w.Write(&rec); err != nil {
			return err
		}
		totalBed++
	}
	if err := gr.Err(); err != nil {
		return err
	}
	log.Printf("%d BED records of %d GFF3 records processed", totalBed, totalProcessed)
	return w.Flush()
}

// GeneOpts controls the GFF3-to-BED12 gene model conversion.
type GeneOpts struct {
	// ExonType is the GFF3 type of exon records.  Defaults to "exon".
	ExonType string
	// ParentTag is the attribute tying an exon to its gene.  Defaults
	// to "Parent".
	ParentTag string
}

// blocks converts exon start/end coordinate lists into BED block
// starts and sizes relative to the first exon.
func blocks(starts, ends []int) (blockStarts, blockSizes []int, err error) {
	if len(starts) != len(ends) {
		return nil, nil, errors.Errorf("bed: unequal number of start and end coordinates %d and %d",
			len(starts), len(ends))
	}
	featureStart := starts[0]
	for i := range starts {
		blockStarts = append(blockStarts, starts[i]-featureStart)
		blockSizes = append(blockSizes, ends[i]-starts[i]+1)
	}
	return blockStarts, blockSizes, nil
}

// ConvertGFF3Genes converts a GFF3 file of gene exons to BED12 gene
// models, one record per gene, with exons as blocks.  Exons of one
// gene must be consecutive in the input, so the caller should ensure
// the GFF3 file is sorted.
func ConvertGFF3Genes(gr *gff3.Reader, w *Writer, opts GeneOpts) error {
	exonType := opts.ExonType
	if exonType == "" {
		exonType = "exon"
	}
	parentTag := opts.ParentTag
	if parentTag == "" {
		parentTag = "Parent"
	}

	totalExons, totalGenes := 0, 0
	var curSeq, curGene, curStrand string
	var curStart, curEnd int
	var exonStarts, exonEnds []int

	flush := func() error {
		totalGenes++
		blockStarts, blockSizes, err := blocks(exonStarts, exonEnds)
		if err != nil {
			return err
		}
		rec := Record{
			Chrom:       curSeq,
			Start:       curStart - 1,
			End:         curEnd,
			Name:        curGene,
			Score:       1000,
			Strand:      curStrand,
			ThickStart:  curStart,
			ThickEnd:    curEnd,
			ItemRGB:     "255,255,255",
			BlockCount:  len(exonStarts),
			BlockSizes:  formatInts(blockSizes),
			BlockStarts: formatInts(blockStarts),
			Columns:     12,
		}
		return w.Write(&rec)
	}

	var exon gff3.Record
	for gr.Scan(&exon) {
		if exon.Type != exonType {
			continue
		}
		totalExons++
		parent, ok := exon.Attributes.Get(parentTag)
		if !ok {
			return errors.Errorf("bed: exon of %s at %d-%d has no %s attribute",
				exon.SeqID, exon.Start, exon.End, parentTag)
		}
		if curGene == "" || parent != curGene {
			if curGene != "" {
				if err := flush(); err != nil {
					return err
				}
			}
			curSeq = exon.SeqID
			curGene = parent
			curStart = exon.Start
			curEnd = exon.End
			exonStarts = []int{exon.Start}
			exonEnds = []int{exon.End}
		} else {
			exonStarts = append(exonStarts, exon.Start)
			exonEnds = append(exonEnds, exon.End)
			curEnd = exon.End
		}
		curStrand = exon.Strand
	}
	if err := gr.Err(); err != nil {
		return err
	}
	if curGene != "" {
		if err := flush(); err != nil {
			return err
		}
	}
	log.Printf("%d exon records of %d genes processed", totalExons, totalGenes)
	return w.Flush()
}
