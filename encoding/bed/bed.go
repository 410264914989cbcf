// Package bed reads and writes BED files.
//
// BED is a tab-delimited genomic-interval format with up to 12
// canonical positional columns (chrom, start, end, name, score,
// strand, thickStart, thickEnd, itemRgb, blockCount, blockSizes,
// blockStarts) followed by any number of auxiliary columns of
// user-defined meaning.  Files in the wild freely mix widths between
// BED3 and BED12, so the Reader detects the canonical column count of
// each file by validating fields positionally and converging on the
// widest prefix every row satisfies.
package bed

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one BED row.  Columns says how many canonical columns are
// set; the remaining canonical fields hold zero values.  Aux holds any
// columns past the canonical prefix, unparsed.
type Record struct {
	Chrom       string
	Start       int
	End         int
	Name        string
	Score       int
	Strand      string
	ThickStart  int
	ThickEnd    int
	ItemRGB     string
	BlockCount  int
	BlockSizes  string
	BlockStarts string

	Columns int
	Aux     []string
}

// RowError describes a malformed BED row.  It is fatal for the file
// scan that produced it.
type RowError struct {
	Line   int    // 1-based line number
	Field  string // offending raw value, if a single field is at fault
	Reason string
}

func (e *RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("bed: line %d: %s: %q", e.Line, e.Reason, e.Field)
	}
	return fmt.Sprintf("bed: line %d: %s", e.Line, e.Reason)
}

func isCoord(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

func isScore(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 1000
}

func isStrand(s string) bool {
	return s == "+" || s == "-"
}

func isItemRGB(s string) bool {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

func isBlockCount(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func isBlockSizes(s string) bool {
	for _, p := range strings.Split(s, ",") {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return false
		}
	}
	return true
}

func isBlockStarts(s string) bool {
	prev := -1
	for i, p := range strings.Split(s, ",") {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return false
		}
		if i == 0 && n != 0 {
			// The first block starts at the feature start.
			return false
		}
		if n <= prev {
			return false
		}
		prev = n
	}
	return true
}

// fieldCheck holds the positional validators for the 12 canonical
// columns.
var fieldCheck = [12]func(string) bool{
	func(string) bool { return true }, // chrom
	isCoord,                           // start
	isCoord,                           // end
	func(string) bool { return true }, // name
	isScore,                           // score
	isStrand,                          // strand
	isCoord,                           // thickStart
	isCoord,                           // thickEnd
	isItemRGB,                         // itemRgb
	isBlockCount,                      // blockCount
	isBlockSizes,                      // blockSizes
	isBlockStarts,                     // blockStarts
}

// detectFormat determines how many leading fields of a row are valid
// canonical BED columns and how many are auxiliary.  The match is a
// greedy, non-backtracking, left-to-right prefix walk: the first field
// failing its positional validator ends the canonical span, whether or
// not a later field happens to satisfy its own rule.
//
// Column-group coupling is applied to the raw result: thickStart must
// not appear without thickEnd (7 clamps to 6), and the block triple
// must appear complete (10 and 11 clamp to 9).
func detectFormat(fields []string) (bedCols, auxCols int) {
	bedCols = len(fields)
	if bedCols > 12 {
		bedCols = 12
	}
	for i := 0; i < bedCols; i++ {
		if !fieldCheck[i](fields[i]) {
			bedCols = i
			break
		}
	}
	switch {
	case bedCols == 7:
		bedCols = 6
	case bedCols == 10 || bedCols == 11:
		bedCols = 9
	}
	return bedCols, len(fields) - bedCols
}
