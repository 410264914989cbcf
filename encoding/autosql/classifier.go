package autosql

import "strconv"

// A Classifier accumulates the values of one column and maintains the
// running promoted type for them.  The zero Classifier is ready to
// use.  Classifiers are not thread-safe.
type Classifier struct {
	typ     Type
	lengths map[int]int
}

// NewClassifier returns an empty column classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// AddValue folds one column value into the running type.  Any string
// is acceptable, including the empty one; AddValue never fails.
func (c *Classifier) AddValue(value string) {
	c.typ = Promote(c.typ, ClassifyValue(value))
	if c.lengths == nil {
		c.lengths = make(map[int]int)
	}
	c.lengths[len(value)]++
}

// Type returns the running promoted type, TypeNone if no value has
// been added yet.
func (c *Classifier) Type() Type {
	return c.typ
}

// FixedWidth reports whether every observed value had the same length.
// An empty classifier counts as fixed-width.
func (c *Classifier) FixedWidth() bool {
	return len(c.lengths) <= 1
}

// DataType returns the autoSql type name for the column.  A
// fixed-width column of string values is reported as a character
// array ("char[L]") rather than a variable-length string.
func (c *Classifier) DataType() string {
	if (c.typ == TypeString || c.typ == TypeLstring) && len(c.lengths) == 1 {
		for l := range c.lengths {
			return "char[" + strconv.Itoa(l) + "]"
		}
	}
	return c.typ.String()
}
