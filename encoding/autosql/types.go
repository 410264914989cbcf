package autosql

import (
	"strconv"
)

// Type is an autoSql primitive column type.  The zero value, TypeNone,
// means "no observation yet" and is the identity element of Promote.
type Type int

// The nine primitive types, in increasing order of generality.  The
// constant values double as ranks: a type with a higher value can
// represent a strictly larger set of column values.
const (
	TypeNone Type = iota
	TypeByte
	TypeUbyte
	TypeShort
	TypeUshort
	TypeInt
	TypeUint
	TypeFloat
	TypeString
	TypeLstring
)

var typeNames = [...]string{
	TypeNone:    "none",
	TypeByte:    "byte",
	TypeUbyte:   "ubyte",
	TypeShort:   "short",
	TypeUshort:  "ushort",
	TypeInt:     "int",
	TypeUint:    "uint",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeLstring: "lstring",
}

// String returns the autoSql spelling of the type.
func (t Type) String() string {
	if t < TypeNone || t > TypeLstring {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// IsSigned reports whether t is a signed integer type.
func (t Type) IsSigned() bool {
	return t == TypeByte || t == TypeShort || t == TypeInt
}

// IsUnsigned reports whether t is an unsigned integer type.
func (t Type) IsUnsigned() bool {
	return t == TypeUbyte || t == TypeUshort || t == TypeUint
}

// IsInteger reports whether t is one of the six integer types.
func (t Type) IsInteger() bool {
	return t >= TypeByte && t <= TypeUint
}

// IntType returns the narrowest integer type able to represent x, or
// TypeNone if x is outside [-2^31, 2^32).  Nonnegative values are
// assigned split signed/unsigned sub-ranges, so 127 classifies as byte
// while 200 classifies as ubyte.
func IntType(x int64) Type {
	if x < 0 {
		switch {
		case x > -(1<<7)-1:
			return TypeByte
		case x > -(1<<15)-1:
			return TypeShort
		case x > -(1<<31)-1:
			return TypeInt
		}
		return TypeNone
	}
	switch {
	case x < 1<<7:
		return TypeByte
	case x < 1<<8:
		return TypeUbyte
	case x < 1<<15:
		return TypeShort
	case x < 1<<16:
		return TypeUshort
	case x < 1<<31:
		return TypeInt
	case x < 1<<32:
		return TypeUint
	}
	return TypeNone
}

// ClassifyValue returns the narrowest type for a single column value.
// Every string is classifiable; ClassifyValue never fails.
func ClassifyValue(value string) Type {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if t := IntType(n); t != TypeNone {
			return t
		}
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return TypeFloat
	}
	if len(value) < 256 {
		return TypeString
	}
	return TypeLstring
}

// Promote merges two single-value classifications into the narrowest
// type able to represent values of both.  It is commutative and
// associative, with TypeNone as the identity.
//
// For an integer pair of mixed signedness the plain rank maximum is
// wrong: a ubyte-range value of 200 and a byte-range value of -5
// cannot share one byte, so the pair widens to short.  If the unsigned
// type already fits inside the signed one, the signed type wins;
// otherwise the result is the next signed width covering both, capped
// at int.
func Promote(x, y Type) Type {
	if x == TypeNone {
		return y
	}
	if y == TypeNone {
		return x
	}
	if x.IsInteger() && y.IsInteger() && x.IsSigned() != y.IsSigned() {
		signed, unsigned := x, y
		if y.IsSigned() {
			signed, unsigned = y, x
		}
		if unsigned < signed {
			return signed
		}
		r := signed
		if unsigned-1 > r {
			r = unsigned - 1
		}
		r += 2
		if r > TypeInt {
			r = TypeInt
		}
		return r
	}
	if x >= y {
		return x
	}
	return y
}
