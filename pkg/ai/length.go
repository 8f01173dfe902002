package ai

import "strconv"

// Length is the length rule of an AI value: either a fixed size or a variable
// size with an optional maximum. The zero value is an unbounded variable
// length. A fixed length never carries a maximum.
type Length struct {
	fixed int
	max   int
}

// Fixed returns a fixed length of n characters. n must be positive; anything
// else yields a length rejected by Spec.Validate.
func Fixed(n int) Length {
	if n <= 0 {
		return Length{fixed: -1}
	}
	return Length{fixed: n}
}

// Variable returns a variable length bounded by max characters. A max of 0
// is the same as Unbounded.
func Variable(max int) Length {
	return Length{max: max}
}

// Unbounded returns a variable length without a maximum
func Unbounded() Length {
	return Length{}
}

// IsFixed reports whether the length is fixed
func (l Length) IsFixed() bool {
	return l.fixed > 0
}

// Size returns the fixed size, if the length is fixed
func (l Length) Size() (int, bool) {
	return l.fixed, l.fixed > 0
}

// Max returns the maximum of a variable length, if it has one
func (l Length) Max() (int, bool) {
	return l.max, l.fixed == 0 && l.max > 0
}

// String renders the length in GS1 format-string notation: "14" for fixed,
// "..20" for variable up to 20 and ".." for unbounded.
func (l Length) String() string {
	if l.fixed > 0 {
		return strconv.Itoa(l.fixed)
	}
	if l.max > 0 {
		return ".." + strconv.Itoa(l.max)
	}
	return ".."
}

func (l Length) valid() bool {
	return l.fixed >= 0 && l.max >= 0 && !(l.fixed > 0 && l.max > 0)
}
