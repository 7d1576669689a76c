// Package canonical assigns canonical Huffman codewords from code lengths.
//
// A canonical code is fully determined by the multiset of (symbol, length)
// pairs: entries are ordered by length then symbol, the first codeword is all
// zeros, and each following codeword is (previous+1) shifted left by the
// length difference. Only the lengths need to be stored to rebuild the code.
package canonical

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"
	"strconv"
)

// MaxCodeLength is the longest codeword representable by Code.
const MaxCodeLength = 64

var (
	// ErrCodeOverflow indicates a codeword that does not fit its length or MaxCodeLength.
	ErrCodeOverflow = errors.New("canonical code overflow")
	// ErrInvalidTable indicates a zero code length or a repeated symbol.
	ErrInvalidTable = errors.New("invalid code table")
)

// Entry pairs a symbol with its code length.
type Entry struct {
	Symbol byte
	Len    uint8
}

// Code is a codeword of Len bits. The most significant of the Len low bits
// of Bits is the first bit on the wire.
type Code struct {
	Bits uint64
	Len  uint8
}

// String returns the codeword as a quoted bit string, e.g. "010".
func (c Code) String() string {
	if c.Len == 0 {
		return `""`
	}
	s := strconv.FormatUint(c.Bits, 2)
	for len(s) < int(c.Len) {
		s = "0" + s
	}
	return strconv.Quote(s)
}

// HasPrefix reports whether p is a prefix of c (or equal to it).
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

// Sort orders entries by length ascending, then symbol ascending.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Len != entries[j].Len {
			return entries[i].Len < entries[j].Len
		}
		return entries[i].Symbol < entries[j].Symbol
	})
}

// Assign returns the canonical codewords for entries, which must already be in
// canonical order (see Sort). codes[i] belongs to entries[i].
func Assign(entries []Entry) ([]Code, error) {
	codes := make([]Code, len(entries))
	var code uint64
	for i, e := range entries {
		if e.Len == 0 {
			return nil, fmt.Errorf("%w: zero length for symbol %d", ErrInvalidTable, e.Symbol)
		}
		if e.Len > MaxCodeLength {
			return nil, fmt.Errorf("%w: length %d for symbol %d exceeds %d", ErrCodeOverflow, e.Len, e.Symbol, MaxCodeLength)
		}
		if i > 0 {
			prev := entries[i-1].Len
			if e.Len < prev {
				return nil, fmt.Errorf("entries not in canonical order at index %d", i)
			}
			if code == ^uint64(0) {
				return nil, fmt.Errorf("%w at symbol %d", ErrCodeOverflow, e.Symbol)
			}
			next := code + 1
			shift := int(e.Len - prev)
			if bits.Len64(next)+shift > MaxCodeLength {
				return nil, fmt.Errorf("%w at symbol %d", ErrCodeOverflow, e.Symbol)
			}
			code = next << shift
		}
		if e.Len < MaxCodeLength && code>>e.Len != 0 {
			return nil, fmt.Errorf("%w: codeword for symbol %d needs more than %d bits", ErrCodeOverflow, e.Symbol, e.Len)
		}
		codes[i] = Code{Bits: code, Len: e.Len}
	}
	return codes, nil
}

// IsPrefixFree reports whether no code in codes is a prefix of another.
func IsPrefixFree(codes []Code) bool {
	for i := range codes {
		for j := range codes {
			if i != j && codes[j].HasPrefix(codes[i]) {
				return false
			}
		}
	}
	return true
}
