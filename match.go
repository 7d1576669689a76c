package huffpack

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"

	"github.com/seiflotfy/huffpack/canonical"
)

// decodeTable matches canonical codewords one bit at a time.
//
// For each length l, the codewords of that length are the consecutive
// integers first[l] .. first[l]+count[l]-1, and their symbols sit at
// symbols[offset[l]:]. An accumulated code of l bits is a match iff
// code-first[l] < count[l].
type decodeTable struct {
	maxLen  uint8
	minLen  uint8
	first   [canonical.MaxCodeLength + 1]uint64
	count   [canonical.MaxCodeLength + 1]uint32
	offset  [canonical.MaxCodeLength + 1]uint32
	symbols []byte
}

func newDecodeTable(table *canonical.Table) *decodeTable {
	dt := &decodeTable{
		maxLen:  table.MaxLen(),
		symbols: make([]byte, table.Len()),
	}
	entries := table.Entries()
	codes := table.Codes()
	for i, e := range entries {
		dt.symbols[i] = e.Symbol
		if dt.count[e.Len] == 0 {
			dt.first[e.Len] = codes[i].Bits
			dt.offset[e.Len] = uint32(i)
		}
		dt.count[e.Len]++
	}
	if len(entries) > 0 {
		dt.minLen = entries[0].Len
	}
	return dt
}

// decode matches bitLen bits of payload against the table.
func (dt *decodeTable) decode(payload []byte, bitLen uint64) ([]byte, error) {
	if bitLen == 0 {
		return []byte{}, nil
	}
	out := make([]byte, 0, bitLen/uint64(max(dt.minLen, 1)))
	r := bitio.NewReader(bytes.NewReader(payload))

	var pos uint64
	for pos < bitLen {
		start := pos
		var code uint64
		matched := false
		for l := uint8(1); l <= dt.maxLen; l++ {
			if pos == bitLen {
				break
			}
			bit := r.TryReadBool()
			pos++
			code <<= 1
			if bit {
				code |= 1
			}
			if n := dt.count[l]; n != 0 && code >= dt.first[l] && code-dt.first[l] < uint64(n) {
				out = append(out, dt.symbols[dt.offset[l]+uint32(code-dt.first[l])])
				matched = true
				break
			}
		}
		if r.TryError != nil {
			return nil, fmt.Errorf("read payload at bit %d: %w", start, r.TryError)
		}
		if !matched {
			return nil, fmt.Errorf("%w at bit %d of %d after %d symbols", ErrUnmatchedBits, start, bitLen, len(out))
		}
	}
	return out, nil
}
