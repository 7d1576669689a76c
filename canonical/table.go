package canonical

import "fmt"

// Table is an immutable canonical code table. The zero value is an empty table.
type Table struct {
	entries  []Entry
	codes    []Code
	bySymbol [256]Code
	maxLen   uint8
}

// New builds a table from (symbol, length) pairs given in any order.
// The input slice is not modified.
func New(entries []Entry) (*Table, error) {
	sorted := append([]Entry(nil), entries...)
	var seen [256]bool
	for _, e := range sorted {
		if seen[e.Symbol] {
			return nil, fmt.Errorf("%w: symbol %d repeated", ErrInvalidTable, e.Symbol)
		}
		seen[e.Symbol] = true
	}
	Sort(sorted)

	codes, err := Assign(sorted)
	if err != nil {
		return nil, err
	}

	t := &Table{entries: sorted, codes: codes}
	for i, e := range sorted {
		t.bySymbol[e.Symbol] = codes[i]
		if e.Len > t.maxLen {
			t.maxLen = e.Len
		}
	}
	return t, nil
}

// FromLengths builds a table from a per-symbol length array; zero means absent.
func FromLengths(lengths *[256]uint8) (*Table, error) {
	entries := make([]Entry, 0, 256)
	for sym, l := range lengths {
		if l != 0 {
			entries = append(entries, Entry{Symbol: byte(sym), Len: l})
		}
	}
	return New(entries)
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int { return len(t.entries) }

// MaxLen returns the longest code length, 0 for an empty table.
func (t *Table) MaxLen() uint8 { return t.maxLen }

// Entries returns the entries in canonical order. The slice must not be modified.
func (t *Table) Entries() []Entry { return t.entries }

// Codes returns codewords parallel to Entries. The slice must not be modified.
func (t *Table) Codes() []Code { return t.codes }

// Code returns the codeword for sym and whether sym is in the table.
func (t *Table) Code(sym byte) (Code, bool) {
	c := t.bySymbol[sym]
	return c, c.Len != 0
}
