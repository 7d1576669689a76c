package huffpack

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedTable struct {
	header []byte // lengths followed by symbols
	table  *decodeTable
}

// tableCache keeps decode tables for recently seen headers, keyed by the
// xxhash of the lengths and symbols arrays.
type tableCache struct {
	entries *lru.Cache[uint64, cachedTable]
}

func newTableCache(size int) *tableCache {
	if size <= 0 {
		return &tableCache{}
	}
	entries, err := lru.New[uint64, cachedTable](size)
	if err != nil {
		return &tableCache{}
	}
	return &tableCache{entries: entries}
}

func headerKey(c *Container) []byte {
	key := make([]byte, 0, len(c.Lengths)+len(c.Symbols))
	key = append(key, c.Lengths...)
	return append(key, c.Symbols...)
}

func (tc *tableCache) get(c *Container) (*decodeTable, error) {
	if tc == nil || tc.entries == nil {
		return buildDecodeTable(c)
	}

	header := headerKey(c)
	key := xxhash.Sum64(header)
	if hit, ok := tc.entries.Get(key); ok && bytes.Equal(hit.header, header) {
		return hit.table, nil
	}

	dt, err := buildDecodeTable(c)
	if err != nil {
		return nil, err
	}
	tc.entries.Add(key, cachedTable{header: header, table: dt})
	return dt, nil
}

// len reports the number of cached tables.
func (tc *tableCache) len() int {
	if tc == nil || tc.entries == nil {
		return 0
	}
	return tc.entries.Len()
}

func buildDecodeTable(c *Container) (*decodeTable, error) {
	table, err := c.Table()
	if err != nil {
		return nil, err
	}
	return newDecodeTable(table), nil
}
