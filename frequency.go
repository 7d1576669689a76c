package huffpack

import (
	"golang.org/x/sync/errgroup"
)

// FrequencyTable counts occurrences of each byte value.
type FrequencyTable [256]uint64

// Count returns the frequency of every byte value in data.
func Count(data []byte) FrequencyTable {
	var t FrequencyTable
	for _, b := range data {
		t[b]++
	}
	return t
}

// CountParallel counts data in chunkSize pieces on up to workers goroutines
// and sums the partial tables in chunk order. With workers <= 1 or input that
// fits in one chunk it is the same as Count.
func CountParallel(data []byte, workers, chunkSize int) FrequencyTable {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if workers <= 1 || len(data) <= chunkSize {
		return Count(data)
	}

	chunks := (len(data) + chunkSize - 1) / chunkSize
	partial := make([]FrequencyTable, chunks)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < chunks; i++ {
		i := i
		start := i * chunkSize
		end := min(start+chunkSize, len(data))
		g.Go(func() error {
			partial[i] = Count(data[start:end])
			return nil
		})
	}
	_ = g.Wait()

	var t FrequencyTable
	for i := range partial {
		for sym, n := range partial[i] {
			t[sym] += n
		}
	}
	return t
}

// Distinct returns the number of byte values with a nonzero count.
func (t *FrequencyTable) Distinct() int {
	n := 0
	for _, f := range t {
		if f != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() uint64 {
	var n uint64
	for _, f := range t {
		n += f
	}
	return n
}

// Symbols returns the byte values with a nonzero count in ascending order.
func (t *FrequencyTable) Symbols() []byte {
	syms := make([]byte, 0, 256)
	for sym, f := range t {
		if f != 0 {
			syms = append(syms, byte(sym))
		}
	}
	return syms
}

// bitLen returns the payload length in bits for the given code lengths.
func (t *FrequencyTable) bitLen(lengths *[256]uint8) uint64 {
	var n uint64
	for sym, f := range t {
		n += f * uint64(lengths[sym])
	}
	return n
}
