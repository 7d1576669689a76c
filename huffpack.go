// Package huffpack is a byte-oriented canonical Huffman compressor.
//
// An input is counted, a Huffman tree is built over the byte values that
// occur, and the tree's code lengths are turned into a canonical code. The
// container stores only those lengths and the symbols, followed by the
// bit-packed payload:
//
//	paddingBits  uint8       zero bits appended to the last payload byte (0-7)
//	alphabetSize uint8       n, distinct symbols (0-128)
//	lengths      [n]uint8    code length per symbol, canonical order
//	symbols      [n]uint8    symbol value per symbol, same order
//	payload      remainder   codewords, MSB first
package huffpack

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/icza/bitio"

	"github.com/seiflotfy/huffpack/canonical"
	"github.com/seiflotfy/huffpack/codetree"
)

const (
	// MaxAlphabetSize is the largest number of distinct byte values a container holds.
	MaxAlphabetSize = 128

	defaultChunkSize      = 1 << 20 // 1MiB
	defaultTableCacheSize = 64
)

var (
	// ErrEmptyAlphabet indicates a tree was requested for input with no bytes.
	ErrEmptyAlphabet = codetree.ErrEmptyAlphabet
	// ErrAlphabetTooLarge indicates more than MaxAlphabetSize distinct byte values.
	ErrAlphabetTooLarge = errors.New("alphabet too large")
	// ErrTruncatedHeader indicates a container shorter than its header.
	ErrTruncatedHeader = errors.New("truncated header")
	// ErrCorruptPadding indicates a padding count above 7 or nonzero padding bits.
	ErrCorruptPadding = errors.New("corrupt padding")
	// ErrUnmatchedBits indicates payload bits that do not form a known codeword.
	ErrUnmatchedBits = errors.New("unmatched bits")
	// ErrCodeOverflow indicates code lengths that cannot be assigned canonical codewords.
	ErrCodeOverflow = canonical.ErrCodeOverflow
	// ErrInvalidTable indicates a header with a zero code length or a repeated symbol.
	ErrInvalidTable = canonical.ErrInvalidTable
)

// Config holds configuration for encoding and decoding.
type Config struct {
	Concurrency    int // Frequency counting workers (0 or 1 = sequential)
	ChunkSize      int // Bytes per counting chunk (0 = default 1MiB)
	TableCacheSize int // Decoder table cache entries (0 = default 64, <0 = disabled)
}

// Option is a functional option for configuring an Encoder or Decoder.
type Option func(*Config)

// WithConcurrency sets the number of goroutines used to count byte frequencies.
func WithConcurrency(n int) Option {
	return func(c *Config) {
		c.Concurrency = n
	}
}

// WithChunkSize sets how many input bytes each counting worker handles at a time.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		c.ChunkSize = n
	}
}

// WithTableCacheSize sets how many decode tables a Decoder keeps.
// A negative size disables caching.
func WithTableCacheSize(n int) Option {
	return func(c *Config) {
		c.TableCacheSize = n
	}
}

func newConfig(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.TableCacheSize == 0 {
		cfg.TableCacheSize = defaultTableCacheSize
	}
	return cfg
}

// Encoder compresses byte slices into containers.
type Encoder struct {
	config Config
}

// NewEncoder creates a new encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{config: newConfig(opts)}
}

// Encode compresses data and returns the serialized container.
func (e *Encoder) Encode(data []byte) ([]byte, error) {
	c, err := e.EncodeContainer(data)
	if err != nil {
		return nil, err
	}
	return c.MarshalBinary()
}

// EncodeContainer compresses data into a Container.
// Empty input yields an empty container.
func (e *Encoder) EncodeContainer(data []byte) (*Container, error) {
	if len(data) == 0 {
		return &Container{}, nil
	}

	freqs := CountParallel(data, e.config.Concurrency, e.config.ChunkSize)
	if n := freqs.Distinct(); n > MaxAlphabetSize {
		return nil, fmt.Errorf("%w: %d distinct byte values, max %d", ErrAlphabetTooLarge, n, MaxAlphabetSize)
	}

	tree, err := codetree.Build((*[256]uint64)(&freqs))
	if err != nil {
		return nil, err
	}
	lengths := tree.Lengths()
	table, err := canonical.FromLengths(&lengths)
	if err != nil {
		return nil, fmt.Errorf("assign canonical codes: %w", err)
	}

	payload, padding, err := packPayload(table, data, freqs.bitLen(&lengths))
	if err != nil {
		return nil, err
	}
	return newContainer(table, padding, payload), nil
}

// packPayload writes the codeword of every input byte, MSB first, and
// returns the packed bytes and the number of zero bits padding the last one.
func packPayload(table *canonical.Table, data []byte, bitLen uint64) ([]byte, uint8, error) {
	var codes [256]canonical.Code
	for _, e := range table.Entries() {
		codes[e.Symbol], _ = table.Code(e.Symbol)
	}

	var buf bytes.Buffer
	buf.Grow(int((bitLen + 7) / 8))
	w := bitio.NewWriter(&buf)
	for _, b := range data {
		c := codes[b]
		w.TryWriteBits(c.Bits, c.Len)
	}
	padding := w.TryAlign()
	if w.TryError != nil {
		return nil, 0, fmt.Errorf("pack payload: %w", w.TryError)
	}
	if err := w.Close(); err != nil {
		return nil, 0, fmt.Errorf("pack payload: %w", err)
	}
	if want := uint8((8 - bitLen%8) % 8); padding != want {
		return nil, 0, fmt.Errorf("pack payload: padding %d, expected %d", padding, want)
	}
	return buf.Bytes(), padding, nil
}

// Decoder decompresses containers. It caches decode tables by header, and
// is safe for concurrent use.
type Decoder struct {
	config Config
	tables *tableCache
}

// NewDecoder creates a new decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	cfg := newConfig(opts)
	return &Decoder{config: cfg, tables: newTableCache(cfg.TableCacheSize)}
}

// Decode parses a serialized container and returns the original bytes.
func (d *Decoder) Decode(blob []byte) ([]byte, error) {
	var c Container
	if err := c.UnmarshalBinary(blob); err != nil {
		return nil, err
	}
	return d.DecodeContainer(&c)
}

// DecodeContainer returns the original bytes encoded in c.
func (d *Decoder) DecodeContainer(c *Container) ([]byte, error) {
	if err := validateContainer(c); err != nil {
		return nil, err
	}
	if c.AlphabetSize() == 0 {
		return []byte{}, nil
	}
	dt, err := d.tables.get(c)
	if err != nil {
		return nil, err
	}
	return dt.decode(c.Payload, c.BitLen())
}

var defaultDecoder = NewDecoder()

// Encode compresses data with default options.
func Encode(data []byte) ([]byte, error) {
	return NewEncoder().Encode(data)
}

// Decode decompresses a container produced by Encode.
func Decode(blob []byte) ([]byte, error) {
	return defaultDecoder.Decode(blob)
}
