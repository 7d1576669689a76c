package huffpack

import (
	"fmt"
	"io"

	"github.com/seiflotfy/huffpack/canonical"
)

const (
	headerFixedLen = 2 // paddingBits + alphabetSize
	maxPaddingBits = 7
)

// Container is the parsed form of a compressed file.
//
// Lengths and Symbols are parallel arrays in canonical order. Payload holds
// the packed codewords; its final Padding bits are zero filler.
type Container struct {
	Padding uint8
	Lengths []uint8
	Symbols []byte
	Payload []byte
}

func newContainer(table *canonical.Table, padding uint8, payload []byte) *Container {
	entries := table.Entries()
	c := &Container{
		Padding: padding,
		Lengths: make([]uint8, len(entries)),
		Symbols: make([]byte, len(entries)),
		Payload: payload,
	}
	for i, e := range entries {
		c.Lengths[i] = e.Len
		c.Symbols[i] = e.Symbol
	}
	return c
}

// AlphabetSize returns the number of symbols in the code table.
func (c *Container) AlphabetSize() int { return len(c.Symbols) }

// BitLen returns the number of meaningful payload bits.
func (c *Container) BitLen() uint64 {
	bits := uint64(len(c.Payload)) * 8
	if uint64(c.Padding) > bits {
		return 0
	}
	return bits - uint64(c.Padding)
}

// Size returns the serialized length in bytes.
func (c *Container) Size() int {
	return headerFixedLen + 2*len(c.Symbols) + len(c.Payload)
}

// Table rebuilds the canonical code table described by the header.
func (c *Container) Table() (*canonical.Table, error) {
	entries := make([]canonical.Entry, len(c.Symbols))
	for i := range c.Symbols {
		entries[i] = canonical.Entry{Symbol: c.Symbols[i], Len: c.Lengths[i]}
	}
	table, err := canonical.New(entries)
	if err != nil {
		return nil, fmt.Errorf("header code table: %w", err)
	}
	return table, nil
}

func validateContainer(c *Container) error {
	if len(c.Lengths) != len(c.Symbols) {
		return fmt.Errorf("%w: %d lengths for %d symbols", ErrInvalidTable, len(c.Lengths), len(c.Symbols))
	}
	if len(c.Symbols) > MaxAlphabetSize {
		return fmt.Errorf("%w: %d symbols, max %d", ErrAlphabetTooLarge, len(c.Symbols), MaxAlphabetSize)
	}
	if c.Padding > maxPaddingBits {
		return fmt.Errorf("%w: %d padding bits", ErrCorruptPadding, c.Padding)
	}
	if c.Padding > 0 {
		if len(c.Payload) == 0 {
			return fmt.Errorf("%w: %d padding bits with empty payload", ErrCorruptPadding, c.Padding)
		}
		last := c.Payload[len(c.Payload)-1]
		if last&(1<<c.Padding-1) != 0 {
			return fmt.Errorf("%w: non-zero padding bits in final byte 0x%02x", ErrCorruptPadding, last)
		}
	}
	if len(c.Symbols) == 0 && len(c.Payload) != 0 {
		return fmt.Errorf("%w: %d payload bytes with empty alphabet", ErrUnmatchedBits, len(c.Payload))
	}
	return nil
}

// MarshalBinary serializes the container.
func (c *Container) MarshalBinary() ([]byte, error) {
	if err := validateContainer(c); err != nil {
		return nil, fmt.Errorf("invalid container: %w", err)
	}
	n := len(c.Symbols)
	out := make([]byte, 0, c.Size())
	out = append(out, c.Padding, uint8(n))
	out = append(out, c.Lengths...)
	out = append(out, c.Symbols...)
	out = append(out, c.Payload...)
	return out, nil
}

// UnmarshalBinary parses a serialized container. The payload aliases data.
func (c *Container) UnmarshalBinary(data []byte) error {
	if len(data) < headerFixedLen {
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedHeader, len(data), headerFixedLen)
	}
	padding := data[0]
	if padding > maxPaddingBits {
		return fmt.Errorf("%w: %d padding bits at offset 0", ErrCorruptPadding, padding)
	}
	n := int(data[1])
	if n > MaxAlphabetSize {
		return fmt.Errorf("%w: alphabet size %d at offset 1", ErrAlphabetTooLarge, n)
	}
	headerLen := headerFixedLen + 2*n
	if len(data) < headerLen {
		return fmt.Errorf("%w: %d bytes, header needs %d for %d symbols", ErrTruncatedHeader, len(data), headerLen, n)
	}

	tmp := Container{
		Padding: padding,
		Lengths: data[headerFixedLen : headerFixedLen+n : headerFixedLen+n],
		Symbols: data[headerFixedLen+n : headerLen : headerLen],
		Payload: data[headerLen:],
	}
	if err := validateContainer(&tmp); err != nil {
		return err
	}
	*c = tmp
	return nil
}

// WriteTo serializes the container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	b, err := c.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// ReadFrom reads a container from r until EOF. The payload has no length
// prefix, so r must yield exactly one container.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	var header [headerFixedLen]byte
	n, err := io.ReadFull(r, header[:])
	total := int64(n)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return total, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedHeader, n, headerFixedLen)
		}
		return total, fmt.Errorf("read header at offset 0: %w", err)
	}

	rest, err := io.ReadAll(r)
	total += int64(len(rest))
	if err != nil {
		return total, fmt.Errorf("read container body at offset %d: %w", headerFixedLen, err)
	}

	data := make([]byte, 0, headerFixedLen+len(rest))
	data = append(data, header[:]...)
	data = append(data, rest...)
	if err := c.UnmarshalBinary(data); err != nil {
		return total, err
	}
	return total, nil
}
