package huffpack

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"
)

func TestContainerLayout(t *testing.T) {
	c, err := NewEncoder().EncodeContainer([]byte("abbccc"))
	if err != nil {
		t.Fatalf("EncodeContainer failed: %v", err)
	}
	// c=0, a=10, b=11 -> "10 11 11 0 0 0" = 101111000, 9 bits.
	wantLengths := []uint8{1, 2, 2}
	wantSymbols := []byte{'c', 'a', 'b'}
	if !bytes.Equal(c.Lengths, wantLengths) || !bytes.Equal(c.Symbols, wantSymbols) {
		t.Fatalf("header: lengths %v symbols %q", c.Lengths, c.Symbols)
	}
	if c.BitLen() != 9 || c.Padding != 7 {
		t.Fatalf("bits %d padding %d, want 9 and 7", c.BitLen(), c.Padding)
	}

	blob, err := c.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	want := []byte{7, 3, 1, 2, 2, 'c', 'a', 'b', 0xBC, 0x00}
	if !bytes.Equal(blob, want) {
		t.Fatalf("blob: got %x want %x", blob, want)
	}
	if c.Size() != len(want) {
		t.Fatalf("Size: got %d want %d", c.Size(), len(want))
	}
}

func TestContainerWriteToReadFrom(t *testing.T) {
	data := randomBytes(11, 4000, 50)
	c, err := NewEncoder().EncodeContainer(data)
	if err != nil {
		t.Fatalf("EncodeContainer failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(c.Size()) || buf.Len() != c.Size() {
		t.Fatalf("WriteTo wrote %d bytes, buffer %d, want %d", n, buf.Len(), c.Size())
	}

	var got Container
	rn, err := got.ReadFrom(iotest.OneByteReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if rn != n {
		t.Fatalf("ReadFrom read %d bytes, want %d", rn, n)
	}
	out, err := NewDecoder().DecodeContainer(&got)
	if err != nil {
		t.Fatalf("DecodeContainer failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round trip through WriteTo/ReadFrom mismatch")
	}
}

func TestContainerReadFromErrors(t *testing.T) {
	var c Container
	if _, err := c.ReadFrom(bytes.NewReader([]byte{1})); !errors.Is(err, ErrTruncatedHeader) {
		t.Fatalf("expected ErrTruncatedHeader, got %v", err)
	}

	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte{0, 1, 1}), iotest.ErrReader(boom))
	if _, err := c.ReadFrom(r); !errors.Is(err, boom) {
		t.Fatalf("expected reader error, got %v", err)
	}
}

func TestContainerUnmarshalKeepsTargetOnError(t *testing.T) {
	c := Container{Padding: 1, Lengths: []uint8{1}, Symbols: []byte{'x'}, Payload: []byte{0}}
	if err := c.UnmarshalBinary([]byte{0, 2, 1}); err == nil {
		t.Fatalf("expected error")
	}
	if c.Padding != 1 || c.Symbols[0] != 'x' {
		t.Fatalf("container modified on error: %+v", c)
	}
}

func TestContainerMarshalRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		c    Container
		want error
	}{
		{"mismatched arrays", Container{Lengths: []uint8{1}, Symbols: []byte{'a', 'b'}}, ErrInvalidTable},
		{"padding over 7", Container{Padding: 9, Lengths: []uint8{1}, Symbols: []byte{'a'}, Payload: []byte{0}}, ErrCorruptPadding},
		{"too many symbols", Container{Lengths: make([]uint8, 129), Symbols: make([]byte, 129)}, ErrAlphabetTooLarge},
	}
	for _, tc := range cases {
		if _, err := tc.c.MarshalBinary(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
