package huffpack

import (
	"bytes"
	"errors"
	"testing"
)

// Fuzz test for encode/decode round trips
func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("hello"))
	f.Add([]byte("AB"))
	f.Add([]byte(""))
	f.Add([]byte("a"))
	f.Add([]byte("hello世界"))
	f.Add([]byte("null\x00byte"))
	f.Add(bytes.Repeat([]byte{0x41}, 1000))

	f.Fuzz(func(t *testing.T, input []byte) {
		blob, err := Encode(input)
		freqs := Count(input)
		if freqs.Distinct() > MaxAlphabetSize {
			if !errors.Is(err, ErrAlphabetTooLarge) {
				t.Fatalf("expected ErrAlphabetTooLarge, got %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		got, err := Decode(blob)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !bytes.Equal(got, input) {
			t.Fatalf("round trip mismatch: got %q want %q", got, input)
		}
	})
}

// Fuzz test for decoding arbitrary containers
func FuzzDecode(f *testing.F) {
	f.Add([]byte{0, 0})
	f.Add([]byte{6, 2, 1, 1, 'A', 'B', 0x40})
	f.Add([]byte{0, 1, 1, 'A', 0x00})
	f.Add([]byte{7, 3, 1, 2, 2, 'c', 'a', 'b', 0xBC, 0x00})

	f.Fuzz(func(t *testing.T, blob []byte) {
		out, err := Decode(blob)
		if err != nil {
			return
		}
		// Anything that decodes must re-encode to something that decodes the same.
		again, err := Encode(out)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		back, err := Decode(again)
		if err != nil {
			t.Fatalf("decode of re-encoded output failed: %v", err)
		}
		if !bytes.Equal(back, out) {
			t.Fatalf("re-encoded round trip mismatch")
		}
	})
}
