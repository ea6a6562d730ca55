package huffle

import (
	"bytes"
	"errors"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("hello"), ".txt")
	f.Add([]byte(""), "")
	f.Add([]byte("a"), ".a")
	f.Add([]byte("aaaabbbccd"), ".log")
	f.Add([]byte("null\x00byte"), "")
	f.Add([]byte{0xFF, 0x00, 0xFF}, ".bin")
	f.Add(bytes.Repeat([]byte("ab"), 300), ".gz")

	f.Fuzz(func(t *testing.T, data []byte, ext string) {
		ctr, _, err := Compress(data, ext)
		if err != nil {
			if len(data) == 0 && errors.Is(err, ErrEmptyInput) {
				return
			}
			if len(ext) > maxExtensionBytes && errors.Is(err, ErrExtensionTooLong) {
				return
			}
			t.Fatalf("Compress failed: %v", err)
		}

		var blob bytes.Buffer
		if _, err := ctr.WriteTo(&blob); err != nil {
			t.Fatalf("WriteTo failed: %v", err)
		}
		var loaded Container
		if _, err := loaded.ReadFrom(bytes.NewReader(blob.Bytes())); err != nil {
			t.Fatalf("ReadFrom failed: %v", err)
		}

		restored, gotExt, err := Decompress(&loaded)
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if !bytes.Equal(restored, data) {
			t.Errorf("restored %d bytes differ from the %d byte input", len(restored), len(data))
		}
		if gotExt != ext {
			t.Errorf("extension = %q, want %q", gotExt, ext)
		}
	})
}

// FuzzReadFrom throws arbitrary bytes at the container parser: anything may
// be rejected, nothing may panic, and whatever parses must decode within its
// own declared size.
func FuzzReadFrom(f *testing.F) {
	ctr, _, err := Compress([]byte("aaaabbbccd"), ".txt")
	if err != nil {
		f.Fatal(err)
	}
	var golden bytes.Buffer
	if _, err := ctr.WriteTo(&golden); err != nil {
		f.Fatal(err)
	}

	f.Add(golden.Bytes())
	f.Add([]byte("HUFL"))
	f.Add([]byte{})
	f.Add([]byte("HUFL\x01\x00\x00"))
	f.Add(append([]byte("HUFL\x01\x00\x00"), make([]byte, 64)...))

	f.Fuzz(func(t *testing.T, blob []byte) {
		var loaded Container
		if _, err := loaded.ReadFrom(bytes.NewReader(blob)); err != nil {
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ReadFrom error = %v, want an ErrInvalidFormat wrap", err)
			}
			return
		}

		data, _, err := Decompress(&loaded)
		if err == nil && uint64(len(data)) != loaded.OriginalSize {
			t.Errorf("decoded %d bytes, container declares %d", len(data), loaded.OriginalSize)
		}
	})
}
