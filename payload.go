package huffle

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"

	"github.com/huffle/huffle/huffman"
)

// packPayload concatenates each input byte's code MSB-first and pads the
// tail with zero bits to the next byte boundary. The returned padding is the
// number of filler bits, 0-7.
func packPayload(data []byte, table huffman.CodeTable) ([]byte, uint8, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	bits := uint64(0)
	for _, b := range data {
		code := table[b]
		if code.Len == 0 {
			return nil, 0, fmt.Errorf("no code for byte %#02x", b)
		}
		if err := w.WriteBits(code.Bits, code.Len); err != nil {
			return nil, 0, err
		}
		bits += uint64(code.Len)
	}
	if err := w.Close(); err != nil {
		return nil, 0, err
	}

	padding := uint8((8 - bits%8) % 8)
	return buf.Bytes(), padding, nil
}

// unpackPayload walks the tree bit by bit, 0 descending left and 1 right,
// and emits one byte per leaf until count bytes are produced. The final
// padding bits are filler and are never interpreted as a partial code.
// Exhausting the bit budget early reports ErrCorruptPayload.
func unpackPayload(payload []byte, padding uint8, count uint64, root *huffman.Node) ([]byte, error) {
	dataBits := uint64(len(payload)) * 8
	if uint64(padding) > dataBits {
		return nil, fmt.Errorf("%w: padding %d exceeds payload of %d bits", ErrCorruptPayload, padding, dataBits)
	}
	dataBits -= uint64(padding)

	if count == 0 {
		return []byte{}, nil
	}

	// Single-leaf tree: the packer wrote one placeholder bit per byte, so
	// the budget still detects truncation without walking anything.
	if root.Leaf() {
		if dataBits < count {
			return nil, fmt.Errorf("%w: %d placeholder bits cannot produce %d bytes", ErrCorruptPayload, dataBits, count)
		}
		return bytes.Repeat([]byte{root.Symbol}, int(count)), nil
	}

	// Every code is at least one bit, so the output can never outnumber
	// the data bits. Rejecting here also bounds the allocation below.
	if count > dataBits {
		return nil, fmt.Errorf("%w: %d data bits cannot produce %d bytes", ErrCorruptPayload, dataBits, count)
	}

	out := make([]byte, 0, count)
	r := bitio.NewReader(bytes.NewReader(payload))
	remaining := dataBits
	for uint64(len(out)) < count {
		node := root
		for !node.Leaf() {
			if remaining == 0 {
				return nil, fmt.Errorf("%w: bitstream exhausted after %d of %d bytes", ErrCorruptPayload, len(out), count)
			}
			bit, err := r.ReadBool()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
			}
			remaining--
			if bit {
				node = node.Right
			} else {
				node = node.Left
			}
		}
		out = append(out, node.Symbol)
	}
	return out, nil
}
