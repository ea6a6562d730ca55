package huffle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/huffle/huffle/huffman"
)

const (
	containerMagic   = "HUFL"
	containerVersion = uint16(1)

	maxExtensionBytes = 255     // extension length is a single byte on the wire
	maxPayloadBytes   = 1 << 30 // 1 GiB
)

// Wire format (version 1):
//
//	magic[4] = "HUFL"
//	version  = uint16 little-endian
//	extLen   = uint8
//	ext      = extLen bytes
//	origSize = uint64 little-endian (original byte count)
//	padding  = uint8 (0..7 trailing filler bits in the payload)
//	tree     = preorder node tags: internal = bit 0 followed by both
//	           subtrees, leaf = bit 1 followed by 8 symbol bits; the tree
//	           section is zero-padded to the next byte boundary
//	payload  = packed code bits, verbatim, through end of stream
//
// The payload carries no length field: decoding stops after origSize output
// bytes, and the explicit padding count separates filler bits from data.

// Container is the self-describing compressed artifact: everything a decoder
// needs to reconstruct the original bytes and file extension.
type Container struct {
	Extension    string        // original file extension, may be empty
	OriginalSize uint64        // original byte count
	Padding      uint8         // trailing filler bits in Payload, 0..7
	Root         *huffman.Node // prefix tree the payload was coded with
	Payload      []byte        // packed code bits
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// treeWireBytes is the byte length of the serialized tree section for a tree
// with the given leaf count: one tag bit per node plus eight symbol bits per
// leaf, rounded up to a byte boundary.
func treeWireBytes(leaves int) int {
	bits := 10*leaves - 1
	return (bits + 7) / 8
}

// Size returns the exact number of bytes WriteTo produces. The container
// must carry a tree.
func (c *Container) Size() int {
	return len(containerMagic) + 2 + 1 + len(c.Extension) + 8 + 1 +
		treeWireBytes(c.Root.Leaves()) + len(c.Payload)
}

func validateContainer(c *Container) error {
	if len(c.Extension) > maxExtensionBytes {
		return fmt.Errorf("extension too long: %d bytes", len(c.Extension))
	}
	if c.Padding > 7 {
		return fmt.Errorf("padding out of range: %d", c.Padding)
	}
	if c.Root == nil {
		return fmt.Errorf("missing prefix tree")
	}
	if err := c.Root.Validate(); err != nil {
		return fmt.Errorf("malformed prefix tree: %w", err)
	}
	if len(c.Payload) > maxPayloadBytes {
		return fmt.Errorf("payload too large: %d bytes", len(c.Payload))
	}
	return nil
}

// WriteTo serializes the Container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	if err := validateContainer(c); err != nil {
		return 0, fmt.Errorf("invalid container: %w", err)
	}

	var tree bytes.Buffer
	bw := bitio.NewWriter(&tree)
	if err := huffman.WriteTree(bw, c.Root); err != nil {
		return 0, fmt.Errorf("encode tree: %w", err)
	}
	if err := bw.Close(); err != nil {
		return 0, fmt.Errorf("encode tree: %w", err)
	}

	var total int64
	n, err := writeBytes(w, []byte(containerMagic))
	total += n
	if err != nil {
		return total, err
	}

	if err := binary.Write(w, binary.LittleEndian, containerVersion); err != nil {
		return total, err
	}
	total += 2

	if err := binary.Write(w, binary.LittleEndian, uint8(len(c.Extension))); err != nil {
		return total, err
	}
	total++

	n, err = writeBytes(w, []byte(c.Extension))
	total += n
	if err != nil {
		return total, err
	}

	if err := binary.Write(w, binary.LittleEndian, c.OriginalSize); err != nil {
		return total, err
	}
	total += 8

	if err := binary.Write(w, binary.LittleEndian, c.Padding); err != nil {
		return total, err
	}
	total++

	n, err = writeBytes(w, tree.Bytes())
	total += n
	if err != nil {
		return total, err
	}

	n, err = writeBytes(w, c.Payload)
	total += n
	if err != nil {
		return total, err
	}

	return total, nil
}

// ReadFrom deserializes a Container from r. The payload extends to the end
// of the stream, so r should be scoped to exactly one container. Failures
// wrap ErrInvalidFormat and carry the byte offset of the offending field.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	var total int64

	var magic [4]byte
	magicOffset := total
	n, err := io.ReadFull(r, magic[:])
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("%w: read magic at offset %d: %v", ErrInvalidFormat, magicOffset, err)
	}
	if string(magic[:]) != containerMagic {
		return total, fmt.Errorf("%w: bad magic at offset %d: %q", ErrInvalidFormat, magicOffset, string(magic[:]))
	}

	var version uint16
	versionOffset := total
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return total, fmt.Errorf("%w: read version at offset %d: %v", ErrInvalidFormat, versionOffset, err)
	}
	total += 2
	if version != containerVersion {
		return total, fmt.Errorf("%w: unsupported version at offset %d: %d", ErrInvalidFormat, versionOffset, version)
	}

	var extLen uint8
	extLenOffset := total
	if err := binary.Read(r, binary.LittleEndian, &extLen); err != nil {
		return total, fmt.Errorf("%w: read extension length at offset %d: %v", ErrInvalidFormat, extLenOffset, err)
	}
	total++

	ext := make([]byte, int(extLen))
	extOffset := total
	n, err = io.ReadFull(r, ext)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("%w: read extension at offset %d: %v", ErrInvalidFormat, extOffset, err)
	}

	var tmp Container
	tmp.Extension = string(ext)

	sizeOffset := total
	if err := binary.Read(r, binary.LittleEndian, &tmp.OriginalSize); err != nil {
		return total, fmt.Errorf("%w: read original size at offset %d: %v", ErrInvalidFormat, sizeOffset, err)
	}
	total += 8

	paddingOffset := total
	if err := binary.Read(r, binary.LittleEndian, &tmp.Padding); err != nil {
		return total, fmt.Errorf("%w: read padding at offset %d: %v", ErrInvalidFormat, paddingOffset, err)
	}
	total++
	if tmp.Padding > 7 {
		return total, fmt.Errorf("%w: padding out of range at offset %d: %d", ErrInvalidFormat, paddingOffset, tmp.Padding)
	}

	// The tree section and the payload both flow through one bit reader:
	// bitio may buffer ahead of the bits it hands out, so the underlying
	// reader must not be touched again.
	treeOffset := total
	br := bitio.NewReader(r)
	root, err := huffman.ReadTree(br)
	if err != nil {
		return total, fmt.Errorf("%w: tree grammar at offset %d: %v", ErrInvalidFormat, treeOffset, err)
	}
	br.Align()
	total += int64(treeWireBytes(root.Leaves()))
	tmp.Root = root

	payloadOffset := total
	payload, err := io.ReadAll(io.LimitReader(br, maxPayloadBytes+1))
	total += int64(len(payload))
	if err != nil {
		return total, fmt.Errorf("%w: read payload at offset %d: %v", ErrInvalidFormat, payloadOffset, err)
	}
	if len(payload) > maxPayloadBytes {
		return total, fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidFormat, maxPayloadBytes)
	}
	tmp.Payload = payload

	if err := validateContainer(&tmp); err != nil {
		return total, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	*c = tmp
	return total, nil
}
