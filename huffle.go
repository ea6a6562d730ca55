package huffle

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/huffle/huffle/huffman"
)

// defaultMaxDecodedSize caps how many bytes Decompress will allocate for a
// container's declared original size.
const defaultMaxDecodedSize = 1 << 30 // 1 GiB

var (
	// ErrEmptyInput indicates Compress was called with a zero-length buffer.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidFormat indicates the container failed the marker check or its
	// grammar is malformed.
	ErrInvalidFormat = errors.New("invalid container format")
	// ErrCorruptPayload indicates the packed payload cannot produce the
	// declared number of bytes.
	ErrCorruptPayload = errors.New("corrupt payload")
	// ErrExtensionTooLong indicates the extension does not fit the container's
	// single length byte.
	ErrExtensionTooLong = errors.New("extension too long")
)

// Config holds configuration for a Codec.
type Config struct {
	Logger         *logrus.Logger // stage-level debug tracing (nil = standard logger)
	MaxDecodedSize uint64         // Decompress allocation cap in bytes (0 = default 1 GiB)
}

// Option is a functional option for configuring a Codec.
type Option func(*Config)

// WithLogger routes the codec's debug tracing to l.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMaxDecodedSize caps the original size Decompress is willing to
// allocate. Containers declaring a larger size are rejected.
func WithMaxDecodedSize(n uint64) Option {
	return func(c *Config) {
		c.MaxDecodedSize = n
	}
}

// Codec compresses byte buffers into Containers and restores them. It
// carries only immutable configuration, so a single Codec is safe for
// concurrent use.
type Codec struct {
	config Config
	log    *logrus.Logger
}

// New creates a new codec with the given options.
func New(opts ...Option) *Codec {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Codec{config: cfg, log: log}
}

func (c *Codec) maxDecodedSize() uint64 {
	if c.config.MaxDecodedSize == 0 {
		return defaultMaxDecodedSize
	}
	return c.config.MaxDecodedSize
}

// Stats describes one compression run.
type Stats struct {
	OriginalSize   uint64  // input bytes
	CompressedSize uint64  // serialized container bytes
	Ratio          float64 // percent saved: (1 - compressed/original) * 100
	SpaceSaved     int64   // original - compressed, negative when overhead wins
}

func newStats(originalSize, compressedSize uint64) Stats {
	return Stats{
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		Ratio:          (1 - float64(compressedSize)/float64(originalSize)) * 100,
		SpaceSaved:     int64(originalSize) - int64(compressedSize),
	}
}

// Compress encodes data into a self-describing Container and reports size
// statistics. ext is the original file extension (may be empty) carried
// inside the container for the decompressing side.
func (c *Codec) Compress(data []byte, ext string) (*Container, Stats, error) {
	if len(data) == 0 {
		return nil, Stats{}, ErrEmptyInput
	}
	if len(ext) > maxExtensionBytes {
		return nil, Stats{}, fmt.Errorf("%w: %d bytes", ErrExtensionTooLong, len(ext))
	}

	freqs := huffman.Count(data)
	root, err := huffman.Build(freqs)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("build tree: %w", err)
	}
	codes, err := root.Codes()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("generate codes: %w", err)
	}
	c.log.Debugf("%d distinct symbols over %d input bytes", freqs.Distinct(), len(data))

	payload, padding, err := packPayload(data, codes)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("pack payload: %w", err)
	}
	c.log.Debugf("packed %d bytes into %d (%d filler bits)", len(data), len(payload), padding)

	ctr := &Container{
		Extension:    ext,
		OriginalSize: uint64(len(data)),
		Padding:      padding,
		Root:         root,
		Payload:      payload,
	}
	stats := newStats(uint64(len(data)), uint64(ctr.Size()))
	c.log.Debugf("container is %d bytes, ratio %.2f%%", stats.CompressedSize, stats.Ratio)
	return ctr, stats, nil
}

// Decompress reconstructs the original bytes and extension from a Container.
func (c *Codec) Decompress(ctr *Container) ([]byte, string, error) {
	if ctr == nil {
		return nil, "", fmt.Errorf("%w: nil container", ErrInvalidFormat)
	}
	if err := validateContainer(ctr); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if limit := c.maxDecodedSize(); ctr.OriginalSize > limit {
		return nil, "", fmt.Errorf("%w: declared size %d exceeds limit %d", ErrInvalidFormat, ctr.OriginalSize, limit)
	}

	data, err := unpackPayload(ctr.Payload, ctr.Padding, ctr.OriginalSize, ctr.Root)
	if err != nil {
		return nil, "", err
	}
	c.log.Debugf("restored %d bytes from a %d byte payload", len(data), len(ctr.Payload))
	return data, ctr.Extension, nil
}

// Compress encodes data with a default codec.
func Compress(data []byte, ext string) (*Container, Stats, error) {
	return New().Compress(data, ext)
}

// Decompress reconstructs the original bytes and extension with a default
// codec.
func Decompress(ctr *Container) ([]byte, string, error) {
	return New().Decompress(ctr)
}
