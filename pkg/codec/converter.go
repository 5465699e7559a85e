package codec

import (
	"io"
	"strings"
)

// Format identifies one of the supported wire formats
type Format int

const (
	FormatBinary Format = iota
	FormatCSV
	FormatText
)

// Formats lists every supported format
var Formats = []Format{FormatBinary, FormatCSV, FormatText}

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "bin"
	case FormatCSV:
		return "csv"
	case FormatText:
		return "txt"
	default:
		return "unknown"
	}
}

// Extension returns the file extension conventionally used for the format, with the dot
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat resolves a format name or extension ("bin", ".csv", "text", ...)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "bin", "binary":
		return FormatBinary, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return 0, ErrUnknownFormat
	}
}

// Converter decodes and encodes record sets in a single format. Every format
// implements it identically so callers can pair any decoder with any encoder.
type Converter interface {
	// Format reports which wire format the converter handles
	Format() Format

	// Decode consumes r in full and returns the records it contains.
	// On failure no records are returned.
	Decode(r io.Reader) (*RecordSet, error)

	// Encode writes records to w in order. It does not flush w.
	Encode(w io.Writer, records []Record) error
}

type options struct {
	maxRecordSize uint32
}

// Option tunes a converter built by NewConverter
type Option func(*options)

// WithMaxRecordSize bounds the body length a binary frame may declare
func WithMaxRecordSize(n uint32) Option {
	return func(o *options) {
		o.maxRecordSize = n
	}
}

// NewConverter returns the converter for the given format
func NewConverter(f Format, opts ...Option) (Converter, error) {
	o := options{maxRecordSize: DefaultMaxRecordSize}
	for _, opt := range opts {
		opt(&o)
	}

	switch f {
	case FormatBinary:
		c := NewBinaryCodec()
		if o.maxRecordSize > 0 {
			c.MaxRecordSize = o.maxRecordSize
		}
		return c, nil
	case FormatCSV:
		return NewCSVCodec(), nil
	case FormatText:
		return NewTextCodec(), nil
	default:
		return nil, ErrUnknownFormat
	}
}
