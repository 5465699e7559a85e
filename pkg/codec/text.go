package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// RecordMarker opens every record block in the text format
const RecordMarker = "# Record"

// TextCodec reads and writes block-structured KEY: value records.
//
// Each block starts with a "# Record" line and holds one KEY: value pair per
// line. Other lines starting with '#' are comments. Enum values must match
// their upper-case names exactly.
//
// DESCRIPTION is written between double quotes without escaping, and decode
// strips exactly one enclosing pair. A description holding a line break
// cannot be written and Encode fails with ErrLineBreak.
type TextCodec struct{}

// NewTextCodec creates a text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format implements Converter
func (c *TextCodec) Format() Format {
	return FormatText
}

// Decode reads every block in r. An empty stream yields an empty set.
func (c *TextCodec) Decode(r io.Reader) (*RecordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readErr(err)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	var records []Record
	current := make(map[string]string)

	finish := func() error {
		if len(current) == 0 {
			return nil
		}
		record, err := buildRecord(current, false)
		if err != nil {
			return fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
		current = make(map[string]string)
		return nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, RecordMarker) {
			if err := finish(); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		current[strings.TrimSpace(key)] = unquoteValue(strings.TrimSpace(value))
	}

	if err := finish(); err != nil {
		return nil, err
	}

	return NewRecordSet(FormatText, records), nil
}

// Encode writes one block per record followed by a blank line
func (c *TextCodec) Encode(w io.Writer, records []Record) error {
	var buf bytes.Buffer
	for i, r := range records {
		if !r.Type.Valid() {
			return fmt.Errorf("record %d: %w", i+1, ErrInvalidTxType)
		}
		if !r.Status.Valid() {
			return fmt.Errorf("record %d: %w", i+1, ErrInvalidTxStatus)
		}
		if strings.ContainsAny(r.Description, "\r\n") {
			return fmt.Errorf("record %d: %w", i+1, ErrLineBreak)
		}

		buf.Reset()
		fmt.Fprintf(&buf, "%s %d (%s)\n", RecordMarker, i+1, r.Type)
		fmt.Fprintf(&buf, "%s: %s\n", FieldTxType, r.Type)
		fmt.Fprintf(&buf, "%s: %d\n", FieldToUserID, r.ToUserID)
		fmt.Fprintf(&buf, "%s: %d\n", FieldFromUserID, r.FromUserID)
		fmt.Fprintf(&buf, "%s: %d\n", FieldTimestamp, r.Timestamp)
		fmt.Fprintf(&buf, "%s: \"%s\"\n", FieldDescription, r.Description)
		fmt.Fprintf(&buf, "%s: %d\n", FieldTxID, r.TxID)
		fmt.Fprintf(&buf, "%s: %d\n", FieldAmount, r.Amount)
		fmt.Fprintf(&buf, "%s: %s\n\n", FieldStatus, r.Status)

		if _, err := w.Write(buf.Bytes()); err != nil {
			return writeErr(err)
		}
	}
	return nil
}

// unquoteValue strips one pair of enclosing double quotes. The inner text is
// kept as written, backslashes included.
func unquoteValue(v string) string {
	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return v
	}
	return v[1 : len(v)-1]
}
