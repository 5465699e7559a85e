package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// CSVHeader is the header line written by the CSV encoder
var CSVHeader = strings.Join(Columns, ",")

// CSVCodec reads and writes header-driven comma-separated records.
//
// Quoting follows RFC 4180: DESCRIPTION is always quoted on output with
// embedded quotes doubled, so descriptions containing commas, quotes or
// newlines survive a round trip. Blanks around a field, including after a
// closing quote, are ignored, and bare quotes inside unquoted fields are kept.
// A quoted field may run over several lines only when it is properly closed.
type CSVCodec struct{}

// NewCSVCodec creates a CSV codec
func NewCSVCodec() *CSVCodec {
	return &CSVCodec{}
}

// Format implements Converter
func (c *CSVCodec) Format() Format {
	return FormatCSV
}

// Decode reads the header line and then one record per non-blank line.
// Columns are matched to fields by header name.
func (c *CSVCodec) Decode(r io.Reader) (*RecordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readErr(err)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	var header []string
	var records []Record
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		line := i + 1
		row, n, err := readRow(lines[i:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrCorruptRecord, err)
		}
		i += n

		if header == nil {
			header = make([]string, len(row))
			for j := range row {
				header[j] = strings.TrimSpace(row[j])
			}
			continue
		}

		if len(row) != len(header) {
			return nil, &ColumnCountError{Line: line, Expected: len(header), Found: len(row)}
		}

		values := make(map[string]string, len(header))
		for j, name := range header {
			if name == FieldDescription {
				values[name] = row[j]
				continue
			}
			values[name] = strings.TrimSpace(row[j])
		}

		record, err := buildRecord(values, true)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, record)
	}

	if header == nil {
		return nil, ErrEmptyInput
	}
	return NewRecordSet(FormatCSV, records), nil
}

// readRow parses the logical row starting at lines[0] and reports how many
// physical lines it used. A row spans several lines only through a quoted
// field that is properly closed; otherwise the first line is split on its own.
func readRow(lines []string) ([]string, int, error) {
	text, n, ok := normalizeRow(lines)
	if !ok {
		return splitLoose(lines[0]), 1, nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	row, err := reader.Read()
	if err != nil {
		return nil, n, err
	}
	return row, n, nil
}

// normalizeRow rewrites one logical row so that encoding/csv reads it the
// same way a person would: blanks around fields are dropped, and a quoted
// field may only be followed by blanks and a comma. It returns false when a
// quoted field is never closed or has trailing text after its closing quote.
func normalizeRow(lines []string) (string, int, bool) {
	var b strings.Builder
	line := lines[0]
	n := 1
	i := 0

	for {
		i = skipBlanks(line, i)

		if i < len(line) && line[i] == '"' {
			b.WriteByte('"')
			i++
			for closed := false; !closed; {
				if i >= len(line) {
					if n >= len(lines) {
						return "", 1, false
					}
					line = lines[n]
					n++
					i = 0
					b.WriteByte('\n')
					continue
				}
				switch {
				case line[i] != '"':
					b.WriteByte(line[i])
					i++
				case i+1 < len(line) && line[i+1] == '"':
					b.WriteString(`""`)
					i += 2
				default:
					b.WriteByte('"')
					i++
					closed = true
				}
			}
			i = skipBlanks(line, i)
			if i < len(line) && line[i] != ',' {
				return "", 1, false
			}
		} else {
			field := line[i:]
			if end := strings.IndexByte(field, ','); end >= 0 {
				field = field[:end]
			}
			b.WriteString(strings.TrimRight(field, " \t"))
			i += len(field)
		}

		if i >= len(line) {
			return b.String(), n, true
		}
		b.WriteByte(',')
		i++
	}
}

// splitLoose splits a malformed line on every comma, then trims each field
// and strips one pair of enclosing quotes.
func splitLoose(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
			f = f[1 : len(f)-1]
		}
		fields[i] = f
	}
	return fields
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// Encode writes the header followed by one line per record
func (c *CSVCodec) Encode(w io.Writer, records []Record) error {
	if _, err := io.WriteString(w, CSVHeader+"\n"); err != nil {
		return writeErr(err)
	}

	var line []byte
	for i, r := range records {
		if !r.Type.Valid() {
			return fmt.Errorf("record %d: %w", i+1, ErrInvalidTxType)
		}
		if !r.Status.Valid() {
			return fmt.Errorf("record %d: %w", i+1, ErrInvalidTxStatus)
		}

		line = line[:0]
		line = append(line, r.Type.String()...)
		line = append(line, ',')
		line = append(line, r.Status.String()...)
		line = append(line, ',')
		line = strconv.AppendUint(line, r.ToUserID, 10)
		line = append(line, ',')
		line = strconv.AppendUint(line, r.FromUserID, 10)
		line = append(line, ',')
		line = strconv.AppendUint(line, r.Timestamp, 10)
		line = append(line, ',')
		line = appendQuoted(line, r.Description)
		line = append(line, ',')
		line = strconv.AppendUint(line, r.TxID, 10)
		line = append(line, ',')
		line = strconv.AppendUint(line, r.Amount, 10)
		line = append(line, '\n')

		if _, err := w.Write(line); err != nil {
			return writeErr(err)
		}
	}
	return nil
}

func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	dst = append(dst, strings.ReplaceAll(s, `"`, `""`)...)
	return append(dst, '"')
}
