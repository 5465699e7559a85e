//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzBinaryCodec_RoundTrip tests encode/decode round-trip with random inputs
func FuzzBinaryCodec_RoundTrip(f *testing.F) {
	codec := NewBinaryCodec()

	f.Add(uint64(42), uint8(0), uint8(0), uint64(0), uint64(1000), uint64(500), uint64(1634000000000), "Single record")
	f.Add(uint64(0), uint8(2), uint8(2), uint64(1), uint64(1), uint64(1<<63), uint64(0), "")

	f.Fuzz(func(t *testing.T, id uint64, typ, status uint8, from, to, amount, ts uint64, desc string) {
		if !utf8.ValidString(desc) || len(desc) > 100000 {
			t.Skip("description not representable")
		}
		desc = strings.ReplaceAll(desc, `"`, "")

		r := Record{
			TxID:        id,
			Type:        TxType(typ % 3),
			Status:      TxStatus(status % 3),
			FromUserID:  from,
			ToUserID:    to,
			Amount:      amount,
			Timestamp:   ts,
			Description: desc,
		}

		var buf bytes.Buffer
		if err := codec.Encode(&buf, []Record{r}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		set, err := codec.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if set.Len() != 1 || set.Records()[0] != r {
			t.Errorf("round trip mismatch: got %+v, want %+v", set.Records(), r)
		}
	})
}

// FuzzBinaryCodec_MalformedData checks that arbitrary input never panics and
// never yields records alongside an error
func FuzzBinaryCodec_MalformedData(f *testing.F) {
	codec := NewBinaryCodec()

	f.Add([]byte{})
	f.Add([]byte("YPBN"))
	f.Add([]byte("YPBN\x00\x00\x00\x2e"))
	f.Add(make([]byte, 54))

	f.Fuzz(func(t *testing.T, data []byte) {
		set, err := codec.Decode(bytes.NewReader(data))
		if err != nil && set != nil {
			t.Errorf("records returned together with error %v", err)
		}
	})
}

// FuzzTextAndCSV_RoundTrip checks that descriptions survive both text formats
func FuzzTextAndCSV_RoundTrip(f *testing.F) {
	f.Add("plain")
	f.Add(`with "quotes", and commas`)
	f.Add("line\nbreak")
	f.Add(`C:\new`)

	f.Fuzz(func(t *testing.T, desc string) {
		if !utf8.ValidString(desc) || strings.TrimSpace(desc) != desc || strings.Contains(desc, "\r") {
			t.Skip("description not representable in CSV")
		}
		r := Record{TxID: 1, Description: desc}

		convs := []Converter{NewCSVCodec()}
		if !strings.Contains(desc, "\n") {
			convs = append(convs, NewTextCodec())
		}
		for _, conv := range convs {
			var buf bytes.Buffer
			if err := conv.Encode(&buf, []Record{r}); err != nil {
				t.Fatalf("%s Encode failed: %v", conv.Format(), err)
			}
			set, err := conv.Decode(&buf)
			if err != nil {
				var countErr *ColumnCountError
				if errors.As(err, &countErr) {
					t.Fatalf("%s produced a misaligned row: %v", conv.Format(), err)
				}
				t.Fatalf("%s Decode failed: %v", conv.Format(), err)
			}
			if set.Records()[0] != r {
				t.Errorf("%s mismatch: got %q, want %q", conv.Format(), set.Records()[0].Description, desc)
			}
		}
	})
}
