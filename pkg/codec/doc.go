// Package codec converts YPBank transaction records between three
// interchangeable representations: a length-framed binary format, a CSV
// format and a block-structured text format.
//
// All three formats implement Converter, so any decoder can be paired with
// any encoder. NewConverter selects an implementation by Format value.
//
// # Binary Format
//
// Each record is a frame:
//
//	[Magic "YPBN"(4)][BodyLen(4)][Body]
//
// with the body laid out as:
//
//	[TxID(8)][Type(1)][FromUserID(8)][ToUserID(8)][Amount(8)][Timestamp(8)][Status(1)][DescLen(4)][Desc]
//
// All integers are big-endian. BodyLen covers the body only. The fixed part of
// the body is 46 bytes (MinBodySize).
//
// Type bytes are DEPOSIT=0, TRANSFER=1, WITHDRAWAL=2. Status bytes are
// SUCCESS=0, FAILURE=1, PENDING=2.
//
// Amount is stored as a signed 64-bit integer. Amounts above math.MaxInt64
// are written with two's-complement wrapping and read back unchanged, since
// the decoder reinterprets the same bits; other readers of the format will see
// a negative value.
//
// Double quotes are removed from descriptions on decode, so a description
// containing a quote does not survive a binary round trip.
//
// A stream that ends while a magic header is being read ends cleanly. Any
// shortage after that point is ErrCorruptRecord.
//
// # CSV Format
//
// The first line is the header:
//
//	TX_TYPE,STATUS,TO_USER_ID,FROM_USER_ID,TIMESTAMP,DESCRIPTION,TX_ID,AMOUNT
//
// Columns are matched by name. Enum values are matched case-insensitively.
// DESCRIPTION is written RFC 4180 quoted. An input with no lines at all is
// ErrEmptyInput. Fields are trimmed of surrounding whitespace.
//
// # Text Format
//
//	# Record 1 (DEPOSIT)
//	TX_TYPE: DEPOSIT
//	TO_USER_ID: 1000
//	FROM_USER_ID: 0
//	TIMESTAMP: 1634000000000
//	DESCRIPTION: "Single record"
//	TX_ID: 42
//	AMOUNT: 500
//	STATUS: SUCCESS
//
// Blocks are separated by a blank line. DESCRIPTION is optional on input.
// Enum values must match exactly. Values lose one pair of enclosing double
// quotes on decode and are otherwise taken literally, so a hand-written
// "C:\new" keeps its backslash. Descriptions with line breaks cannot be
// written in this format.
//
// # Errors
//
// Decoding stops at the first problem and returns no records. Errors are
// either one of the sentinel values (ErrInvalidMagic, ErrCorruptRecord, ...)
// to be tested with errors.Is, or one of ColumnCountError, FieldError and
// IOError to be inspected with errors.As.
//
// # Usage
//
//	conv, err := codec.NewConverter(codec.FormatCSV)
//	if err != nil {
//	    return err
//	}
//	set, err := conv.Decode(file)
//	if err != nil {
//	    return err
//	}
//	return codec.NewTextCodec().Encode(out, set.Records())
//
// Codecs hold no mutable state and are safe for concurrent use.
package codec
