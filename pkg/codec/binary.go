package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// Magic opens every binary frame
	Magic = "YPBN"

	// MinBodySize is the size of the fixed-width body fields:
	// TxID(8) + Type(1) + From(8) + To(8) + Amount(8) + Timestamp(8) + Status(1) + DescLen(4)
	MinBodySize = 46

	// DefaultMaxRecordSize bounds the body length a frame may declare
	DefaultMaxRecordSize = 64 << 20

	frameHeaderSize = 8 // Magic(4) + BodyLen(4)
)

// Wire bytes for the enum fields. The order differs from the model order and is
// part of the format.
var (
	typeToWire   = map[TxType]byte{TxDeposit: 0, TxTransfer: 1, TxWithdrawal: 2}
	wireToType   = map[byte]TxType{0: TxDeposit, 1: TxTransfer, 2: TxWithdrawal}
	statusToWire = map[TxStatus]byte{StatusSuccess: 0, StatusFailure: 1, StatusPending: 2}
	wireToStatus = map[byte]TxStatus{0: StatusSuccess, 1: StatusFailure, 2: StatusPending}
)

// BinaryCodec reads and writes length-framed binary records
type BinaryCodec struct {
	MaxRecordSize uint32 // Largest body length accepted on decode; zero means DefaultMaxRecordSize
}

// NewBinaryCodec creates a binary codec with the default size limit
func NewBinaryCodec() *BinaryCodec {
	return &BinaryCodec{MaxRecordSize: DefaultMaxRecordSize}
}

// Format implements Converter
func (c *BinaryCodec) Format() Format {
	return FormatBinary
}

// Decode reads frames until the stream ends cleanly at a frame boundary.
// Running out of bytes while reading a magic header is the only non-error end;
// a frame cut anywhere after its magic is ErrCorruptRecord.
func (c *BinaryCodec) Decode(r io.Reader) (*RecordSet, error) {
	var records []Record
	header := make([]byte, frameHeaderSize)

	limit := c.MaxRecordSize
	if limit == 0 {
		limit = DefaultMaxRecordSize
	}

	for {
		if _, err := io.ReadFull(r, header[:4]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, readErr(err)
		}

		if string(header[:4]) != Magic {
			return nil, ErrInvalidMagic
		}

		if _, err := io.ReadFull(r, header[4:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: frame %d has no body length", ErrCorruptRecord, len(records)+1)
			}
			return nil, readErr(err)
		}

		size := binary.BigEndian.Uint32(header[4:])
		if size < MinBodySize {
			return nil, fmt.Errorf("%w: body of %d bytes is shorter than %d", ErrCorruptRecord, size, MinBodySize)
		}
		if size > limit {
			return nil, fmt.Errorf("%w: body of %d bytes exceeds limit %d", ErrCorruptRecord, size, limit)
		}

		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: frame %d truncated", ErrCorruptRecord, len(records)+1)
			}
			return nil, readErr(err)
		}

		record, err := c.DecodeBody(body)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return NewRecordSet(FormatBinary, records), nil
}

// DecodeBody parses a single frame body (everything after the length prefix)
func (c *BinaryCodec) DecodeBody(body []byte) (Record, error) {
	if len(body) < MinBodySize {
		return Record{}, fmt.Errorf("%w: body of %d bytes is shorter than %d", ErrCorruptRecord, len(body), MinBodySize)
	}

	txType, ok := wireToType[body[8]]
	if !ok {
		return Record{}, fmt.Errorf("%w: byte %d", ErrInvalidTxType, body[8])
	}
	status, ok := wireToStatus[body[41]]
	if !ok {
		return Record{}, fmt.Errorf("%w: byte %d", ErrInvalidTxStatus, body[41])
	}

	descLen := binary.BigEndian.Uint32(body[42:46])
	if uint64(MinBodySize)+uint64(descLen) > uint64(len(body)) {
		return Record{}, fmt.Errorf("%w: description of %d bytes overruns body of %d", ErrCorruptRecord, descLen, len(body))
	}

	desc := body[MinBodySize : MinBodySize+int(descLen)]
	if !utf8.Valid(desc) {
		return Record{}, ErrInvalidUTF8
	}

	return Record{
		TxID:        binary.BigEndian.Uint64(body[0:8]),
		Type:        txType,
		FromUserID:  binary.BigEndian.Uint64(body[9:17]),
		ToUserID:    binary.BigEndian.Uint64(body[17:25]),
		Amount:      uint64(int64(binary.BigEndian.Uint64(body[25:33]))),
		Timestamp:   binary.BigEndian.Uint64(body[33:41]),
		Status:      status,
		Description: strings.ReplaceAll(string(desc), `"`, ""),
	}, nil
}

// Encode writes one frame per record
func (c *BinaryCodec) Encode(w io.Writer, records []Record) error {
	for i := range records {
		frame, err := c.EncodeRecord(records[i])
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := w.Write(frame); err != nil {
			return writeErr(err)
		}
	}
	return nil
}

// EncodeRecord serializes a record into a complete frame.
// Format: [Magic(4)][BodyLen(4)][TxID(8)][Type(1)][From(8)][To(8)][Amount(8)][Timestamp(8)][Status(1)][DescLen(4)][Desc]
//
// Amount is written as a signed 64-bit value; amounts above math.MaxInt64 wrap.
func (c *BinaryCodec) EncodeRecord(r Record) ([]byte, error) {
	txType, ok := typeToWire[r.Type]
	if !ok {
		return nil, ErrInvalidTxType
	}
	status, ok := statusToWire[r.Status]
	if !ok {
		return nil, ErrInvalidTxStatus
	}
	if uint64(len(r.Description)) > math.MaxUint32-MinBodySize {
		return nil, ErrRecordTooLarge
	}

	bodySize := MinBodySize + len(r.Description)
	buf := make([]byte, frameHeaderSize+bodySize)

	copy(buf[0:4], Magic)
	binary.BigEndian.PutUint32(buf[4:8], uint32(bodySize))

	body := buf[frameHeaderSize:]
	binary.BigEndian.PutUint64(body[0:8], r.TxID)
	body[8] = txType
	binary.BigEndian.PutUint64(body[9:17], r.FromUserID)
	binary.BigEndian.PutUint64(body[17:25], r.ToUserID)
	binary.BigEndian.PutUint64(body[25:33], uint64(int64(r.Amount)))
	binary.BigEndian.PutUint64(body[33:41], r.Timestamp)
	body[41] = status
	binary.BigEndian.PutUint32(body[42:46], uint32(len(r.Description)))
	copy(body[MinBodySize:], r.Description)

	return buf, nil
}
