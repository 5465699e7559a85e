package codec

import "fmt"

// Error is a codec failure without additional context
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errors
var (
	ErrInvalidMagic    = &Error{"invalid magic header"}
	ErrCorruptRecord   = &Error{"truncated or corrupt record"}
	ErrInvalidTxType   = &Error{"invalid transaction type"}
	ErrInvalidTxStatus = &Error{"invalid transaction status"}
	ErrEmptyInput      = &Error{"input is empty"}
	ErrInvalidUTF8     = &Error{"invalid UTF-8 text"}
	ErrRecordTooLarge  = &Error{"record too large for binary frame"}
	ErrUnknownFormat   = &Error{"unknown format"}
	ErrLineBreak       = &Error{"description contains a line break"}
)

// ColumnCountError reports a CSV data line whose field count differs from the header
type ColumnCountError struct {
	Line     int // 1-based source line
	Expected int
	Found    int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("line %d: expected %d columns, found %d", e.Line, e.Expected, e.Found)
}

// FieldError reports a key that is absent (Missing) or present but unparseable
type FieldError struct {
	Field   string
	Missing bool
	Err     error
}

func (e *FieldError) Error() string {
	if e.Missing {
		return fmt.Sprintf("missing field %s", e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("cannot parse field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("cannot parse field %s", e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IOError wraps a failure of the underlying stream
type IOError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func readErr(err error) error {
	return &IOError{Op: "read", Err: err}
}

func writeErr(err error) error {
	return &IOError{Op: "write", Err: err}
}
