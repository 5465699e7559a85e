package codec

import (
	"fmt"
	"strings"
)

// TxType is the kind of a transaction
type TxType uint8

const (
	TxDeposit TxType = iota
	TxWithdrawal
	TxTransfer
)

var txTypeNames = [...]string{
	TxDeposit:    "DEPOSIT",
	TxWithdrawal: "WITHDRAWAL",
	TxTransfer:   "TRANSFER",
}

func (t TxType) String() string {
	if int(t) < len(txTypeNames) {
		return txTypeNames[t]
	}
	return fmt.Sprintf("TxType(%d)", uint8(t))
}

// Valid reports whether t is one of the declared transaction types
func (t TxType) Valid() bool {
	return int(t) < len(txTypeNames)
}

// ParseTxType accepts only the exact upper-case name
func ParseTxType(s string) (TxType, error) {
	for i, name := range txTypeNames {
		if s == name {
			return TxType(i), nil
		}
	}
	return 0, ErrInvalidTxType
}

// ParseTxTypeFold accepts the exact name or any case-insensitive spelling of it
func ParseTxTypeFold(s string) (TxType, error) {
	if t, err := ParseTxType(s); err == nil {
		return t, nil
	}
	for i, name := range txTypeNames {
		if strings.EqualFold(s, name) {
			return TxType(i), nil
		}
	}
	return 0, ErrInvalidTxType
}

// TxStatus is the outcome of a transaction
type TxStatus uint8

const (
	StatusSuccess TxStatus = iota
	StatusFailure
	StatusPending
)

var txStatusNames = [...]string{
	StatusSuccess: "SUCCESS",
	StatusFailure: "FAILURE",
	StatusPending: "PENDING",
}

func (s TxStatus) String() string {
	if int(s) < len(txStatusNames) {
		return txStatusNames[s]
	}
	return fmt.Sprintf("TxStatus(%d)", uint8(s))
}

// Valid reports whether s is one of the declared statuses
func (s TxStatus) Valid() bool {
	return int(s) < len(txStatusNames)
}

// ParseTxStatus accepts only the exact upper-case name
func ParseTxStatus(s string) (TxStatus, error) {
	for i, name := range txStatusNames {
		if s == name {
			return TxStatus(i), nil
		}
	}
	return 0, ErrInvalidTxStatus
}

// ParseTxStatusFold accepts the exact name or any case-insensitive spelling of it
func ParseTxStatusFold(s string) (TxStatus, error) {
	if st, err := ParseTxStatus(s); err == nil {
		return st, nil
	}
	for i, name := range txStatusNames {
		if strings.EqualFold(s, name) {
			return TxStatus(i), nil
		}
	}
	return 0, ErrInvalidTxStatus
}

// Record is a single bank transaction. It is a plain value: two records are
// equal when every field is equal.
type Record struct {
	TxID        uint64   // Transaction identifier, not required to be unique
	Type        TxType   // Deposit, withdrawal or transfer
	Status      TxStatus // Success, failure or pending
	FromUserID  uint64   // Initiating user
	ToUserID    uint64   // Receiving user
	Amount      uint64   // Magnitude; travels as a signed 64-bit value in the binary format
	Timestamp   uint64   // Milliseconds, not validated against any epoch
	Description string   // Free text
}

// Field names as they appear in CSV headers and text blocks
const (
	FieldTxType      = "TX_TYPE"
	FieldStatus      = "STATUS"
	FieldToUserID    = "TO_USER_ID"
	FieldFromUserID  = "FROM_USER_ID"
	FieldTimestamp   = "TIMESTAMP"
	FieldDescription = "DESCRIPTION"
	FieldTxID        = "TX_ID"
	FieldAmount      = "AMOUNT"
)

// Columns is the fixed column order shared by the CSV header and the text blocks
var Columns = []string{
	FieldTxType,
	FieldStatus,
	FieldToUserID,
	FieldFromUserID,
	FieldTimestamp,
	FieldDescription,
	FieldTxID,
	FieldAmount,
}

// RecordSet is the ordered result of one decode call
type RecordSet struct {
	format  Format
	records []Record
}

// NewRecordSet wraps records decoded from the given format
func NewRecordSet(format Format, records []Record) *RecordSet {
	if records == nil {
		records = []Record{}
	}
	return &RecordSet{format: format, records: records}
}

// Records returns the decoded records in source order. Callers must not modify the slice.
func (s *RecordSet) Records() []Record {
	return s.records
}

// Len returns the number of records
func (s *RecordSet) Len() int {
	return len(s.records)
}

// Format returns the format the set was decoded from
func (s *RecordSet) Format() Format {
	return s.format
}
