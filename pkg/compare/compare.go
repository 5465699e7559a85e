// Package compare pairs two record sets by position and reports every field
// that differs.
package compare

import (
	"strconv"

	"github.com/ssargent/ypbank/pkg/codec"
)

// FieldDiff is one field that differs between the two sides of a pair
type FieldDiff struct {
	Record int    `json:"record"` // 1-based position of the pair
	Field  string `json:"field"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

// Report is the outcome of comparing two record sets
type Report struct {
	LeftCount  int
	RightCount int
	Diffs      []FieldDiff
}

// CountMismatch reports whether the sets hold a different number of records
func (r *Report) CountMismatch() bool {
	return r.LeftCount != r.RightCount
}

// Identical reports whether both sets hold the same records in the same order
func (r *Report) Identical() bool {
	return !r.CountMismatch() && len(r.Diffs) == 0
}

// Sets compares two decoded record sets
func Sets(left, right *codec.RecordSet) *Report {
	return Records(left.Records(), right.Records())
}

// Records compares left and right pairwise up to the shorter length.
// Surplus records on either side only show up in the counts.
func Records(left, right []codec.Record) *Report {
	report := &Report{
		LeftCount:  len(left),
		RightCount: len(right),
		Diffs:      []FieldDiff{},
	}

	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		report.Diffs = append(report.Diffs, diffRecord(i+1, left[i], right[i])...)
	}
	return report
}

// diffRecord walks fields in column order.
func diffRecord(pos int, a, b codec.Record) []FieldDiff {
	if a == b {
		return nil
	}

	var diffs []FieldDiff
	add := func(field, left, right string) {
		if left != right {
			diffs = append(diffs, FieldDiff{Record: pos, Field: field, Left: left, Right: right})
		}
	}

	add(codec.FieldTxType, a.Type.String(), b.Type.String())
	add(codec.FieldStatus, a.Status.String(), b.Status.String())
	add(codec.FieldToUserID, formatUint(a.ToUserID), formatUint(b.ToUserID))
	add(codec.FieldFromUserID, formatUint(a.FromUserID), formatUint(b.FromUserID))
	add(codec.FieldTimestamp, formatUint(a.Timestamp), formatUint(b.Timestamp))
	if a.Description != b.Description {
		diffs = append(diffs, FieldDiff{
			Record: pos,
			Field:  codec.FieldDescription,
			Left:   strconv.Quote(a.Description),
			Right:  strconv.Quote(b.Description),
		})
	}
	add(codec.FieldTxID, formatUint(a.TxID), formatUint(b.TxID))
	add(codec.FieldAmount, formatUint(a.Amount), formatUint(b.Amount))

	return diffs
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
