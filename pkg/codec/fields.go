package codec

import (
	"fmt"
	"strconv"
)

// buildRecord assembles a record from named string values, as found in CSV
// rows and text blocks. foldEnums enables case-insensitive enum matching.
func buildRecord(values map[string]string, foldEnums bool) (Record, error) {
	parseType, parseStatus := ParseTxType, ParseTxStatus
	if foldEnums {
		parseType, parseStatus = ParseTxTypeFold, ParseTxStatusFold
	}

	var r Record
	var err error

	v, ok := values[FieldTxType]
	if !ok {
		return Record{}, &FieldError{Field: FieldTxType, Missing: true, Err: ErrInvalidTxType}
	}
	if r.Type, err = parseType(v); err != nil {
		return Record{}, fmt.Errorf("%w: %q", err, v)
	}

	v, ok = values[FieldStatus]
	if !ok {
		return Record{}, &FieldError{Field: FieldStatus, Missing: true, Err: ErrInvalidTxStatus}
	}
	if r.Status, err = parseStatus(v); err != nil {
		return Record{}, fmt.Errorf("%w: %q", err, v)
	}

	uints := []struct {
		field string
		dst   *uint64
	}{
		{FieldToUserID, &r.ToUserID},
		{FieldFromUserID, &r.FromUserID},
		{FieldTimestamp, &r.Timestamp},
		{FieldTxID, &r.TxID},
		{FieldAmount, &r.Amount},
	}
	for _, u := range uints {
		v, ok := values[u.field]
		if !ok {
			return Record{}, &FieldError{Field: u.field, Missing: true}
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Record{}, &FieldError{Field: u.field, Err: err}
		}
		*u.dst = n
	}

	r.Description = values[FieldDescription]
	return r, nil
}
