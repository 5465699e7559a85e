// Package archive keeps decoded record sets in a pebble store keyed by ksuid.
//
// Sets are stored in the binary wire format so that an archived set is byte
// compatible with a .bin file written by the converter.
package archive

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/ypbank/pkg/codec"
)

// ErrNotFound is returned when no record set exists for an id
var ErrNotFound = errors.New("record set not found")

// Archive is a persistent store of record sets
type Archive struct {
	db    *pebble.DB
	codec *codec.BinaryCodec
}

// Open opens or creates an archive rooted at path
func Open(path string, maxRecordSize uint32) (*Archive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive at %s: %w", path, err)
	}

	bc := codec.NewBinaryCodec()
	if maxRecordSize > 0 {
		bc.MaxRecordSize = maxRecordSize
	}
	return &Archive{db: db, codec: bc}, nil
}

// ParseID parses the string form of a record set id
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid record set id %q: %w", s, err)
	}
	return id, nil
}

// Put stores records under a new id
func (a *Archive) Put(records []codec.Record) (ksuid.KSUID, error) {
	var buf bytes.Buffer
	if err := a.codec.Encode(&buf, records); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to encode record set: %w", err)
	}

	id := ksuid.New()
	if err := a.db.Set(id.Bytes(), buf.Bytes(), pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to write record set: %w", err)
	}
	return id, nil
}

// Get loads the record set stored under id
func (a *Archive) Get(id ksuid.KSUID) (*codec.RecordSet, error) {
	data, err := a.read(id)
	if err != nil {
		return nil, err
	}

	set, err := a.codec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode record set %s: %w", id, err)
	}
	return set, nil
}

// Delete removes the record set stored under id
func (a *Archive) Delete(id ksuid.KSUID) error {
	if _, err := a.read(id); err != nil {
		return err
	}
	if err := a.db.Delete(id.Bytes(), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete record set %s: %w", id, err)
	}
	return nil
}

// Close closes the underlying store
func (a *Archive) Close() error {
	return a.db.Close()
}

// read copies the stored value because pebble reuses the buffer after the closer runs.
func (a *Archive) read(id ksuid.KSUID) ([]byte, error) {
	value, closer, err := a.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record set %s: %w", id, err)
	}
	defer closer.Close()

	data := make([]byte, len(value))
	copy(data, value)
	return data, nil
}
