package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ssargent/ypbank/pkg/codec"
	"github.com/ssargent/ypbank/pkg/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConvert(t *testing.T) {
	c := setupContainer(t)
	dir := t.TempDir()
	input := writeRecords(t, c, dir, "records.csv", testRecords())

	var out bytes.Buffer
	err := runConvert(&out, c.GetConvertService(), input, "bin", "")
	require.NoError(t, err)

	output := filepath.Join(dir, "records.bin")
	assert.Equal(t, "Converted 2 records from csv to bin: "+output+"\n", out.String())

	set, err := c.GetConvertService().ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), set.Records())
}

func TestRunConvert_Errors(t *testing.T) {
	c := setupContainer(t)
	input := writeRecords(t, c, t.TempDir(), "records.txt", testRecords())

	t.Run("unknown output format", func(t *testing.T) {
		err := runConvert(&bytes.Buffer{}, c.GetConvertService(), input, "xml", "")
		assert.ErrorIs(t, err, codec.ErrUnknownFormat)
	})

	t.Run("same format", func(t *testing.T) {
		err := runConvert(&bytes.Buffer{}, c.GetConvertService(), input, "text", "")
		assert.ErrorIs(t, err, convert.ErrSameFormat)
	})
}
