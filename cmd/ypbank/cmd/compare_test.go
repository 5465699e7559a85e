package cmd

import (
	"bytes"
	"testing"

	"github.com/ssargent/ypbank/pkg/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCompare(t *testing.T) {
	c := setupContainer(t)
	dir := t.TempDir()
	bin := writeRecords(t, c, dir, "a.bin", testRecords())
	txt := writeRecords(t, c, dir, "b.txt", testRecords())

	changed := testRecords()
	changed[1].Description = "ATM, Side St"
	csv := writeRecords(t, c, dir, "c.csv", changed)

	t.Run("identical across formats", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runCompare(&out, c.GetConvertService(), bin, txt, compare.FormatTable))
		assert.Equal(t, "Files are identical\n", out.String())
	})

	t.Run("differences", func(t *testing.T) {
		var out bytes.Buffer
		err := runCompare(&out, c.GetConvertService(), bin, csv, compare.FormatTable)
		assert.ErrorIs(t, err, errFilesDiffer)
		assert.Contains(t, out.String(), "DESCRIPTION")
		assert.Contains(t, out.String(), `"ATM, Side St"`)
	})

	t.Run("unreadable file", func(t *testing.T) {
		err := runCompare(&bytes.Buffer{}, c.GetConvertService(), bin, dir+"/missing.csv", compare.FormatTable)
		require.Error(t, err)
		assert.NotErrorIs(t, err, errFilesDiffer)
	})
}
