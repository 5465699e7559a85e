package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ssargent/ypbank/pkg/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveCommands(t *testing.T) {
	c := setupContainer(t)
	dir := t.TempDir()
	input := writeRecords(t, c, dir, "records.csv", testRecords())

	store, err := c.OpenArchive()
	require.NoError(t, err)
	defer store.Close()
	svc := c.GetConvertService()

	var out bytes.Buffer
	require.NoError(t, runArchivePut(&out, svc, store, input))
	id := strings.TrimSpace(out.String())
	_, err = archive.ParseID(id)
	require.NoError(t, err)

	t.Run("get to stdout", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runArchiveGet(&out, svc, store, id, "txt", ""))
		assert.Contains(t, out.String(), "# Record 1 (DEPOSIT)")
		assert.Contains(t, out.String(), `DESCRIPTION: "ATM, Main St"`)
	})

	t.Run("get to file", func(t *testing.T) {
		output := filepath.Join(dir, "restored.bin")
		var out bytes.Buffer
		require.NoError(t, runArchiveGet(&out, svc, store, id, "bin", output))
		assert.Equal(t, "Wrote 2 records to "+output+"\n", out.String())

		set, err := svc.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, testRecords(), set.Records())
	})

	t.Run("get with bad id", func(t *testing.T) {
		err := runArchiveGet(&bytes.Buffer{}, svc, store, "bogus", "csv", "")
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runArchiveDelete(&out, store, id))
		assert.Contains(t, out.String(), id)

		err := runArchiveGet(&bytes.Buffer{}, svc, store, id, "csv", "")
		assert.ErrorIs(t, err, archive.ErrNotFound)
	})

	count, err := testutil.GatherAndCount(c.GetMetrics().Registry(), "ypbank_archive_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count, "put, get and delete successes plus a get failure")
}
