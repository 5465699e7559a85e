package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/ssargent/ypbank/pkg/codec"
	"github.com/ssargent/ypbank/pkg/config"
	"github.com/ssargent/ypbank/pkg/di"
	"github.com/stretchr/testify/require"
)

// setupContainer installs a fresh container whose archive lives in a temp dir
func setupContainer(t *testing.T) *di.Container {
	t.Helper()
	c := di.NewContainer()
	cfg := config.DefaultConfig()
	cfg.Archive.DataDir = filepath.Join(t.TempDir(), "archive")
	c.SetConfig(cfg)
	SetContainer(c)
	t.Cleanup(func() { SetContainer(nil) })
	return c
}

func testRecords() []codec.Record {
	return []codec.Record{
		{
			TxID: 1, Type: codec.TxDeposit, Status: codec.StatusSuccess,
			ToUserID: 10, Amount: 1000, Timestamp: 1700000000000,
			Description: "Opening deposit",
		},
		{
			TxID: 2, Type: codec.TxWithdrawal, Status: codec.StatusSuccess,
			FromUserID: 10, Amount: 250, Timestamp: 1700000060000,
			Description: "ATM, Main St",
		},
	}
}

// writeRecords writes records to dir/name in the format given by the extension
func writeRecords(t *testing.T, c *di.Container, dir, name string, records []codec.Record) string {
	t.Helper()
	path := filepath.Join(dir, name)
	format, err := codec.ParseFormat(filepath.Ext(name))
	require.NoError(t, err)
	require.NoError(t, c.GetConvertService().WriteFile(path, format, records))
	return path
}

// executeCommand runs the root command with args and captures its standard output
func executeCommand(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}
