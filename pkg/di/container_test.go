package di

import (
	"errors"
	"testing"

	"github.com/ssargent/ypbank/pkg/codec"
	"github.com/ssargent/ypbank/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_Defaults(t *testing.T) {
	c := NewContainer()

	assert.Equal(t, config.DefaultConfig(), c.GetConfig())
	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetMetrics())
	assert.NotNil(t, c.GetConvertService())
}

func TestContainer_OpenArchive(t *testing.T) {
	c := NewContainer()
	cfg := config.DefaultConfig()
	cfg.Archive.DataDir = t.TempDir()
	c.SetConfig(cfg)

	store, err := c.OpenArchive()
	require.NoError(t, err)
	defer store.Close()

	id, err := store.Put([]codec.Record{{TxID: 1, Amount: 10}})
	require.NoError(t, err)

	set, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestContainer_SetArchiveFactory(t *testing.T) {
	c := NewContainer()
	wantErr := errors.New("unavailable")

	var gotDir string
	c.SetArchiveFactory(func(dataDir string, _ uint32) (ArchiveStore, error) {
		gotDir = dataDir
		return nil, wantErr
	})

	_, err := c.OpenArchive()
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, c.GetConfig().Archive.DataDir, gotDir)
}
