// Package di provides dependency injection container
package di

import (
	"log/slog"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/ypbank/pkg/archive"
	"github.com/ssargent/ypbank/pkg/codec"
	"github.com/ssargent/ypbank/pkg/config"
	"github.com/ssargent/ypbank/pkg/convert"
	"github.com/ssargent/ypbank/pkg/logging"
	"github.com/ssargent/ypbank/pkg/metrics"
)

// ArchiveStore is the subset of the archive used by the commands
type ArchiveStore interface {
	Put(records []codec.Record) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) (*codec.RecordSet, error)
	Delete(id ksuid.KSUID) error
	Close() error
}

// ArchiveFactory opens an archive store
type ArchiveFactory func(dataDir string, maxRecordSize uint32) (ArchiveStore, error)

// DefaultArchiveFactory opens the pebble-backed archive
func DefaultArchiveFactory(dataDir string, maxRecordSize uint32) (ArchiveStore, error) {
	a, err := archive.Open(dataDir, maxRecordSize)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Container holds all the dependencies for the application
type Container struct {
	config         *config.Config
	logger         *slog.Logger
	metrics        *metrics.Metrics
	archiveFactory ArchiveFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		config:         config.DefaultConfig(),
		logger:         logging.Discard(),
		metrics:        metrics.NewMetrics(),
		archiveFactory: DefaultArchiveFactory,
	}
}

// GetConfig returns the active configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// SetConfig replaces the active configuration
func (c *Container) SetConfig(cfg *config.Config) {
	c.config = cfg
}

// GetLogger returns the application logger
func (c *Container) GetLogger() *slog.Logger {
	return c.logger
}

// SetLogger replaces the application logger
func (c *Container) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// GetMetrics returns the metrics collector
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetConvertService builds a conversion service from the current dependencies
func (c *Container) GetConvertService() *convert.Service {
	return convert.NewService(c.logger, c.metrics, codec.WithMaxRecordSize(c.config.Binary.MaxRecordSize))
}

// OpenArchive opens the archive configured for this container
func (c *Container) OpenArchive() (ArchiveStore, error) {
	return c.archiveFactory(c.config.Archive.DataDir, c.config.Binary.MaxRecordSize)
}

// SetArchiveFactory allows overriding the archive factory (for testing)
func (c *Container) SetArchiveFactory(factory ArchiveFactory) {
	c.archiveFactory = factory
}
