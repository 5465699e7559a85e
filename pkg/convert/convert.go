// Package convert drives the codecs over files: it detects formats from file
// extensions, converts between formats and compares two files.
package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ssargent/ypbank/pkg/codec"
	"github.com/ssargent/ypbank/pkg/compare"
	"github.com/ssargent/ypbank/pkg/logging"
	"github.com/ssargent/ypbank/pkg/metrics"
)

// ErrSameFormat is returned when a conversion would not change the format
var ErrSameFormat = errors.New("input and output formats are the same, nothing to convert")

// DetectFormat infers a file's format from its extension
func DetectFormat(path string) (codec.Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", codec.ErrUnknownFormat, path)
	}
	f, err := codec.ParseFormat(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", err, strings.ToLower(ext))
	}
	return f, nil
}

// OutputPath replaces the extension of input with the one for format
func OutputPath(input string, format codec.Format) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + format.Extension()
}

// Service converts and compares record files
type Service struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	opts    []codec.Option
}

// NewService creates a service; m may be nil to disable metrics
func NewService(logger *slog.Logger, m *metrics.Metrics, opts ...codec.Option) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{logger: logger, metrics: m, opts: opts}
}

// Decode reads a whole record set in the given format from r
func (s *Service) Decode(r io.Reader, format codec.Format) (*codec.RecordSet, error) {
	conv, err := codec.NewConverter(format, s.opts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	set, err := conv.Decode(r)
	count := 0
	if set != nil {
		count = set.Len()
	}
	s.observe(format, metrics.OpDecode, count, time.Since(start), err)
	return set, err
}

// Encode writes records to w in the given format
func (s *Service) Encode(w io.Writer, format codec.Format, records []codec.Record) error {
	conv, err := codec.NewConverter(format, s.opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	err = conv.Encode(w, records)
	s.observe(format, metrics.OpEncode, len(records), time.Since(start), err)
	return err
}

// ReadFile decodes the file at path using the format implied by its extension
func (s *Service) ReadFile(path string) (*codec.RecordSet, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	set, err := s.Decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return set, nil
}

// WriteFile encodes records into a new file at path, replacing any existing
// one. Output goes to a temporary file in the same directory that is renamed
// over path only after encoding succeeds.
func (s *Service) WriteFile(path string, format codec.Format, records []codec.Record) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmp := f.Name()

	if err := s.writeTemp(f, format, records); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (s *Service) writeTemp(f *os.File, format codec.Format, records []codec.Record) error {
	if err := f.Chmod(0644); err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := s.Encode(w, format, records); err != nil {
		return err
	}
	return w.Flush()
}

// Result describes a finished conversion
type Result struct {
	InputPath    string
	InputFormat  codec.Format
	OutputPath   string
	OutputFormat codec.Format
	Records      int
}

// ConvertFile converts input into format. An empty output derives the path
// from input by swapping the extension.
func (s *Service) ConvertFile(input string, format codec.Format, output string) (*Result, error) {
	inFormat, err := DetectFormat(input)
	if err != nil {
		return nil, err
	}
	if inFormat == format {
		return nil, ErrSameFormat
	}
	if output == "" {
		output = OutputPath(input, format)
	}

	start := time.Now()
	set, err := s.ReadFile(input)
	if err != nil {
		return nil, err
	}
	if err := s.WriteFile(output, format, set.Records()); err != nil {
		return nil, err
	}

	s.logger.Info("converted file",
		"input", input,
		"input_format", inFormat.String(),
		"output", output,
		"output_format", format.String(),
		"records", set.Len(),
		"duration", time.Since(start))

	return &Result{
		InputPath:    input,
		InputFormat:  inFormat,
		OutputPath:   output,
		OutputFormat: format,
		Records:      set.Len(),
	}, nil
}

// CompareFiles decodes both files and compares them record by record
func (s *Service) CompareFiles(first, second string) (*compare.Report, error) {
	left, err := s.ReadFile(first)
	if err != nil {
		return nil, err
	}
	right, err := s.ReadFile(second)
	if err != nil {
		return nil, err
	}

	report := compare.Sets(left, right)
	if s.metrics != nil {
		s.metrics.RecordComparison(report.Identical())
	}

	s.logger.Info("compared files",
		"file1", first,
		"file2", second,
		"records1", report.LeftCount,
		"records2", report.RightCount,
		"differences", len(report.Diffs))

	return report, nil
}

func (s *Service) observe(format codec.Format, op string, records int, d time.Duration, err error) {
	if s.metrics != nil {
		s.metrics.RecordOperation(format.String(), op, records, d, err)
	}
	if err != nil {
		s.logger.Debug("codec operation failed", "format", format.String(), "operation", op, "error", err)
		return
	}
	s.logger.Debug("codec operation", "format", format.String(), "operation", op, "records", records, "duration", d)
}
