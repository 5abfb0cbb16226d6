package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"kids-screentime/internal/logger"
	"kids-screentime/internal/models"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoRecords is returned when the CSV carries a header but no data rows.
var ErrNoRecords = errors.New("dataset contains no records")

// LoadError wraps any failure while fetching or parsing a dataset.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DatasetService fetches CSV data and publishes parsed tables to the repository
type DatasetService struct {
	repository *models.DatasetRepository
	client     *http.Client
	remoteURL  string
	timeout    time.Duration
	logger     logger.Logger
}

// NewDatasetService creates a dataset service. A nil client uses http.DefaultClient.
func NewDatasetService(repo *models.DatasetRepository, client *http.Client, remoteURL string, timeout time.Duration, log logger.Logger) *DatasetService {
	if client == nil {
		client = http.DefaultClient
	}
	return &DatasetService{
		repository: repo,
		client:     client,
		remoteURL:  remoteURL,
		timeout:    timeout,
		logger:     log,
	}
}

// RemoteURL returns the configured remote dataset location.
func (ds *DatasetService) RemoteURL() string {
	return ds.remoteURL
}

// LoadRemote fetches the configured URL in full and replaces the current
// table on success. On failure the repository is left untouched.
func (ds *DatasetService) LoadRemote(ctx context.Context) (*models.Table, error) {
	if ds.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ds.timeout)
		defer cancel()
	}

	startTime := time.Now()
	ds.logger.Info("DatasetService", "fetching remote dataset", map[string]interface{}{
		"url": ds.remoteURL,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ds.remoteURL, nil)
	if err != nil {
		return nil, ds.fail(ds.remoteURL, fmt.Errorf("invalid dataset URL: %w", err))
	}

	resp, err := ds.client.Do(req)
	if err != nil {
		return nil, ds.fail(ds.remoteURL, fmt.Errorf("failed to fetch dataset: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ds.fail(ds.remoteURL, fmt.Errorf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	table, err := ds.load(ctx, ds.remoteURL, resp.Body)
	if err != nil {
		return nil, err
	}

	ds.logger.Debug("DatasetService", "remote fetch completed", map[string]interface{}{
		"duration_ms": time.Since(startTime).Milliseconds(),
	})
	return table, nil
}

// LoadFile parses a local CSV file.
func (ds *DatasetService) LoadFile(ctx context.Context, path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ds.fail(path, fmt.Errorf("failed to open dataset: %w", err))
	}
	defer f.Close()

	return ds.load(ctx, path, f)
}

// LoadReader parses CSV from r, labelling the table with source.
func (ds *DatasetService) LoadReader(ctx context.Context, source string, r io.Reader) (*models.Table, error) {
	return ds.load(ctx, source, r)
}

func (ds *DatasetService) load(ctx context.Context, source string, r io.Reader) (*models.Table, error) {
	select {
	case <-ctx.Done():
		return nil, ds.fail(source, ctx.Err())
	default:
	}

	table, err := ParseCSV(r, source)
	if err != nil {
		return nil, ds.fail(source, err)
	}

	ds.repository.SetTable(table)

	ds.logger.Info("DatasetService", "dataset loaded", map[string]interface{}{
		"source":          source,
		"records":         table.Len(),
		"columns":         len(table.Columns()),
		"numeric_columns": table.NumericColumns(),
	})
	return table, nil
}

func (ds *DatasetService) fail(source string, err error) error {
	ds.logger.Error("DatasetService", err, map[string]interface{}{
		"source": source,
	})
	return &LoadError{Source: source, Err: err}
}

// ParseCSV reads header-prefixed CSV text into a table, inferring a type
// per column from its values. A leading byte order mark is dropped, repeated
// header names become name.1, name.2, ... and short rows are padded with
// missing values. Rows with more fields than the header are rejected.
func ParseCSV(r io.Reader, source string) (*models.Table, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoRecords
	}

	header := uniqueHeader(records[0])
	records[0] = header
	for i := 1; i < len(records); i++ {
		switch n := len(records[i]); {
		case n > len(header):
			return nil, fmt.Errorf("failed to parse CSV: record %d has %d fields, expected %d", i, n, len(header))
		case n < len(header):
			records[i] = padRecord(records[i], len(header))
		}
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", frame.Err)
	}
	if frame.Nrow() == 0 {
		return nil, ErrNoRecords
	}
	return models.NewTable(frame, source), nil
}

// uniqueHeader renames repeated column names: the first keeps its name and
// later ones get the lowest free numeric suffix.
func uniqueHeader(names []string) []string {
	out := make([]string, len(names))
	counts := make(map[string]int, len(names))
	for i, name := range names {
		unique := name
		if n := counts[name]; n > 0 {
			for counts[fmt.Sprintf("%s.%d", name, n)] > 0 {
				n++
			}
			unique = fmt.Sprintf("%s.%d", name, n)
			counts[name] = n
			counts[unique]++
		}
		counts[name]++
		out[i] = unique
	}
	return out
}

func padRecord(record []string, width int) []string {
	padded := make([]string, width)
	copy(padded, record)
	for i := len(record); i < width; i++ {
		padded[i] = "NaN"
	}
	return padded
}
