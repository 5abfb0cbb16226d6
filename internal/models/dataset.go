package models

import (
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is a loaded dataset: ordered rows of named, typed columns.
type Table struct {
	frame    dataframe.DataFrame
	Source   string
	LoadTime time.Time
}

// NewTable wraps a parsed frame. The frame must not be mutated afterwards.
func NewTable(frame dataframe.DataFrame, source string) *Table {
	return &Table{
		frame:    frame,
		Source:   source,
		LoadTime: time.Now(),
	}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return t.frame.Nrow()
}

// Columns returns the column names in header order.
func (t *Table) Columns() []string {
	return t.frame.Names()
}

// HasColumn reports whether name is one of the header columns.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.frame.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether the column was inferred as int or float.
func (t *Table) IsNumeric(name string) bool {
	if !t.HasColumn(name) {
		return false
	}
	switch t.frame.Col(name).Type() {
	case series.Int, series.Float:
		return true
	default:
		return false
	}
}

// NumericColumns lists the numeric columns in header order.
func (t *Table) NumericColumns() []string {
	var cols []string
	for _, name := range t.frame.Names() {
		if t.IsNumeric(name) {
			cols = append(cols, name)
		}
	}
	return cols
}

// Floats returns the column as float64 values; missing cells are NaN.
func (t *Table) Floats(name string) []float64 {
	return t.frame.Col(name).Float()
}

// Strings returns the column as its textual records.
func (t *Table) Strings(name string) []string {
	return t.frame.Col(name).Records()
}

// Missing flags cells gota treats as missing.
func (t *Table) Missing(name string) []bool {
	return t.frame.Col(name).IsNaN()
}

// Frame exposes the underlying dataframe for read-only use.
func (t *Table) Frame() dataframe.DataFrame {
	return t.frame
}

// DatasetRepository holds the currently loaded table. It starts empty and is
// replaced wholesale by each successful load.
type DatasetRepository struct {
	mu        sync.RWMutex
	current   *Table
	loadCount int
}

// NewDatasetRepository creates an empty repository
func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{}
}

// SetTable replaces the current table.
func (r *DatasetRepository) SetTable(t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = t
	r.loadCount++
}

// GetTable returns the current table or nil when nothing is loaded.
func (r *DatasetRepository) GetTable() *Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// HasData reports whether a table is loaded.
func (r *DatasetRepository) HasData() bool {
	return r.GetTable() != nil
}

// GetStats returns a snapshot describing the repository contents.
func (r *DatasetRepository) GetStats() DatasetStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := DatasetStats{LoadCount: r.loadCount}
	if r.current != nil {
		stats.HasData = true
		stats.Source = r.current.Source
		stats.Records = r.current.Len()
		stats.Columns = len(r.current.Columns())
		stats.LoadTime = r.current.LoadTime
	}
	return stats
}

// DatasetStats summarises the repository for status display and logging.
type DatasetStats struct {
	HasData   bool
	Source    string
	Records   int
	Columns   int
	LoadCount int
	LoadTime  time.Time
}

// Shutdown drops the loaded table.
func (r *DatasetRepository) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}
