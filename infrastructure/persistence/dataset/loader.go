package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"careergraph/domain/config"
	"careergraph/domain/core/entities"
)

// Snapshot is an immutable view of one dataset load. It carries two tables:
// the records as read, which back the career viewer and the overlap join, and
// the cleaned officers, which back the similarity dashboard.
type Snapshot struct {
	records    []*entities.Officer
	recordByID map[string]*entities.Officer
	byName     map[string]*entities.Officer
	names      []string

	officers []*entities.Officer
	byID     map[string]*entities.Officer
	report   entities.CleaningReport
}

// NewSnapshot indexes the records as read and the cleaned officers
func NewSnapshot(records, officers []*entities.Officer, report entities.CleaningReport) *Snapshot {
	s := &Snapshot{
		records:    records,
		recordByID: make(map[string]*entities.Officer, len(records)),
		byName:     make(map[string]*entities.Officer, len(records)),
		officers:   officers,
		byID:       make(map[string]*entities.Officer, len(officers)),
		report:     report,
	}
	for _, r := range records {
		if _, exists := s.recordByID[r.IdentityNo]; !exists {
			s.recordByID[r.IdentityNo] = r
		}
		if r.Name == "" {
			continue
		}
		if _, exists := s.byName[r.Name]; !exists {
			s.byName[r.Name] = r
			s.names = append(s.names, r.Name)
		}
	}
	for _, o := range officers {
		if _, exists := s.byID[o.IdentityNo]; exists {
			s.report.DuplicateIdentity++
		} else {
			s.byID[o.IdentityNo] = o
		}
		if len(o.Warnings) > 0 {
			s.report.MalformedRecords++
		}
	}
	s.report.RowsKept = len(officers)
	s.report.RecordsServed = len(records)
	return s
}

// Records returns the records as read, in file order
func (s *Snapshot) Records() []*entities.Officer {
	return s.records
}

// Officers returns the cleaned records in load order
func (s *Snapshot) Officers() []*entities.Officer {
	return s.officers
}

// Report returns the cleaning report
func (s *Snapshot) Report() entities.CleaningReport {
	return s.report
}

// LoadFile reads and cleans the dataset at path
func LoadFile(path string, cfg *config.DomainConfig) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Parse(f, path, cfg)
}

// Parse reads a CSV dataset and returns its snapshot
func Parse(r io.Reader, source string, cfg *config.DomainConfig) (*Snapshot, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s is empty", source)
		}
		return nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	var rows []row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset line %d: %w", line, err)
		}
		cells := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				cells[col] = record[i]
			} else {
				cells[col] = ""
			}
		}
		rows = append(rows, row{cells: cells})
	}

	records := make([]*entities.Officer, 0, len(rows))
	for _, r := range rows {
		records = append(records, toRecord(r, cfg.MissingValue))
	}

	report := entities.CleaningReport{
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}
	rows = clean(header, rows, cfg, &report)

	officers := make([]*entities.Officer, 0, len(rows))
	for _, r := range rows {
		officers = append(officers, toOfficer(r, cfg.MissingValue))
	}
	return NewSnapshot(records, officers, report), nil
}
