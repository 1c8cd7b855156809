package dataset

import (
	"context"
	"sync/atomic"

	"careergraph/application/ports"
	"careergraph/domain/config"
	"careergraph/domain/core/entities"

	"go.uber.org/zap"
)

// Store is the Record Store. It serves the current snapshot and swaps it
// atomically on reload, so in-flight requests keep the snapshot they started with.
type Store struct {
	path    string
	cfg     *config.DomainConfig
	logger  *zap.Logger
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store for the dataset at path. Nothing is read until Reload.
func NewStore(path string, cfg *config.DomainConfig, logger *zap.Logger) *Store {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Store{path: path, cfg: cfg, logger: logger}
}

// NewStoreFromSnapshot creates a store serving a fixed snapshot
func NewStoreFromSnapshot(snapshot *Snapshot, logger *zap.Logger) *Store {
	s := &Store{cfg: config.DefaultDomainConfig(), logger: logger}
	s.current.Store(snapshot)
	return s
}

// Path returns the dataset file path
func (s *Store) Path() string {
	return s.path
}

// Reload reads the dataset file and replaces the snapshot. On failure the
// previous snapshot keeps serving.
func (s *Store) Reload(ctx context.Context) error {
	snapshot, err := LoadFile(s.path, s.cfg)
	if err != nil {
		s.logger.Error("Dataset load failed",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return err
	}
	s.Replace(snapshot)
	return nil
}

// Replace swaps in a new snapshot
func (s *Store) Replace(snapshot *Snapshot) {
	s.current.Store(snapshot)

	report := snapshot.Report()
	fields := []zap.Field{
		zap.String("source", report.Source),
		zap.Int("rows_read", report.RowsRead),
		zap.Int("duplicates_dropped", report.DuplicatesDropped+report.NormalizedDuplicatesDropped),
		zap.Int("missing_years_dropped", report.MissingYearsDropped),
		zap.Int("outliers_removed", report.OutliersRemoved),
		zap.Int("rows_kept", report.RowsKept),
		zap.Int("records_served", report.RecordsServed),
		zap.Int("malformed_records", report.MalformedRecords),
	}
	if report.Fence != nil {
		fields = append(fields,
			zap.Float64("fence_lower", report.Fence.Lower),
			zap.Float64("fence_upper", report.Fence.Upper),
		)
	}
	s.logger.Info("Dataset loaded", fields...)
}

// Loaded reports whether a snapshot is being served
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

func (s *Store) snapshot() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ports.ErrDatasetNotLoaded
	}
	return snap, nil
}

// RecordByIdentity implements ports.OfficerRepository
func (s *Store) RecordByIdentity(ctx context.Context, identityNo string) (*entities.Officer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	record, ok := snap.recordByID[identityNo]
	if !ok {
		return nil, ports.ErrOfficerNotFound
	}
	return record, nil
}

// Records implements ports.OfficerRepository
func (s *Store) Records(ctx context.Context) ([]*entities.Officer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.records, nil
}

// ByIdentity implements ports.OfficerRepository
func (s *Store) ByIdentity(ctx context.Context, identityNo string) (*entities.Officer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	officer, ok := snap.byID[identityNo]
	if !ok {
		return nil, ports.ErrOfficerNotFound
	}
	return officer, nil
}

// ByName implements ports.OfficerRepository
func (s *Store) ByName(ctx context.Context, name string) (*entities.Officer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	officer, ok := snap.byName[name]
	if !ok {
		return nil, ports.ErrOfficerNotFound
	}
	return officer, nil
}

// Officers implements ports.OfficerRepository
func (s *Store) Officers(ctx context.Context) ([]*entities.Officer, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.officers, nil
}

// Names implements ports.OfficerRepository
func (s *Store) Names(ctx context.Context) ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.names, nil
}

// Report implements ports.OfficerRepository
func (s *Store) Report(ctx context.Context) (entities.CleaningReport, error) {
	snap, err := s.snapshot()
	if err != nil {
		return entities.CleaningReport{}, err
	}
	return snap.report, nil
}

var _ ports.OfficerRepository = (*Store)(nil)
