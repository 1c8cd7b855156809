package ports

import (
	"context"
	"errors"
	"time"

	"careergraph/domain/core/entities"
)

var (
	// ErrOfficerNotFound is returned when no record matches a lookup
	ErrOfficerNotFound = errors.New("officer not found")

	// ErrDatasetNotLoaded is returned before the first successful load
	ErrDatasetNotLoaded = errors.New("dataset not loaded")

	// ErrBackendUnavailable is returned while the graph backend is known to be down
	ErrBackendUnavailable = errors.New("graph backend unavailable")
)

// OfficerRepository is the read-only Record Store. It serves the records as
// read from the dataset, which the career viewer and the overlap join use, and
// the cleaned officers, which the similarity dashboard uses.
// Implementations hand out shared records; callers must not mutate them.
type OfficerRepository interface {
	// RecordByIdentity finds the first record, as read, with the identity number
	RecordByIdentity(ctx context.Context, identityNo string) (*entities.Officer, error)

	// ByName returns the first record, in file order, with the given name
	ByName(ctx context.Context, name string) (*entities.Officer, error)

	// Records returns every record as read, in file order
	Records(ctx context.Context) ([]*entities.Officer, error)

	// Names returns unique names of the records in file order
	Names(ctx context.Context) ([]string, error)

	// ByIdentity finds the cleaned officer with the given identity number
	ByIdentity(ctx context.Context, identityNo string) (*entities.Officer, error)

	// Officers returns every cleaned record in load order
	Officers(ctx context.Context) ([]*entities.Officer, error)

	// Report returns the cleaning report of the current snapshot
	Report(ctx context.Context) (entities.CleaningReport, error)
}

// OverlapCriteria binds the parameters of one overlap query
type OverlapCriteria struct {
	SelectedPerson string
	MinistryName   string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Limit          int
}

// OverlapRepository runs the colleague overlap query against a graph backend.
// Each call is a single round trip; implementations never retry or cache.
type OverlapRepository interface {
	FindOverlaps(ctx context.Context, criteria OverlapCriteria) ([]entities.OverlapRow, error)

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
}

// DatasetReloader re-reads the dataset and replaces the current snapshot.
// On failure the previous snapshot stays in place.
type DatasetReloader interface {
	Reload(ctx context.Context) error
}
