package neo4j

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careergraph/application/ports"
	"careergraph/domain/core/entities"
	"careergraph/domain/core/valueobjects"

	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// overlapQuery compares ex1.From against the period start and ex2.To against
// the period end only. Every value is a bound parameter.
const overlapQuery = `
WITH $ministryName AS MINISTRY_NAME, datetime($periodStart) AS PERIOD_START, datetime($periodEnd) AS PERIOD_END
MATCH path=(p1:Person)-[:EXPERIENCE]->(ex1:Experience)-[:WORKED_AT]->(m:Ministry)<-[:WORKED_AT]-(ex2:Experience)<-[:EXPERIENCE]-(p2:Person)
WHERE p1.Name = $selectedName
  AND m.Ministry = MINISTRY_NAME
  AND ex1.From >= PERIOD_START
  AND ex2.To <= PERIOD_END
WITH m, p2, path,
     head(split(toString(CASE WHEN ex1.From > ex2.From THEN ex1.From ELSE ex2.From END), 'T')) AS OverlapStart,
     head(split(toString(CASE WHEN ex1.To < ex2.To THEN ex1.To ELSE ex2.To END), 'T')) AS OverlapEnd
RETURN DISTINCT path, m.Ministry AS Ministry, OverlapStart, OverlapEnd, p2.Name AS Name
ORDER BY Name ASC
LIMIT $limit`

// Config holds connection and breaker settings
type Config struct {
	URI          string
	Username     string
	Password     string
	Database     string
	QueryTimeout time.Duration

	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
	BreakerMinRequests uint32
	BreakerFailureRate float64
}

// NewDriver opens a driver for cfg. Connectivity is not verified here.
func NewDriver(cfg Config) (neo4jdriver.DriverWithContext, error) {
	driver, err := neo4jdriver.NewDriverWithContext(cfg.URI, neo4jdriver.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return driver, nil
}

// OverlapRepository runs the overlap query against Neo4j behind a circuit breaker
type OverlapRepository struct {
	driver  neo4jdriver.DriverWithContext
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewOverlapRepository creates a Neo4j-backed overlap repository
func NewOverlapRepository(driver neo4jdriver.DriverWithContext, cfg Config, logger *zap.Logger) *OverlapRepository {
	if cfg.BreakerMinRequests == 0 {
		cfg.BreakerMinRequests = 5
	}
	if cfg.BreakerFailureRate == 0 {
		cfg.BreakerFailureRate = 0.6
	}

	repo := &OverlapRepository{
		driver: driver,
		cfg:    cfg,
		logger: logger,
	}
	repo.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "neo4j-overlaps",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.BreakerFailureRate
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// a caller walking away says nothing about backend health
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return repo
}

// FindOverlaps implements ports.OverlapRepository
func (r *OverlapRepository) FindOverlaps(ctx context.Context, criteria ports.OverlapCriteria) ([]entities.OverlapRow, error) {
	ctx, span := otel.Tracer("careergraph/neo4j").Start(ctx, "neo4j.FindOverlaps")
	defer span.End()
	span.SetAttributes(
		attribute.String("overlap.ministry", criteria.MinistryName),
		attribute.Int("overlap.limit", criteria.Limit),
	)

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.run(ctx, criteria)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ports.ErrBackendUnavailable, err)
		}
		return nil, err
	}

	rows := result.([]entities.OverlapRow)
	span.SetAttributes(attribute.Int("overlap.rows", len(rows)))
	return rows, nil
}

func (r *OverlapRepository) run(ctx context.Context, criteria ports.OverlapCriteria) ([]entities.OverlapRow, error) {
	if r.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.QueryTimeout)
		defer cancel()
	}

	session := r.driver.NewSession(ctx, neo4jdriver.SessionConfig{
		AccessMode:   neo4jdriver.AccessModeRead,
		DatabaseName: r.cfg.Database,
	})
	defer session.Close(ctx)

	start := time.Now()
	result, err := session.Run(ctx, overlapQuery, overlapParams(criteria))
	if err != nil {
		return nil, fmt.Errorf("overlap query failed: %w", err)
	}

	rows := make([]entities.OverlapRow, 0, criteria.Limit)
	for result.Next(ctx) {
		rows = append(rows, decodeRow(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("overlap query failed: %w", err)
	}

	r.logger.Debug("Overlap query completed",
		zap.String("ministry", criteria.MinistryName),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)),
	)
	return rows, nil
}

// Ping implements ports.OverlapRepository
func (r *OverlapRepository) Ping(ctx context.Context) error {
	if err := r.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j unreachable: %w", err)
	}
	return nil
}

// Close releases the driver
func (r *OverlapRepository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func overlapParams(criteria ports.OverlapCriteria) map[string]interface{} {
	return map[string]interface{}{
		"selectedName": criteria.SelectedPerson,
		"ministryName": criteria.MinistryName,
		"periodStart":  criteria.PeriodStart.UTC().Format(isoLayout),
		"periodEnd":    criteria.PeriodEnd.UTC().Format(isoLayout),
		"limit":        int64(criteria.Limit),
	}
}

const isoLayout = "2006-01-02T15:04:05"

func decodeRow(record *neo4jdriver.Record) entities.OverlapRow {
	row := entities.OverlapRow{
		MatchedPerson: stringValue(record, "Name"),
		Ministry:      stringValue(record, "Ministry"),
		OverlapStart:  stringValue(record, "OverlapStart"),
		OverlapEnd:    stringValue(record, "OverlapEnd"),
	}
	if raw, ok := record.Get("path"); ok {
		if path, ok := raw.(neo4jdriver.Path); ok {
			row.Path = decodePath(path)
		}
	}
	return row
}

func decodePath(path neo4jdriver.Path) []entities.PathNode {
	nodes := make([]entities.PathNode, 0, len(path.Nodes))
	for _, n := range path.Nodes {
		label := ""
		if len(n.Labels) > 0 {
			label = n.Labels[0]
		}
		nodes = append(nodes, entities.PathNode{Label: label, Name: nodeName(label, n.Props)})
	}
	return nodes
}

func nodeName(label string, props map[string]any) string {
	keys := []string{"Name"}
	switch label {
	case "Ministry":
		keys = []string{"Ministry", "Name"}
	case "Experience":
		keys = []string{"Designation", "Name"}
	}
	for _, key := range keys {
		if v, ok := props[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}

func stringValue(record *neo4jdriver.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(valueobjects.DayLayout)
	default:
		return fmt.Sprint(t)
	}
}

var _ ports.OverlapRepository = (*OverlapRepository)(nil)
