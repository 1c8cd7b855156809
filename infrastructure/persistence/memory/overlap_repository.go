package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"careergraph/application/ports"
	"careergraph/domain/core/entities"
	"careergraph/domain/core/valueobjects"

	"go.uber.org/zap"
)

// OverlapRepository evaluates the overlap join over the Record Store's
// records as read.
// It follows the graph schema: an experience belongs to one person and points
// at the ministry named by its inferred ministry.
type OverlapRepository struct {
	officers ports.OfficerRepository
	logger   *zap.Logger
}

// NewOverlapRepository creates an in-memory overlap repository
func NewOverlapRepository(officers ports.OfficerRepository, logger *zap.Logger) *OverlapRepository {
	return &OverlapRepository{
		officers: officers,
		logger:   logger,
	}
}

type experienceRef struct {
	officer *entities.Officer
	index   int
	from    time.Time
	to      time.Time
	exp     entities.Experience
}

// FindOverlaps implements ports.OverlapRepository.
// Experiences lacking either date are not part of the graph and never match.
func (r *OverlapRepository) FindOverlaps(ctx context.Context, criteria ports.OverlapCriteria) ([]entities.OverlapRow, error) {
	officers, err := r.officers.Records(ctx)
	if err != nil {
		return nil, err
	}

	var atMinistry []experienceRef
	for _, officer := range officers {
		for i, exp := range officer.Experience {
			ministry, ok := exp.ResolvedMinistry()
			if !ok || ministry != criteria.MinistryName {
				continue
			}
			from, okFrom := exp.PeriodFrom.Time()
			to, okTo := exp.PeriodTo.Time()
			if !okFrom || !okTo {
				continue
			}
			atMinistry = append(atMinistry, experienceRef{officer: officer, index: i, from: from, to: to, exp: exp})
		}
	}

	var rows []entities.OverlapRow
	seen := make(map[string]bool)
	for _, ex1 := range atMinistry {
		if ex1.officer.Name != criteria.SelectedPerson || ex1.from.Before(criteria.PeriodStart) {
			continue
		}
		for _, ex2 := range atMinistry {
			if ex2.to.After(criteria.PeriodEnd) {
				continue
			}
			if ex1.officer == ex2.officer && ex1.index == ex2.index {
				continue
			}
			row := entities.OverlapRow{
				MatchedPerson: ex2.officer.Name,
				Ministry:      criteria.MinistryName,
				OverlapStart:  valueobjects.Later(ex1.from, ex2.from).Format(valueobjects.DayLayout),
				OverlapEnd:    valueobjects.Earlier(ex1.to, ex2.to).Format(valueobjects.DayLayout),
				Path: []entities.PathNode{
					{Label: "Person", Name: ex1.officer.Name},
					{Label: "Experience", Name: ex1.exp.Designation},
					{Label: "Ministry", Name: criteria.MinistryName},
					{Label: "Experience", Name: ex2.exp.Designation},
					{Label: "Person", Name: ex2.officer.Name},
				},
			}
			// DISTINCT, as in the Cypher query
			if k := rowKey(row); !seen[k] {
				seen[k] = true
				rows = append(rows, row)
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MatchedPerson < rows[j].MatchedPerson
	})
	if criteria.Limit > 0 && len(rows) > criteria.Limit {
		rows = rows[:criteria.Limit]
	}

	r.logger.Debug("In-memory overlap query completed",
		zap.String("ministry", criteria.MinistryName),
		zap.Int("candidates", len(atMinistry)),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func rowKey(row entities.OverlapRow) string {
	var b strings.Builder
	b.WriteString(row.MatchedPerson)
	b.WriteByte(0x1f)
	b.WriteString(row.OverlapStart)
	b.WriteByte(0x1f)
	b.WriteString(row.OverlapEnd)
	for _, n := range row.Path {
		b.WriteByte(0x1f)
		b.WriteString(n.Label)
		b.WriteByte(0x1e)
		b.WriteString(n.Name)
	}
	return b.String()
}

// Ping implements ports.OverlapRepository
func (r *OverlapRepository) Ping(ctx context.Context) error {
	_, err := r.officers.Records(ctx)
	return err
}

var _ ports.OverlapRepository = (*OverlapRepository)(nil)
