package handlers

import (
	"context"
	"testing"

	"careergraph/application/queries"
	"careergraph/application/services"
	"careergraph/infrastructure/persistence/dataset"
	"careergraph/infrastructure/persistence/dataset/datasettest"
	"careergraph/pkg/common"
	apperrors "careergraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOfficerHandler(t *testing.T) {
	ctx := context.Background()
	officers := append(datasettest.FinanceOfficers(),
		datasettest.Officer{IdentityNo: "IAS-003", Name: "Anand", Year: "Unknown", Domicile: "Goa"},
	)
	handler := NewOfficerHandler(datasettest.Store(t, officers...), zap.NewNop())

	t.Run("get officer", func(t *testing.T) {
		detail, err := handler.GetOfficer(ctx, queries.GetOfficerQuery{IdentityNo: "IAS-001"})
		require.NoError(t, err)

		assert.Equal(t, "A", detail.Name)
		require.NotEmpty(t, detail.Fields)
		assert.Equal(t, queries.DetailField{Label: "Identity No", Value: "IAS-001"}, detail.Fields[0])
		assert.Contains(t, detail.Fields, queries.DetailField{Label: "Allotment Year", Value: "1998"})
	})

	t.Run("missing year is left out of the detail fields", func(t *testing.T) {
		detail, err := handler.GetOfficer(ctx, queries.GetOfficerQuery{IdentityNo: "IAS-003"})
		require.NoError(t, err)
		for _, f := range detail.Fields {
			assert.NotEqual(t, "Allotment Year", f.Label)
		}
	})

	t.Run("unknown officer", func(t *testing.T) {
		_, err := handler.GetOfficer(ctx, queries.GetOfficerQuery{IdentityNo: "nope"})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("by name", func(t *testing.T) {
		detail, err := handler.GetOfficerByName(ctx, queries.GetOfficerByNameQuery{Name: "B"})
		require.NoError(t, err)
		assert.Equal(t, "IAS-002", detail.IdentityNo)

		_, err = handler.GetOfficerByName(ctx, queries.GetOfficerByNameQuery{Name: "Z"})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("records dropped by cleaning stay viewable", func(t *testing.T) {
		detail, err := handler.GetOfficerByName(ctx, queries.GetOfficerByNameQuery{Name: "Anand"})
		require.NoError(t, err)
		assert.Equal(t, "IAS-003", detail.IdentityNo)
	})

	t.Run("list filters by name and paginates", func(t *testing.T) {
		result, err := handler.ListOfficers(ctx, queries.ListOfficersQuery{
			Name:       "a",
			Pagination: common.PaginationParams{Page: 1, PageSize: 1},
		})
		require.NoError(t, err)

		require.Len(t, result.Officers, 1)
		assert.Equal(t, "A (IAS-001)", result.Officers[0].Label)
		assert.Equal(t, 1, result.Pagination.Total, "officers without a year are not options")
		assert.False(t, result.Pagination.HasNext)
	})

	t.Run("names in load order", func(t *testing.T) {
		names, err := handler.ListNames(ctx, queries.ListNamesQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "Anand"}, names)
	})

	t.Run("report", func(t *testing.T) {
		report, err := handler.DatasetReport(ctx, queries.DatasetReportQuery{})
		require.NoError(t, err)
		assert.Equal(t, 2, report.RowsKept)
		assert.Equal(t, 1, report.MissingYearsDropped)
		assert.Equal(t, 3, report.RecordsServed)
	})
}

func TestHandlers_DatasetNotLoaded(t *testing.T) {
	ctx := context.Background()
	store := dataset.NewStore("missing.csv", nil, zap.NewNop())

	officers := NewOfficerHandler(store, zap.NewNop())
	_, err := officers.ListNames(ctx, queries.ListNamesQuery{})
	assert.True(t, apperrors.IsUnavailable(err))

	similarity := NewSimilarityHandler(store, services.NewSimilarityGraphBuilder(nil, nil, zap.NewNop()), zap.NewNop())
	_, err = similarity.SimilarOfficers(ctx, queries.SimilarOfficersQuery{IdentityNo: "IAS-001"})
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestSimilarityHandler_SimilarOfficers(t *testing.T) {
	ctx := context.Background()
	officers := append(datasettest.FinanceOfficers(),
		datasettest.Officer{IdentityNo: "IAS-003", Name: "C", Year: "1998", Domicile: "Kerala"},
		datasettest.Officer{IdentityNo: "IAS-004", Name: "D", Year: "Unknown", Domicile: "Kerala"},
	)
	handler := NewSimilarityHandler(
		datasettest.Store(t, officers...),
		services.NewSimilarityGraphBuilder(nil, nil, zap.NewNop()),
		zap.NewNop(),
	)

	t.Run("allotment year by default", func(t *testing.T) {
		result, err := handler.SimilarOfficers(ctx, queries.SimilarOfficersQuery{IdentityNo: "IAS-001"})
		require.NoError(t, err)

		assert.Equal(t, "allotment_year", result.Attribute)
		assert.Equal(t, "Allotment Year", result.AttributeLabel)
		require.NotNil(t, result.Value)
		assert.Equal(t, "1998", *result.Value)
		assert.Equal(t, 3, result.Graph.Stats.NodeCount)
		assert.Equal(t, 2, result.Graph.Stats.EdgeCount)
		assert.Equal(t, 2, result.Graph.Stats.MaxDegree)
		assert.Equal(t, "force_directed", result.Graph.Layout)
		for _, n := range result.Graph.Nodes {
			assert.NotNil(t, n.Position, "node %s has no position", n.ID)
		}
	})

	t.Run("domicile", func(t *testing.T) {
		result, err := handler.SimilarOfficers(ctx, queries.SimilarOfficersQuery{IdentityNo: "IAS-001", Attribute: "domicile_place"})
		require.NoError(t, err)

		assert.Equal(t, "Kerala", *result.Value)
		assert.Equal(t, 3, result.Graph.Stats.NodeCount)
	})

	t.Run("officer dropped by cleaning", func(t *testing.T) {
		_, err := handler.SimilarOfficers(ctx, queries.SimilarOfficersQuery{IdentityNo: "IAS-004"})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := handler.SimilarOfficers(ctx, queries.SimilarOfficersQuery{IdentityNo: "IAS-001", Attribute: "cadre"})
		assert.True(t, apperrors.IsValidation(err))
	})
}
