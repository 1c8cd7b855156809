package dataset

import (
	"testing"

	"careergraph/domain/config"
	"careergraph/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsOf(header []string, records ...[]string) []row {
	rows := make([]row, 0, len(records))
	for _, rec := range records {
		cells := make(map[string]string, len(header))
		for i, col := range header {
			cells[col] = rec[i]
		}
		rows = append(rows, row{cells: cells})
	}
	return rows
}

func record(id, name, year string) []string {
	return []string{id, name, year, "Delhi", "[]", "[]"}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{name: "empty", values: nil, p: 0.25, want: 0},
		{name: "single value", values: []float64{1990}, p: 0.75, want: 1990},
		{name: "exact position", values: []float64{1, 2, 3, 4, 5}, p: 0.25, want: 2},
		{name: "interpolated", values: []float64{1, 2, 3, 4}, p: 0.25, want: 1.75},
		{name: "upper quartile interpolated", values: []float64{1, 2, 3, 4}, p: 0.75, want: 3.25},
		{name: "maximum", values: []float64{1, 2, 3}, p: 1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.values, tt.p), 1e-9)
		})
	}
}

func TestCheckColumns(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		assert.NoError(t, checkColumns(RequiredColumns))
	})

	t.Run("reports every missing column", func(t *testing.T) {
		err := checkColumns([]string{ColumnIdentityNo, ColumnName, ColumnDomicile, ColumnEducation})
		require.Error(t, err)

		var missing *MissingColumnsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{ColumnYear, ColumnExperience}, missing.Columns)
	})
}

func TestClean(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	header := RequiredColumns

	t.Run("fills missing cells and trims keys", func(t *testing.T) {
		rows := rowsOf(header,
			[]string{"  ID-1 ", " Asha Rao ", " 1998 ", "", "[]", ""},
		)
		var report entities.CleaningReport
		out := clean(header, rows, cfg, &report)

		require.Len(t, out, 1)
		assert.Equal(t, "ID-1", out[0].cells[ColumnIdentityNo])
		assert.Equal(t, "Asha Rao", out[0].cells[ColumnName])
		assert.Equal(t, "Unknown", out[0].cells[ColumnDomicile])
		assert.Equal(t, "Unknown", out[0].cells[ColumnExperience])
		year, ok := out[0].year.Value()
		assert.True(t, ok)
		assert.Equal(t, 1998.0, year)
	})

	t.Run("drops exact duplicates before filling and trimming", func(t *testing.T) {
		rows := rowsOf(header,
			record("ID-1", "Asha", "1998"),
			record("ID-1", "Asha", "1998"),
			record("ID-1 ", "Asha", "1998"),
			record("ID-2", "Ravi", "1998"),
		)
		var report entities.CleaningReport
		out := clean(header, rows, cfg, &report)

		assert.Len(t, out, 2)
		assert.Equal(t, 4, report.RowsRead)
		assert.Equal(t, 1, report.DuplicatesDropped)
		assert.Equal(t, 1, report.NormalizedDuplicatesDropped, "equal only once trimmed")
	})

	t.Run("missing years are dropped at the fence", func(t *testing.T) {
		rows := rowsOf(header,
			record("ID-1", "Asha", "1998"),
			record("ID-2", "Ravi", "n/a"),
			record("ID-3", "Meena", ""),
			record("ID-4", "Kiran", "1998"),
		)
		var report entities.CleaningReport
		out := clean(header, rows, cfg, &report)

		require.Len(t, out, 2)
		assert.Equal(t, "ID-1", out[0].cells[ColumnIdentityNo])
		assert.Equal(t, "ID-4", out[1].cells[ColumnIdentityNo])
		assert.Equal(t, 2, report.MissingYears)
		assert.Equal(t, 2, report.MissingYearsDropped)
		assert.Zero(t, report.OutliersRemoved)
		assert.Equal(t, 2, report.RowsKept)
	})

	t.Run("removes outliers until the fence is stable", func(t *testing.T) {
		rows := rowsOf(header,
			record("ID-1", "A", "1990"),
			record("ID-2", "B", "1991"),
			record("ID-3", "C", "1992"),
			record("ID-4", "D", "1993"),
			record("ID-5", "E", "1994"),
			record("ID-6", "F", "1995"),
			record("ID-7", "G", "1996"),
			record("ID-8", "H", "2150"),
		)
		var report entities.CleaningReport
		out := clean(header, rows, cfg, &report)

		assert.Len(t, out, 7)
		assert.Equal(t, 1, report.OutliersRemoved)
		require.NotNil(t, report.Fence)
		for _, r := range out {
			v, ok := r.year.Value()
			require.True(t, ok)
			assert.True(t, report.Fence.Contains(v), "year %v outside fence", v)
		}
		assert.GreaterOrEqual(t, report.FenceIterations, 2)
	})

	t.Run("cleaning its own output removes nothing", func(t *testing.T) {
		rows := rowsOf(header,
			record("ID-1", "A", "1980"),
			record("ID-2", "B", "1990"),
			record("ID-3", "C", "1991"),
			record("ID-4", "D", "1992"),
			record("ID-5", "E", "1993"),
			record("ID-6", "F", "1994"),
			record("ID-6", "F", "1994"),
			record(" ID-6", "F", "1994"),
			record("ID-7", "G", "2040"),
			record("ID-8", "H", "x"),
		)
		var first entities.CleaningReport
		once := clean(header, rows, cfg, &first)

		again := make([]row, len(once))
		for i, r := range once {
			cells := make(map[string]string, len(r.cells))
			for k, v := range r.cells {
				cells[k] = v
			}
			again[i] = row{cells: cells}
		}
		var second entities.CleaningReport
		twice := clean(header, again, cfg, &second)

		assert.Equal(t, len(once), len(twice))
		assert.Zero(t, second.DuplicatesDropped)
		assert.Zero(t, second.NormalizedDuplicatesDropped)
		assert.Zero(t, second.MissingYearsDropped)
		assert.Zero(t, second.OutliersRemoved)
		for i := range once {
			assert.Equal(t, once[i].cells, twice[i].cells)
		}
	})

	t.Run("all years missing leaves no fence and no rows", func(t *testing.T) {
		rows := rowsOf(header,
			record("ID-1", "A", "Unknown"),
			record("ID-2", "B", ""),
		)
		var report entities.CleaningReport
		out := clean(header, rows, cfg, &report)

		assert.Empty(t, out)
		assert.Nil(t, report.Fence)
		assert.Zero(t, report.FenceIterations)
		assert.Equal(t, 2, report.MissingYearsDropped)
	})
}
