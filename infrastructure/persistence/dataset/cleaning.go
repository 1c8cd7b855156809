package dataset

import (
	"fmt"
	"sort"
	"strings"

	"careergraph/domain/config"
	"careergraph/domain/core/entities"
	"careergraph/domain/core/valueobjects"
)

// Column names of the input table
const (
	ColumnIdentityNo = "Identity No"
	ColumnName       = "Name"
	ColumnYear       = "Allotment Year"
	ColumnDomicile   = "Place of Domicile"
	ColumnEducation  = "Education Qualifications"
	ColumnExperience = "Experience Details"
)

// RequiredColumns lists every column a dataset must carry
var RequiredColumns = []string{
	ColumnIdentityNo,
	ColumnName,
	ColumnYear,
	ColumnDomicile,
	ColumnEducation,
	ColumnExperience,
}

var trimmedColumns = []string{ColumnIdentityNo, ColumnName, ColumnYear, ColumnDomicile}

// MissingColumnsError is returned when the header lacks required columns
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// row is one table row keyed by column name, plus its coerced year
type row struct {
	cells map[string]string
	year  valueobjects.AllotmentYear
}

func (r row) key(header []string) string {
	var b strings.Builder
	for _, col := range header {
		b.WriteString(r.cells[col])
		b.WriteByte(0x1f)
	}
	return b.String()
}

// checkColumns verifies the header carries every required column
func checkColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// clean applies the load-time cleaning pipeline in place of the raw rows.
// Order: drop exact duplicates, fill missing cells, trim, drop rows that only
// became equal through filling or trimming, coerce the year, then keep the
// rows inside the Tukey fence until it no longer removes anything. A missing
// year is never inside the fence. Running clean on its own output removes nothing.
func clean(header []string, rows []row, cfg *config.DomainConfig, report *entities.CleaningReport) []row {
	report.RowsRead = len(rows)

	rows = dedupe(header, rows, &report.DuplicatesDropped)

	for i := range rows {
		for _, col := range header {
			if rows[i].cells[col] == "" {
				rows[i].cells[col] = cfg.MissingValue
			}
		}
		for _, col := range trimmedColumns {
			rows[i].cells[col] = strings.TrimSpace(rows[i].cells[col])
			if rows[i].cells[col] == "" {
				rows[i].cells[col] = cfg.MissingValue
			}
		}
	}

	rows = dedupe(header, rows, &report.NormalizedDuplicatesDropped)

	for i := range rows {
		rows[i].year = valueobjects.ParseAllotmentYear(rows[i].cells[ColumnYear])
		if rows[i].year.IsMissing() {
			report.MissingYears++
		}
	}

	for {
		fence, ok := computeFence(rows, cfg.FenceMultiplier)

		kept := rows[:0]
		removed := 0
		for _, r := range rows {
			v, present := r.year.Value()
			if !present {
				report.MissingYearsDropped++
				continue
			}
			if !fence.Contains(v) {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		rows = kept
		if !ok {
			break
		}
		report.FenceIterations++
		report.OutliersRemoved += removed
		if removed == 0 {
			f := fence
			report.Fence = &f
			break
		}
	}

	report.RowsKept = len(rows)
	return rows
}

// dedupe keeps the first of each set of identical rows and counts the rest
func dedupe(header []string, rows []row, dropped *int) []row {
	seen := make(map[string]bool, len(rows))
	unique := rows[:0]
	for _, r := range rows {
		k := r.key(header)
		if seen[k] {
			*dropped++
			continue
		}
		seen[k] = true
		unique = append(unique, r)
	}
	return unique
}

// computeFence returns the Tukey fence over the present years
func computeFence(rows []row, multiplier float64) (entities.Fence, bool) {
	years := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.year.Value(); ok {
			years = append(years, v)
		}
	}
	if len(years) == 0 {
		return entities.Fence{}, false
	}
	sort.Float64s(years)

	q1 := quantile(years, 0.25)
	q3 := quantile(years, 0.75)
	iqr := q3 - q1
	return entities.Fence{
		Q1:    q1,
		Q3:    q3,
		Lower: q1 - multiplier*iqr,
		Upper: q3 + multiplier*iqr,
	}, true
}

// quantile computes the linear-interpolated quantile p of sorted values,
// positioned at (n-1)*p.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
