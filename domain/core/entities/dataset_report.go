package entities

import "time"

// Fence is the Tukey outlier fence computed over allotment years
type Fence struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether v lies within the fence, bounds included
func (f Fence) Contains(v float64) bool {
	return v >= f.Lower && v <= f.Upper
}

// CleaningReport summarizes what load-time cleaning did to a dataset.
// NormalizedDuplicatesDropped counts rows equal to an earlier row only after
// missing cells were filled and key columns trimmed. RecordsServed counts the
// records, cleaned or not, that the career viewer can look up.
type CleaningReport struct {
	Source                      string    `json:"source"`
	LoadedAt                    time.Time `json:"loaded_at"`
	RowsRead                    int       `json:"rows_read"`
	DuplicatesDropped           int       `json:"duplicates_dropped"`
	NormalizedDuplicatesDropped int       `json:"normalized_duplicates_dropped"`
	MissingYears                int       `json:"missing_years"`
	MissingYearsDropped         int       `json:"missing_years_dropped"`
	OutliersRemoved             int       `json:"outliers_removed"`
	FenceIterations             int       `json:"fence_iterations"`
	Fence                       *Fence    `json:"fence,omitempty"`
	RowsKept                    int       `json:"rows_kept"`
	RecordsServed               int       `json:"records_served"`
	DuplicateIdentity           int       `json:"duplicate_identity"`
	MalformedRecords            int       `json:"malformed_records"`
}
