package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"careergraph/infrastructure/config"
	"careergraph/infrastructure/di"
	"careergraph/infrastructure/persistence/dataset/datasettest"
	"careergraph/interfaces/http/rest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorBody struct {
	Error bool   `json:"error"`
	Type  string `json:"type"`
	Code  string `json:"code"`
}

type testServer struct {
	handler http.Handler
	dataset string
}

func newTestServer(t *testing.T, burst int, officers ...datasettest.Officer) *testServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "officers.csv")
	require.NoError(t, os.WriteFile(path, []byte(datasettest.CSV(officers...)), 0o600))

	cfg := config.Default()
	cfg.DatasetPath = path
	cfg.GraphBackend = config.BackendMemory
	cfg.WatchDataset = false
	cfg.LogLevel = "error"
	cfg.RateLimitBurst = burst
	cfg.RateLimitRefill = time.Hour

	container, cleanup, err := di.InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	router := rest.NewRouter(
		cfg,
		container.CommandBus,
		container.QueryBus,
		container.ErrorHandler,
		container.RateLimiter,
		container.Metrics,
		container.Ready,
		container.Logger,
	)
	return &testServer{handler: router.Setup(), dataset: path}
}

func (s *testServer) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) data(t *testing.T, target string, into interface{}) {
	t.Helper()
	rec := s.do(t, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, into))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error)
	return body
}

type graphBody struct {
	Layout string `json:"layout"`
	Nodes  []struct {
		ID       string    `json:"id"`
		Color    string    `json:"color"`
		Position *struct{} `json:"position"`
	} `json:"nodes"`
	Edges []struct {
		Source string `json:"source"`
		Target string `json:"target"`
		Title  string `json:"title"`
	} `json:"edges"`
}

type rowBody struct {
	Name         string `json:"name"`
	Ministry     string `json:"ministry"`
	OverlapStart string `json:"overlap_start"`
	OverlapEnd   string `json:"overlap_end"`
}

func TestRouter_Probes(t *testing.T) {
	srv := newTestServer(t, 100, datasettest.FinanceOfficers()...)

	rec := srv.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())

	srv.do(t, http.MethodGet, "/api/v1/officers/names", "")
	rec = srv.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "careergraph_http_requests_total")
	assert.Contains(t, rec.Body.String(), "careergraph_dataset_rows 2")

	rec = srv.do(t, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Type)
}

func TestRouter_Officers(t *testing.T) {
	srv := newTestServer(t, 100, datasettest.FinanceOfficers()...)

	var names []string
	srv.data(t, "/api/v1/officers/names", &names)
	assert.Equal(t, []string{"A", "B"}, names)

	var list struct {
		Officers []struct {
			IdentityNo string `json:"identity_no"`
			Label      string `json:"label"`
		} `json:"officers"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	srv.data(t, "/api/v1/officers?name=b", &list)
	require.Len(t, list.Officers, 1)
	assert.Equal(t, "B (IAS-002)", list.Officers[0].Label)
	assert.Equal(t, 1, list.Pagination.Total)

	var detail struct {
		Name       string `json:"name"`
		Experience []struct {
			Designation string `json:"designation"`
		} `json:"experience"`
		Fields []struct {
			Label string `json:"label"`
		} `json:"fields"`
	}
	srv.data(t, "/api/v1/officers/IAS-001", &detail)
	assert.Equal(t, "A", detail.Name)
	require.Len(t, detail.Experience, 1)
	assert.Equal(t, "Joint Secretary", detail.Experience[0].Designation)
	assert.NotEmpty(t, detail.Fields)

	rec := srv.do(t, http.MethodGet, "/api/v1/officers/IAS-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	srv.data(t, "/api/v1/officers/names/B", &detail)
	assert.Equal(t, "B", detail.Name)
	assert.Equal(t, "Director", detail.Experience[0].Designation)
}

func TestRouter_Colleagues(t *testing.T) {
	srv := newTestServer(t, 100, datasettest.FinanceOfficers()...)

	var result struct {
		Skipped   bool      `json:"skipped"`
		NoResults bool      `json:"no_results"`
		Rows      []rowBody `json:"rows"`
		Graph     graphBody `json:"graph"`
	}
	srv.data(t, "/api/v1/officers/IAS-002/experiences/0/colleagues", &result)

	assert.False(t, result.Skipped)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, rowBody{Name: "A", Ministry: "Finance", OverlapStart: "2003-01-01", OverlapEnd: "2005-01-01"}, result.Rows[0])
	require.Len(t, result.Graph.Nodes, 2)
	assert.Equal(t, "B", result.Graph.Nodes[0].ID)
	assert.Equal(t, "red", result.Graph.Nodes[0].Color)
	assert.Equal(t, "blue", result.Graph.Nodes[1].Color)
	require.Len(t, result.Graph.Edges, 1)
	assert.Equal(t, "Worked at Finance from 2003-01-01 to 2005-01-01", result.Graph.Edges[0].Title)

	rec := srv.do(t, http.MethodGet, "/api/v1/officers/IAS-002/experiences/first/colleagues", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, rec).Type)
}

func TestRouter_Overlaps(t *testing.T) {
	srv := newTestServer(t, 100, datasettest.FinanceOfficers()...)

	var result struct {
		Rows      []rowBody `json:"rows"`
		NoResults bool      `json:"no_results"`
		Message   string    `json:"message"`
	}
	srv.data(t, "/api/v1/overlaps?person=A&ministry=Finance&from=2001-01-01&to=2007-01-01", &result)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "B", result.Rows[0].Name)
	assert.Equal(t, "2003-01-01", result.Rows[0].OverlapStart)
	assert.Equal(t, "2005-01-01", result.Rows[0].OverlapEnd)

	srv.data(t, "/api/v1/overlaps?person=A&ministry=Defence&from=2001-01-01&to=2007-01-01", &result)
	assert.Empty(t, result.Rows)
	assert.True(t, result.NoResults)
	assert.Equal(t, "No results found.", result.Message)

	rec := srv.do(t, http.MethodGet, "/api/v1/overlaps?person=A&ministry=Finance&from=someday&to=2007-01-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION", decodeError(t, rec).Type)
}

func TestRouter_Similar(t *testing.T) {
	officers := append(datasettest.FinanceOfficers(),
		datasettest.Officer{IdentityNo: "IAS-003", Name: "C", Year: "1998", Domicile: "Kerala"},
		datasettest.Officer{IdentityNo: "IAS-004", Name: "D", Year: "Unknown", Domicile: "Kerala"},
	)
	srv := newTestServer(t, 100, officers...)

	var result struct {
		Attribute string    `json:"attribute"`
		Value     *string   `json:"value"`
		Graph     graphBody `json:"graph"`
	}
	srv.data(t, "/api/v1/officers/IAS-001/similar", &result)
	assert.Equal(t, "allotment_year", result.Attribute)
	assert.Equal(t, "force_directed", result.Graph.Layout)
	require.Len(t, result.Graph.Nodes, 3)
	for _, n := range result.Graph.Nodes {
		assert.NotNil(t, n.Position)
	}
	require.Len(t, result.Graph.Edges, 2)
	assert.Equal(t, "Allotment Year", result.Graph.Edges[0].Title)

	srv.data(t, "/api/v1/officers/IAS-003/similar?attribute=domicile_place", &result)
	require.NotNil(t, result.Value)
	assert.Equal(t, "Kerala", *result.Value)
	assert.Len(t, result.Graph.Nodes, 2, "D has no year and is not in the cleaned table")

	rec := srv.do(t, http.MethodGet, "/api/v1/officers/IAS-004/similar", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/officers/IAS-001/similar?attribute=cadre", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ViewerServesRecordsDroppedByCleaning(t *testing.T) {
	var officers []datasettest.Officer
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		officers = append(officers, datasettest.Officer{
			IdentityNo: fmt.Sprintf("IAS-%03d", i+1),
			Name:       name,
			Year:       fmt.Sprint(1990 + i),
			Domicile:   "Kerala",
		})
	}
	officers[0].Postings = []datasettest.Posting{
		{Designation: "Joint Secretary", Inferred: "Finance", From: "2001-01-01", To: "2005-01-01"},
	}
	officers = append(officers,
		datasettest.Officer{IdentityNo: "IAS-008", Name: "H", Year: "2150", Domicile: "Kerala", Postings: []datasettest.Posting{
			{Designation: "Director", Inferred: "Finance", From: "2003-01-01", To: "2007-01-01"},
		}},
		datasettest.Officer{IdentityNo: "IAS-009", Name: "I", Year: "n/a", Domicile: "Kerala"},
	)
	srv := newTestServer(t, 100, officers...)

	var names []string
	srv.data(t, "/api/v1/officers/names", &names)
	assert.Contains(t, names, "H")
	assert.Contains(t, names, "I")

	var detail struct {
		IdentityNo string `json:"identity_no"`
		Name       string `json:"name"`
	}
	srv.data(t, "/api/v1/officers/names/H", &detail)
	assert.Equal(t, "IAS-008", detail.IdentityNo)
	srv.data(t, "/api/v1/officers/names/I", &detail)
	assert.Equal(t, "IAS-009", detail.IdentityNo)

	var colleagues struct {
		Rows []rowBody `json:"rows"`
	}
	srv.data(t, "/api/v1/officers/IAS-008/experiences/0/colleagues", &colleagues)
	require.Len(t, colleagues.Rows, 1)
	assert.Equal(t, rowBody{Name: "A", Ministry: "Finance", OverlapStart: "2003-01-01", OverlapEnd: "2005-01-01"}, colleagues.Rows[0])

	rec := srv.do(t, http.MethodGet, "/api/v1/officers/IAS-008/similar", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var report struct {
		OutliersRemoved     int `json:"outliers_removed"`
		MissingYearsDropped int `json:"missing_years_dropped"`
		RowsKept            int `json:"rows_kept"`
		RecordsServed       int `json:"records_served"`
	}
	srv.data(t, "/api/v1/dataset", &report)
	assert.Equal(t, 1, report.OutliersRemoved)
	assert.Equal(t, 1, report.MissingYearsDropped)
	assert.Equal(t, 7, report.RowsKept)
	assert.Equal(t, 9, report.RecordsServed)
}

func TestRouter_Dashboards(t *testing.T) {
	officers := append(datasettest.FinanceOfficers(), datasettest.Officer{
		IdentityNo: "IAS-003",
		Name:       "C",
		Year:       "1998",
		Domicile:   "Goa",
		Postings: []datasettest.Posting{
			{Designation: "Collector", Ministry: "Revenue Department", From: "2000-01-01", To: "2002-01-01"},
		},
	})
	srv := newTestServer(t, 100, officers...)

	rec := srv.do(t, http.MethodGet, "/dashboards/colleagues/IAS-002/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>B</h1>")
	assert.Contains(t, body, "vis-network")
	assert.Contains(t, body, "<td>A</td>")
	assert.Contains(t, body, `id="graph"`)

	rec = srv.do(t, http.MethodGet, "/dashboards/colleagues/IAS-003/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "This experience has no inferred ministry.")
	assert.NotContains(t, rec.Body.String(), `id="graph"`)

	rec = srv.do(t, http.MethodGet, "/dashboards/similarity/IAS-001?attribute=domicile_place", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Place of Domicile: Kerala")

	rec = srv.do(t, http.MethodGet, "/dashboards/similarity/IAS-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRouter_RateLimit(t *testing.T) {
	srv := newTestServer(t, 2, datasettest.FinanceOfficers()...)
	target := "/api/v1/overlaps?person=A&ministry=Finance&from=2001-01-01&to=2007-01-01"

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, target, "").Code)
	}

	rec := srv.do(t, http.MethodGet, target, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMIT", decodeError(t, rec).Type)

	// Record Store lookups are not limited
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/v1/officers/names", "").Code)
}

func TestRouter_DatasetReload(t *testing.T) {
	srv := newTestServer(t, 100, datasettest.FinanceOfficers()...)

	var report struct {
		RowsKept int `json:"rows_kept"`
	}
	srv.data(t, "/api/v1/dataset", &report)
	assert.Equal(t, 2, report.RowsKept)

	officers := append(datasettest.FinanceOfficers(),
		datasettest.Officer{IdentityNo: "IAS-003", Name: "C", Year: "1998", Domicile: "Goa"},
	)
	require.NoError(t, os.WriteFile(srv.dataset, []byte(datasettest.CSV(officers...)), 0o600))

	rec := srv.do(t, http.MethodPost, "/api/v1/dataset/reload", `{"reason":"test"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 3, report.RowsKept)

	var names []string
	srv.data(t, "/api/v1/officers/names", &names)
	assert.Equal(t, []string{"A", "B", "C"}, names)

	t.Run("broken file keeps the previous snapshot", func(t *testing.T) {
		require.NoError(t, os.WriteFile(srv.dataset, []byte(datasettest.Table([]string{"Name"}, []string{"D"})), 0o600))

		rec := srv.do(t, http.MethodPost, "/api/v1/dataset/reload", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "RELOAD_FAILED", decodeError(t, rec).Code)

		srv.data(t, "/api/v1/officers/names", &names)
		assert.Equal(t, []string{"A", "B", "C"}, names)
	})

	t.Run("reload is POST only", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/dataset/reload", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
