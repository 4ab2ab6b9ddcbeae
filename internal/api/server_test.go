package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/student-report-api/internal/config"
	"github.com/vietanh2810/student-report-api/internal/domain"
	"github.com/vietanh2810/student-report-api/internal/repository/dao"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "8080",
			BaseURL:            "localhost:8080",
			AllowedCORSDomains: []string{"http://localhost:3000"},
		},
		Gin: &config.GinConfig{Mode: "test"},
		Chart: &config.ChartConfig{
			Width:         600,
			Height:        400,
			HistogramBins: 10,
			MaxConcurrent: 2,
		},
		Roster: &config.RosterConfig{},
	}
}

func newServer(t *testing.T, roster []dao.Student) *Server {
	t.Helper()

	s, err := NewServer(testConfig(), roster)
	require.NoError(t, err)

	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func TestNewServer_Routes(t *testing.T) {
	s := newServer(t, dao.SampleRoster())

	paths := []string{
		"/",
		"/api/all-students",
		"/api/student/101",
		"/api/students-by-grade/B",
		"/api/branches",
		"/api/branch-wise-students",
		"/api/toppers",
		"/api/top-students/3",
		"/api/students-above-percentage/80.0",
		"/api/statistics",
		"/api/report",
		"/api/branch-averages",
		"/api/subject-averages",
		"/swagger/index.html",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := serve(s, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestNewServer_GenerateGraphs(t *testing.T) {
	s := newServer(t, dao.SampleRoster())

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/generate-graphs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var set domain.ChartSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	assert.Len(t, set.Charts, 5)
	assert.Empty(t, set.Errors)
}

func TestNewServer_EmptyRoster(t *testing.T) {
	s := newServer(t, nil)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/generate-graphs", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/all-students", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNewServer_CORS(t *testing.T) {
	s := newServer(t, dao.SampleRoster())

	req := httptest.NewRequest(http.MethodGet, "/api/branches", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := serve(s, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/branches", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = serve(s, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
