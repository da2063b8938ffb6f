package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointbreak45/Street-Eye/internal/config"
	"github.com/pointbreak45/Street-Eye/internal/models"
	"github.com/pointbreak45/Street-Eye/internal/services/analysis"
	"github.com/pointbreak45/Street-Eye/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{
		Version:              "test",
		Environment:          "test",
		WorkerID:             "streeteye-test",
		Port:                 0,
		LogLevel:             "disabled",
		LineOrientation:      "horizontal",
		LinePosition:         100,
		LineDirection:        "both",
		TrackExpiryFrames:    30,
		TrackHistoryLen:      16,
		TrackerEnabled:       true,
		TrackerIoUThreshold:  0.3,
		FallbackWindowFrames: 25,
		FallbackMinDistance:  50,
		DensityMediumRate:    10,
		DensityHighRate:      30,
		OutputDir:            filepath.Join(dir, "outputs"),
	}

	svc := analysis.NewService(cfg, st, nil)
	server := NewServer(cfg, svc)
	require.NoError(t, server.Setup())
	return server
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "streeteye-test", resp["worker_id"])
}

func TestServiceInfoEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "detection_ingest")
}

func TestIngestRunOverAPI(t *testing.T) {
	server := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/analyses", `{"source":"camera-1","kind":"ingest","fps":25}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var run models.AnalysisRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	require.NotEmpty(t, run.ID)
	assert.Equal(t, models.RunStatusRunning, run.Status)

	// Walk a car across the line at y=100.
	for i, y := range []float64{70, 90, 110, 130} {
		body := fmt.Sprintf(
			`{"frames":[{"frame_index":%d,"detections":[{"x1":90,"y1":%f,"x2":130,"y2":%f,"label":"car","score":0.9}]}]}`,
			i, y-20, y+20)
		w = doJSON(t, server, http.MethodPost, "/analyses/"+run.ID+"/frames", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = doJSON(t, server, http.MethodPost, "/analyses/"+run.ID+"/finish", "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalVehicles)
	assert.Equal(t, models.CategoryCar, summary.MostCommon)

	w = doJSON(t, server, http.MethodGet, "/analyses/"+run.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.RunStatusCompleted))

	w = doJSON(t, server, http.MethodGet, "/analyses/"+run.ID+"/timeseries", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodGet, "/analyses/"+run.ID+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodGet, "/analyses/"+run.ID+"/chart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestCreateAnalysisValidation(t *testing.T) {
	server := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/analyses", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, server, http.MethodPost, "/analyses", `{"source":"x","kind":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRunReturns404(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{
		"/analyses/missing",
		"/analyses/missing/timeseries",
		"/analyses/missing/summary",
		"/analyses/missing/chart",
	} {
		w := doJSON(t, server, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w := doJSON(t, server, http.MethodPost, "/analyses/missing/finish", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelIngestRun(t *testing.T) {
	server := newTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/analyses", `{"source":"camera-1","kind":"ingest"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	var run models.AnalysisRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))

	w = doJSON(t, server, http.MethodDelete, "/analyses/"+run.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.RunStatusFailed))
}
