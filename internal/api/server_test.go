package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/metrics"
	"github.com/slackdb/slackdb-server/internal/ratelimit"
	"github.com/slackdb/slackdb-server/internal/search"
	"github.com/slackdb/slackdb-server/internal/service"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/store/sqlite"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// testEnvelope decodes a success envelope with typed data.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// testErrorEnvelope decodes a coded error envelope.
type testErrorEnvelope struct {
	Version int            `json:"v"`
	Success bool           `json:"success"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

type testServer struct {
	*Server
	api   humatest.TestAPI
	store store.Store
}

type testOptions struct {
	search bool
	opts   Options
}

// setupTestServer creates a server over a temporary SQLite store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWith(t, testOptions{search: true})
}

func setupTestServerWith(t *testing.T, to testOptions) *testServer {
	t.Helper()
	dir := t.TempDir()
	log := logger.Discard()

	st, err := sqlite.Open(filepath.Join(dir, "catalog.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	var catalog *search.Catalog
	if to.search {
		index, err := search.NewSearchIndex(search.Options{DataPath: filepath.Join(dir, "search"), Logger: log})
		require.NoError(t, err)
		t.Cleanup(func() { _ = index.Close() })
		catalog = search.NewCatalog(index, st, log)
	}

	v := validation.New()
	searchSvc := service.NewSearchService(catalog, log)
	services := &Services{
		Brand:   service.NewBrandService(st, v, searchSvc, log),
		Webbing: service.NewWebbingService(st, v, searchSvc, log),
		Weblock: service.NewWeblockService(st, v, searchSvc, log),
		Roller:  service.NewRollerService(st, v, searchSvc, log),
		Search:  searchSvc,
	}

	if to.opts.AllowedOrigins == nil {
		to.opts.AllowedOrigins = []string{"*"}
	}
	s := NewServer(st, services, to.opts, log)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.API()),
		store:  st,
	}
}

// createBrand creates a brand over HTTP and returns its id.
func (ts *testServer) createBrand(t *testing.T, name string) int64 {
	t.Helper()
	resp := ts.api.Post("/api/v1/brands", map[string]any{"name": name, "country": "Germany"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return int64(env.Data["id"].(float64))
}

func decodeError(t *testing.T, body []byte) testErrorEnvelope {
	t.Helper()
	var env testErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/harnesses")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	env := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, 1, env.Version)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestServer_OpenAPI(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/openapi.json")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "/api/v1/webbings/{id}")
	assert.Contains(t, resp.Body.String(), "createBrand")
}

func TestServer_Metrics(t *testing.T) {
	ts := setupTestServerWith(t, testOptions{search: true, opts: Options{Metrics: metrics.New()}})

	ts.api.Get("/api/v1/brands")
	resp := ts.api.Get("/metrics")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `route="/api/v1/brands"`)
}

func TestServer_RateLimitsWrites(t *testing.T) {
	// One write per client, refilled far slower than the test runs.
	limiter := ratelimit.New(0.001, 1)
	t.Cleanup(limiter.Stop)
	ts := setupTestServerWith(t, testOptions{opts: Options{RateLimiter: limiter}})

	first := ts.api.Post("/api/v1/brands", map[string]any{"name": "Balance Community"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := ts.api.Post("/api/v1/brands", map[string]any{"name": "Slackline Industries"})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, second.Body.Bytes()).Code)

	// Reads are never limited.
	for range 3 {
		assert.Equal(t, http.StatusOK, ts.api.Get("/api/v1/brands").Code)
	}
}
