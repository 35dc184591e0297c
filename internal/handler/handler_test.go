package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/cache"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/report"
)

type testServer struct {
	cat *catalog.Catalog
	h   *Handler
	mux *http.ServeMux
}

func newTestServer(t *testing.T, seed bool) *testServer {
	t.Helper()
	coll := recipe.NewCollection()
	if seed {
		var err error
		coll, err = recipe.Seed()
		require.NoError(t, err)
	}
	cat := catalog.New(coll)
	h := New(cat, nil, report.NewSaver(report.NewMemoryStore(), cat, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recipes", h.ListRecipes)
	mux.HandleFunc("POST /api/v1/recipes", h.AddRecipe)
	mux.HandleFunc("GET /api/v1/recipes/{name}", h.GetRecipe)
	mux.HandleFunc("DELETE /api/v1/recipes/{name}", h.RemoveRecipe)
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/filter/duration", h.FilterByDuration)
	mux.HandleFunc("GET /api/v1/filter/ingredients", h.FilterByIngredients)
	mux.HandleFunc("GET /api/v1/stats/frequency", h.IngredientFrequency)
	mux.HandleFunc("GET /api/v1/stats/most-ingredients", h.MostIngredients)
	mux.HandleFunc("GET /api/v1/stats/longest", h.Longest)
	mux.HandleFunc("GET /api/v1/stats/ingredients", h.IngredientStatistics)
	mux.HandleFunc("GET /api/v1/stats/duration", h.DurationStatistics)
	mux.HandleFunc("GET /api/v1/reports", h.ListReports)
	mux.HandleFunc("GET /api/v1/reports/latest", h.LatestReport)
	mux.HandleFunc("POST /api/v1/reports", h.SaveReport)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
	return &testServer{cat: cat, h: h, mux: mux}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func recipeNames(rs []recipe.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestAddAndRemoveRecipe(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(t, http.MethodPost, "/api/v1/recipes", AddRecipeRequest{
		Name:            "Risotto alla Milanese",
		Ingredients:     []string{" Riso ", "Zafferano", ""},
		DurationMinutes: 35,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	added := decode[recipe.Recipe](t, rec)
	assert.Equal(t, []string{"Riso", "Zafferano", ""}, added.Ingredients)

	rec = s.do(t, http.MethodPost, "/api/v1/recipes", AddRecipeRequest{Name: "RISOTTO ALLA MILANESE", DurationMinutes: 10})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_name", decode[errorResponse](t, rec).Code)

	rec = s.do(t, http.MethodGet, "/api/v1/recipes/risotto%20alla%20milanese", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/recipes/Risotto%20alla%20Milanese", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/recipes/Risotto%20alla%20Milanese", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorResponse](t, rec).Code)
}

func TestAddRecipeValidation(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(t, http.MethodPost, "/api/v1/recipes", AddRecipeRequest{Name: "  ", DurationMinutes: -5})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errorResponse](t, rec)
	assert.Equal(t, "invalid_input", body.Code)
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "duration_minutes")

	rec = httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/recipes", strings.NewReader(`{"name":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/recipes", map[string]any{"name": "x", "duration_minutes": 5, "color": "red"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")
}

func TestAddRecipeCSVIngredients(t *testing.T) {
	s := newTestServer(t, false)
	rec := s.do(t, http.MethodPost, "/api/v1/recipes", AddRecipeRequest{
		Name:            "Bruschetta",
		IngredientsCSV:  "Pane, Pomodoro ,Aglio",
		DurationMinutes: 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"Pane", "Pomodoro", "Aglio"}, decode[recipe.Recipe](t, rec).Ingredients)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/v1/search?name=pesto", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[recipesResponse](t, rec)
	assert.Equal(t, []string{"Pesto", "Gnocchi al Pesto", "Pasta al Pesto di Rucola"}, recipeNames(body.Recipes))
	assert.Equal(t, 3, body.Count)

	rec = s.do(t, http.MethodGet, "/api/v1/search?ingredient=tartufo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"recipes":[],"count":0}`, strings.TrimSpace(rec.Body.String()))

	rec = s.do(t, http.MethodGet, "/api/v1/search?duration=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilters(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/v1/filter/duration?max=20&ingredient=aglio", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		[]string{"Pesto", "Spaghetti Aglio e Olio", "Pasta al Pesto di Rucola", "Crostini al Pomodoro"},
		recipeNames(decode[recipesResponse](t, rec).Recipes),
	)

	rec = s.do(t, http.MethodGet, "/api/v1/filter/duration?max=0&ingredient=aglio", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/filter/duration?max=20", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorResponse](t, rec).Fields, "ingredient")

	rec = s.do(t, http.MethodGet, "/api/v1/filter/ingredients?a=uova&b=PARMIGIANO", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, r := range decode[recipesResponse](t, rec).Recipes {
		assert.Contains(t, r.Ingredients, "Uova")
		assert.Contains(t, r.Ingredients, "Parmigiano")
	}

	rec = s.do(t, http.MethodGet, "/api/v1/filter/ingredients?a=uova", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatistics(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/v1/stats/frequency?ingredient=UOVA", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10.0, decode[map[string]any](t, rec)["count"])

	rec = s.do(t, http.MethodGet, "/api/v1/stats/most-ingredients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pollo al Limone", decode[recipe.Recipe](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/v1/stats/longest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Boeuf Bourguignon", decode[recipe.Recipe](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/v1/stats/ingredients?top=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[recipe.IngredientStats](t, rec)
	assert.Equal(t, []recipe.IngredientCount{{Ingredient: "Cipolla", Count: 13}, {Ingredient: "Parmigiano", Count: 11}}, stats.Top)
	assert.Equal(t, 1, stats.LeastCount)

	rec = s.do(t, http.MethodGet, "/api/v1/stats/ingredients?top=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/stats/duration", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decode[durationResponse](t, rec)
	assert.Equal(t, 10, d.Min)
	assert.Equal(t, 120, d.Max)
	assert.Equal(t, 38.61, d.MeanRounded)
}

func TestStatisticsOnEmptyCollection(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{
		"/api/v1/stats/most-ingredients",
		"/api/v1/stats/longest",
		"/api/v1/stats/ingredients",
		"/api/v1/stats/duration",
	} {
		rec := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
		assert.Equal(t, "empty_collection", decode[errorResponse](t, rec).Code, path)
	}

	rec := s.do(t, http.MethodGet, "/api/v1/stats/frequency?ingredient=sale", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, decode[map[string]any](t, rec)["count"])
}

func TestReports(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodPost, "/api/v1/reports", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	saved := decode[report.Report](t, rec)
	assert.Equal(t, 36, saved.Snapshot.RecipeCount)

	rec = s.do(t, http.MethodGet, "/api/v1/reports?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Reports []report.Report `json:"reports"`
		Count   int             `json:"count"`
	}](t, rec)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, saved.ID, list.Reports[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saved.ID, decode[report.Report](t, rec).ID)
}

func TestLatestReportBeforeAnySave(t *testing.T) {
	s := newTestServer(t, true)

	rec := s.do(t, http.MethodGet, "/api/v1/reports/latest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[errorResponse](t, rec).Code)
}

func TestReportsDisabled(t *testing.T) {
	h := New(catalog.New(nil), nil, nil)
	rec := httptest.NewRecorder()
	h.SaveReport(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCacheDisabled(t *testing.T) {
	s := newTestServer(t, false)

	rec := s.do(t, http.MethodGet, "/api/v1/cache/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"disabled"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/cache/invalidate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListReflectsMutations(t *testing.T) {
	s := newTestServer(t, false)
	_, err := s.cat.Add(context.Background(), "Polenta", []string{"Farina di Mais"}, 45)
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/v1/recipes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Polenta"}, recipeNames(decode[recipesResponse](t, rec).Recipes))
}

type mapBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *mapBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapBackend) FlushByPattern(context.Context, string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.data))
	m.data = make(map[string][]byte)
	return n, nil
}

func TestCachedQueriesStillReachAnalytics(t *testing.T) {
	coll, err := recipe.Seed()
	require.NoError(t, err)
	agg := analytics.NewAggregator(nil, 10)
	cat := catalog.New(coll, catalog.WithTracker(agg))
	h := New(cat, cache.New(&mapBackend{data: make(map[string][]byte)}, time.Minute, nil), nil)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/v1/search?ingredient=uova", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, i > 0, decode[recipesResponse](t, rec).Cached)
	}
	rec := httptest.NewRecorder()
	h.FilterByIngredients(rec, httptest.NewRequest(http.MethodGet, "/api/v1/filter/ingredients?a=pasta&b=uova", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = httptest.NewRecorder()
	h.FilterByIngredients(rec, httptest.NewRequest(http.MethodGet, "/api/v1/filter/ingredients?a=uova&b=pasta", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	stats := agg.Stats()
	assert.Equal(t, int64(3), stats.ByType[analytics.EventSearch])
	assert.Equal(t, int64(2), stats.ByType[analytics.EventFilter])
	assert.Equal(t, int64(3), stats.Cached)
	require.NotEmpty(t, stats.TopTerms)
	assert.Equal(t, analytics.TermCount{Term: "uova", Count: 5}, stats.TopTerms[0])
}
