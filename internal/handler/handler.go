// Package handler implements the recipe HTTP API on top of the catalog.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/cache"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/recipe"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/report"
	apperrors "github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/logger"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	catalog *catalog.Catalog
	cache   *cache.QueryCache
	saver   *report.Saver
	logger  *slog.Logger
}

// New builds the API handler. queryCache and saver may be nil when Redis or
// report persistence are disabled.
func New(cat *catalog.Catalog, queryCache *cache.QueryCache, saver *report.Saver) *Handler {
	return &Handler{
		catalog: cat,
		cache:   queryCache,
		saver:   saver,
		logger:  slog.Default().With("component", "recipe-handler"),
	}
}

type recipesResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
	Count   int             `json:"count"`
	Cached  bool            `json:"cached,omitempty"`
}

func newRecipesResponse(rs []recipe.Recipe, cached bool) recipesResponse {
	if rs == nil {
		rs = []recipe.Recipe{}
	}
	return recipesResponse{Recipes: rs, Count: len(rs), Cached: cached}
}

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, newRecipesResponse(h.catalog.List(r.Context()), false))
}

func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.catalog.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	var req AddRecipeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "invalid JSON body: %v", err))
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.catalog.Add(r.Context(), req.Name, req.Ingredients, req.DurationMinutes)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) RemoveRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.catalog.Remove(r.Context(), r.PathValue("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	res, cached, err := h.cached(r, cache.SearchKey(h.generation(), q), func(n int) analytics.Event {
		return catalog.SearchEvent(q, n)
	}, func() ([]recipe.Recipe, error) {
		return h.catalog.Search(ctx, q)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	logger.FromContext(ctx).Debug("search completed", "query", q, "results", len(res), "cached", cached)
	h.writeJSON(w, http.StatusOK, newRecipesResponse(res, cached))
}

func (h *Handler) FilterByDuration(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	errs := fieldErrors{}
	maxDuration := requiredPositiveInt(v, "max", errs)
	ingredient := requiredString(v, "ingredient", errs)
	if err := errs.err(); err != nil {
		h.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	res, cached, err := h.cached(r, cache.DurationFilterKey(h.generation(), maxDuration, ingredient), func(n int) analytics.Event {
		return catalog.DurationFilterEvent(ingredient, n)
	}, func() ([]recipe.Recipe, error) {
		return h.catalog.FilterByDurationAndIngredient(ctx, maxDuration, ingredient)
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newRecipesResponse(res, cached))
}

func (h *Handler) FilterByIngredients(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	errs := fieldErrors{}
	a := requiredString(v, "a", errs)
	b := requiredString(v, "b", errs)
	if err := errs.err(); err != nil {
		h.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	res, cached, err := h.cached(r, cache.TwoIngredientKey(h.generation(), a, b), func(n int) analytics.Event {
		return catalog.TwoIngredientEvent(a, b, n)
	}, func() ([]recipe.Recipe, error) {
		return h.catalog.FilterByTwoIngredients(ctx, a, b), nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newRecipesResponse(res, cached))
}

func (h *Handler) IngredientFrequency(w http.ResponseWriter, r *http.Request) {
	errs := fieldErrors{}
	ingredient := requiredString(r.URL.Query(), "ingredient", errs)
	if err := errs.err(); err != nil {
		h.writeError(w, r, err)
		return
	}
	n := h.catalog.IngredientFrequency(r.Context(), ingredient)
	h.writeJSON(w, http.StatusOK, map[string]any{"ingredient": ingredient, "count": n})
}

func (h *Handler) MostIngredients(w http.ResponseWriter, r *http.Request) {
	rec, err := h.catalog.MostIngredients(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Longest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.catalog.HighestDuration(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) IngredientStatistics(w http.ResponseWriter, r *http.Request) {
	errs := fieldErrors{}
	top := optionalPositiveInt(r.URL.Query(), "top", maxTopIngredients, errs)
	if err := errs.err(); err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := h.catalog.IngredientStatistics(r.Context(), top)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

type durationResponse struct {
	recipe.DurationStats
	MeanRounded float64 `json:"mean_rounded"`
}

func (h *Handler) DurationStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.DurationStatistics(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, durationResponse{DurationStats: stats, MeanRounded: stats.RoundedMean()})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	if h.saver == nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusServiceUnavailable, "report persistence is disabled"))
		return
	}
	errs := fieldErrors{}
	limit := optionalPositiveInt(r.URL.Query(), "limit", maxReportListLimit, errs)
	if err := errs.err(); err != nil {
		h.writeError(w, r, err)
		return
	}
	reports, err := h.saver.Store().List(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"reports": reports, "count": len(reports)})
}

// LatestReport serves the most recent persisted snapshot, 404 when none
// has been saved.
func (h *Handler) LatestReport(w http.ResponseWriter, r *http.Request) {
	if h.saver == nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusServiceUnavailable, "report persistence is disabled"))
		return
	}
	rep, err := h.saver.Store().Latest(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rep)
}

func (h *Handler) SaveReport(w http.ResponseWriter, r *http.Request) {
	if h.saver == nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusServiceUnavailable, "report persistence is disabled"))
		return
	}
	rep, err := h.saver.SaveNow(r.Context(), report.TriggerManual)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rep)
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	h.writeJSON(w, http.StatusOK, h.cache.Stats())
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, r, apperrors.New(apperrors.ErrInternal, http.StatusServiceUnavailable, "caching is disabled"))
		return
	}
	deleted, err := h.cache.Invalidate(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "invalidated", "keys_deleted": deleted})
}

// cached routes compute through the query cache when one is configured.
func (h *Handler) generation() cache.Generation {
	return cache.Generation{Instance: h.catalog.InstanceID(), Version: h.catalog.Version()}
}

// cached serves a query through the query cache when one is configured.
// Answers that did not run compute in this request, cache hits and results
// shared with a concurrent identical request, are still reported to the
// catalog through event.
func (h *Handler) cached(r *http.Request, key string, event func(results int) analytics.Event, compute func() ([]recipe.Recipe, error)) ([]recipe.Recipe, bool, error) {
	if h.cache == nil {
		res, err := compute()
		return res, false, err
	}
	start := time.Now()
	ran := false
	res, hit, err := h.cache.GetOrCompute(r.Context(), key, func() ([]recipe.Recipe, error) {
		ran = true
		return compute()
	})
	if err == nil && !ran {
		h.catalog.RecordCached(r.Context(), event(len(res)), start)
	}
	return res, hit, err
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatusCode(err)
	body := errorResponse{Error: err.Error(), Code: apperrors.Code(err)}

	var verr *ValidationError
	if errors.As(err, &verr) {
		body.Error = "validation failed"
		body.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		if status == http.StatusInternalServerError {
			body.Error = "internal error"
		}
	}
	h.writeJSON(w, status, body)
}
