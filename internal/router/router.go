// Package router wires the recipe API routes and the middleware chain.
package router

import (
	"net/http"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/internal/handler"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/middleware"
)

type Deps struct {
	Handler   *handler.Handler
	Analytics *analytics.Handler // nil hides /api/v1/analytics
	Health    *health.Checker
	Metrics   *metrics.Metrics // nil skips request metrics
	Limiter   *middleware.Limiter
	CORS      middleware.CORSConfig
	Timeout   time.Duration
}

// New returns the service handler.
//
// Route table:
//
//	GET    /api/v1/recipes
//	POST   /api/v1/recipes
//	GET    /api/v1/recipes/{name}
//	DELETE /api/v1/recipes/{name}
//	GET    /api/v1/search?name=&ingredient=&duration=
//	GET    /api/v1/filter/duration?max=&ingredient=
//	GET    /api/v1/filter/ingredients?a=&b=
//	GET    /api/v1/stats/frequency?ingredient=
//	GET    /api/v1/stats/most-ingredients
//	GET    /api/v1/stats/longest
//	GET    /api/v1/stats/ingredients?top=
//	GET    /api/v1/stats/duration
//	GET    /api/v1/reports?limit=
//	GET    /api/v1/reports/latest
//	POST   /api/v1/reports
//	GET    /api/v1/cache/stats
//	POST   /api/v1/cache/invalidate
//	GET    /api/v1/analytics
//	GET    /health/live, /health/ready
//
// Middleware, outermost first: RequestID, CORS, RateLimit, Metrics, Timeout.
func New(d Deps) http.Handler {
	h := d.Handler
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

	if d.Analytics != nil {
		mux.HandleFunc("GET /api/v1/analytics", d.Analytics.Stats)
	}
	if d.Health != nil {
		mux.HandleFunc("GET /health/live", d.Health.LiveHandler())
		mux.HandleFunc("GET /health/ready", d.Health.ReadyHandler())
	}

	chain := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.CORS(d.CORS),
		middleware.RateLimit(d.Limiter, d.Metrics),
	}
	if d.Metrics != nil {
		chain = append(chain, middleware.Metrics(d.Metrics))
	}
	if d.Timeout > 0 {
		chain = append(chain, middleware.Timeout(d.Timeout))
	}
	return middleware.Chain(mux, chain...)
}
