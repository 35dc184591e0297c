// Command loadtest drives a mix of recipe queries against a running
// recipeserver and reports throughput, latency and status codes per route.
//
// Usage:
//
//	go run ./cmd/loadtest [-url http://localhost:8080] [-concurrency 10] [-duration 30s] [-rps 0]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// target is one request shape in the query mix.
type target struct {
	Route string
	Path  string
	Query url.Values
}

func (t target) url(base string) string {
	if len(t.Query) == 0 {
		return base + t.Path
	}
	return base + t.Path + "?" + t.Query.Encode()
}

// defaultMix covers every read route against the seed catalog, including
// queries that match nothing.
func defaultMix() []target {
	return []target{
		{Route: "search", Path: "/api/v1/search", Query: url.Values{"name": {"pasta"}}},
		{Route: "search", Path: "/api/v1/search", Query: url.Values{"ingredient": {"Uova"}}},
		{Route: "search", Path: "/api/v1/search", Query: url.Values{"duration": {"30"}}},
		{Route: "search", Path: "/api/v1/search", Query: url.Values{"name": {"sushi"}}},
		{Route: "filter-duration", Path: "/api/v1/filter/duration", Query: url.Values{"max": {"25"}, "ingredient": {"parmigiano"}}},
		{Route: "filter-duration", Path: "/api/v1/filter/duration", Query: url.Values{"max": {"60"}, "ingredient": {"pomodoro"}}},
		{Route: "filter-ingredients", Path: "/api/v1/filter/ingredients", Query: url.Values{"a": {"uova"}, "b": {"parmigiano"}}},
		{Route: "filter-ingredients", Path: "/api/v1/filter/ingredients", Query: url.Values{"a": {"riso"}, "b": {"cioccolato"}}},
		{Route: "frequency", Path: "/api/v1/stats/frequency", Query: url.Values{"ingredient": {"sale"}}},
		{Route: "stats", Path: "/api/v1/stats/ingredients", Query: url.Values{"top": {"3"}}},
		{Route: "stats", Path: "/api/v1/stats/duration"},
		{Route: "stats", Path: "/api/v1/stats/most-ingredients"},
		{Route: "stats", Path: "/api/v1/stats/longest"},
		{Route: "list", Path: "/api/v1/recipes"},
	}
}

// Stats accumulates results from every worker.
type Stats struct {
	mu          sync.Mutex
	total       int64
	success     int64
	failed      int64
	latencies   []time.Duration
	statusCodes map[int]int64
	byRoute     map[string]int64
}

func NewStats() *Stats {
	return &Stats{
		latencies:   make([]time.Duration, 0, 100000),
		statusCodes: make(map[int]int64),
		byRoute:     make(map[string]int64),
	}
}

// Record counts one request. Transport errors carry status 0 and add no
// latency sample.
func (s *Stats) Record(route string, d time.Duration, status int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total++
	s.byRoute[route]++
	if err != nil {
		s.failed++
		return
	}
	if status >= 200 && status < 300 {
		s.success++
	} else {
		s.failed++
	}
	s.latencies = append(s.latencies, d)
	s.statusCodes[status]++
}

type config struct {
	BaseURL     string
	Concurrency int
	Duration    time.Duration
	RPS         float64
	Mix         []target
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the recipe service")
	concurrency := flag.Int("concurrency", 10, "number of concurrent workers")
	duration := flag.Duration("duration", 30*time.Second, "test duration")
	rps := flag.Float64("rps", 0, "global request rate cap, 0 for unlimited")
	flag.Parse()

	cfg := config{
		BaseURL:     *baseURL,
		Concurrency: *concurrency,
		Duration:    *duration,
		RPS:         *rps,
		Mix:         defaultMix(),
	}

	fmt.Println("=== Recipe API Load Test ===")
	fmt.Printf("Target:      %s\n", cfg.BaseURL)
	fmt.Printf("Concurrency: %d\n", cfg.Concurrency)
	fmt.Printf("Duration:    %s\n", cfg.Duration)
	if cfg.RPS > 0 {
		fmt.Printf("Rate cap:    %.0f req/s\n", cfg.RPS)
	}
	fmt.Printf("Query mix:   %d requests\n", len(cfg.Mix))
	fmt.Println()

	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency * 2,
			MaxIdleConnsPerHost: cfg.Concurrency * 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	stats := run(ctx, client, cfg)
	printReport(os.Stdout, stats, cfg.Duration)
	printCacheStats(client, cfg.BaseURL)

	if stats.total == 0 {
		fmt.Println()
		fmt.Println("WARNING: No requests completed. Is the service running?")
		os.Exit(1)
	}
}

// run spreads the mix across workers until ctx ends. Worker i starts at
// mix offset i so concurrent workers hit different routes.
func run(ctx context.Context, client *http.Client, cfg config) *Stats {
	stats := NewStats()
	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), max(1, int(cfg.RPS)))
	}

	var g errgroup.Group
	for w := 0; w < cfg.Concurrency; w++ {
		g.Go(func() error {
			for i := w; ctx.Err() == nil; i++ {
				if limiter != nil && limiter.Wait(ctx) != nil {
					return nil
				}
				t := cfg.Mix[i%len(cfg.Mix)]
				start := time.Now()
				status, err := fire(ctx, client, t.url(cfg.BaseURL))
				if ctx.Err() != nil {
					return nil
				}
				stats.Record(t.Route, time.Since(start), status, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return stats
}

func fire(ctx context.Context, client *http.Client, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func printReport(w io.Writer, stats *Stats, duration time.Duration) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	fmt.Fprintln(w, "=== Results ===")
	fmt.Fprintf(w, "Total Requests:  %d\n", stats.total)
	fmt.Fprintf(w, "Successful:      %d\n", stats.success)
	fmt.Fprintf(w, "Failed:          %d\n", stats.failed)
	if stats.total > 0 {
		fmt.Fprintf(w, "Error Rate:      %.2f%%\n", float64(stats.failed)/float64(stats.total)*100)
		fmt.Fprintf(w, "Requests/sec:    %.2f\n", float64(stats.total)/duration.Seconds())
	}

	if len(stats.latencies) > 0 {
		latencies := append([]time.Duration(nil), stats.latencies...)
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		avg := sum / time.Duration(len(latencies))

		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Latency ===")
		fmt.Fprintf(w, "Min:    %s\n", latencies[0])
		fmt.Fprintf(w, "Avg:    %s\n", avg)
		fmt.Fprintf(w, "P50:    %s\n", percentile(latencies, 50))
		fmt.Fprintf(w, "P95:    %s\n", percentile(latencies, 95))
		fmt.Fprintf(w, "P99:    %s\n", percentile(latencies, 99))
		fmt.Fprintf(w, "Max:    %s\n", latencies[len(latencies)-1])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Routes ===")
	routes := make([]string, 0, len(stats.byRoute))
	for r := range stats.byRoute {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	for _, r := range routes {
		fmt.Fprintf(w, "  %-20s %d\n", r, stats.byRoute[r])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Status Codes ===")
	codes := make([]int, 0, len(stats.statusCodes))
	for code := range stats.statusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  %d: %d\n", code, stats.statusCodes[code])
	}
}

// printCacheStats reports the server's query cache counters when the cache
// is enabled.
func printCacheStats(client *http.Client, base string) {
	resp, err := client.Get(base + "/api/v1/cache/stats")
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}
	var body struct {
		Status  string  `json:"status"`
		Hits    int64   `json:"hits"`
		Misses  int64   `json:"misses"`
		HitRate float64 `json:"hit_rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status == "disabled" {
		return
	}
	fmt.Println()
	fmt.Println("=== Query Cache ===")
	fmt.Printf("Hits:     %d\n", body.Hits)
	fmt.Printf("Misses:   %d\n", body.Misses)
	fmt.Printf("Hit Rate: %.1f%%\n", body.HitRate*100)
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
