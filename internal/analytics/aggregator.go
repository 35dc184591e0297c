package analytics

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Recipe-Analytics-Platform/pkg/kafka"
)

type Stats struct {
	TotalEvents     int64               `json:"total_events"`
	ByType          map[EventType]int64 `json:"by_type"`
	Failed          int64               `json:"failed"`
	Cached          int64               `json:"cached"`
	ZeroResultCount int64               `json:"zero_result_count"`
	AvgLatencyUs    float64             `json:"avg_latency_us"`
	P50LatencyUs    int64               `json:"p50_latency_us"`
	P95LatencyUs    int64               `json:"p95_latency_us"`
	P99LatencyUs    int64               `json:"p99_latency_us"`
	TopTerms        []TermCount         `json:"top_terms"`
	ZeroResultTerms []TermCount         `json:"zero_result_terms"`
	EventsPerMinute float64             `json:"events_per_minute"`
	LastEventAt     *time.Time          `json:"last_event_at,omitempty"`
}

type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

const maxLatencySamples = 10000

// Aggregator keeps running totals over catalog events. It can be fed
// in-process through Track or from Kafka through HandleEvent.
type Aggregator struct {
	mu              sync.RWMutex
	total           int64
	byType          map[EventType]int64
	failed          int64
	cached          int64
	zeroResults     int64
	latencies       []int64
	termCounts      map[string]int64
	zeroResultTerms map[string]int64
	lastEvent       time.Time
	startTime       time.Time
	topN            int

	consumer *kafka.Consumer
	logger   *slog.Logger
}

func NewAggregator(consumer *kafka.Consumer, topN int) *Aggregator {
	if topN <= 0 {
		topN = 10
	}
	return &Aggregator{
		byType:          make(map[EventType]int64),
		latencies:       make([]int64, 0, 1024),
		termCounts:      make(map[string]int64),
		zeroResultTerms: make(map[string]int64),
		startTime:       time.Now(),
		topN:            topN,
		consumer:        consumer,
		logger:          slog.Default().With("component", "analytics-aggregator"),
	}
}

// Start runs the Kafka consume loop. It fails when the aggregator was built
// without a consumer.
func (a *Aggregator) Start(ctx context.Context) error {
	if a.consumer == nil {
		return errors.New("analytics aggregator has no consumer")
	}
	a.logger.Info("analytics aggregator starting")
	return a.consumer.Start(ctx)
}

// HandleEvent decodes Kafka messages into the aggregator. Undecodable
// messages are logged and committed.
func HandleEvent(agg *Aggregator) kafka.MessageHandler {
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[Event](value)
		if err != nil {
			agg.logger.Error("failed to decode analytics event", "key", string(key), "error", err)
			return nil
		}
		agg.Track(event)
		return nil
	}
}

func (a *Aggregator) Track(event Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.byType[event.Type]++
	if event.Outcome != "" && event.Outcome != "ok" {
		a.failed++
	}
	if event.Cached {
		a.cached++
	}
	if len(a.latencies) < maxLatencySamples {
		a.latencies = append(a.latencies, event.LatencyUs)
	} else {
		a.latencies[a.total%maxLatencySamples] = event.LatencyUs
	}
	if event.Timestamp.After(a.lastEvent) {
		a.lastEvent = event.Timestamp
	}

	if event.Type != EventSearch && event.Type != EventFilter {
		return
	}
	zero := event.Outcome == "ok" && event.Results == 0
	if zero {
		a.zeroResults++
	}
	for _, term := range event.Terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		a.termCounts[term]++
		if zero {
			a.zeroResultTerms[term]++
		}
	}
}

func (a *Aggregator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := Stats{
		TotalEvents:     a.total,
		ByType:          make(map[EventType]int64, len(a.byType)),
		Failed:          a.failed,
		Cached:          a.cached,
		ZeroResultCount: a.zeroResults,
		TopTerms:        topN(a.termCounts, a.topN),
		ZeroResultTerms: topN(a.zeroResultTerms, a.topN),
	}
	for t, n := range a.byType {
		stats.ByType[t] = n
	}
	if len(a.latencies) > 0 {
		sorted := make([]int64, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyUs = float64(sum) / float64(len(sorted))
		stats.P50LatencyUs = percentile(sorted, 50)
		stats.P95LatencyUs = percentile(sorted, 95)
		stats.P99LatencyUs = percentile(sorted, 99)
	}
	if !a.lastEvent.IsZero() {
		last := a.lastEvent
		stats.LastEventAt = &last
	}
	if elapsed := time.Since(a.startTime).Minutes(); elapsed > 0 {
		stats.EventsPerMinute = float64(a.total) / elapsed
	}
	return stats
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// topN orders by count descending, then term ascending.
func topN(counts map[string]int64, n int) []TermCount {
	result := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		result = append(result, TermCount{Term: term, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Term < result[j].Term
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
