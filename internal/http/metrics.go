package http

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// Metrics holds plain counters exposed on /metrics.
type Metrics struct {
	Requests       atomic.Int64
	Errors         atomic.Int64
	RateLimited    atomic.Int64
	EntriesCreated atomic.Int64
	LoginFailures  atomic.Int64
	ReportsServed  atomic.Int64
	CacheHits      atomic.Int64
	CacheMisses    atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	m := s.metrics
	fmt.Fprintf(w, "http_requests_total %d\n", m.Requests.Load())
	fmt.Fprintf(w, "http_errors_total %d\n", m.Errors.Load())
	fmt.Fprintf(w, "http_rate_limited_total %d\n", m.RateLimited.Load())
	fmt.Fprintf(w, "ledger_entries_created_total %d\n", m.EntriesCreated.Load())
	fmt.Fprintf(w, "auth_login_failures_total %d\n", m.LoginFailures.Load())
	fmt.Fprintf(w, "reports_served_total %d\n", m.ReportsServed.Load())
	fmt.Fprintf(w, "snapshot_cache_hits_total %d\n", m.CacheHits.Load())
	fmt.Fprintf(w, "snapshot_cache_misses_total %d\n", m.CacheMisses.Load())
	fmt.Fprintf(w, "ratelimit_active_clients %d\n", s.limiter.ActiveClients())
}
