package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartbiz_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smartbiz_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	SheetCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartbiz_sheet_calls_total",
		Help: "Remote spreadsheet calls by operation and result.",
	}, []string{"op", "result"})

	SheetCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smartbiz_sheet_call_duration_seconds",
		Help:    "Remote spreadsheet call latency.",
		Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
	}, []string{"op"})

	// CoercedCellsTotal counts cells that failed to parse and were replaced
	// by a default value while reading a table.
	CoercedCellsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartbiz_coerced_cells_total",
		Help: "Malformed spreadsheet cells replaced by defaults.",
	}, []string{"sheet", "field"})

	AuthCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartbiz_auth_cache_lookups_total",
		Help: "Login cache lookups by result.",
	}, []string{"result"})

	EventsBroadcast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartbiz_events_broadcast_total",
		Help: "Change events pushed to websocket clients.",
	})
)
