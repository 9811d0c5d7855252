package middleware

import (
	"net/http"
	"time"

	"kegiatan-kampus/internal/metrics"

	"github.com/gorilla/mux"
)

// Metrics records count and latency per route template, so /kegiatan/1 and
// /kegiatan/2 share one series.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if cr := mux.CurrentRoute(r); cr != nil {
				if tpl, err := cr.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			m.ObserveRequest(route, r.Method, rec.Status(), time.Since(start))
		})
	}
}
