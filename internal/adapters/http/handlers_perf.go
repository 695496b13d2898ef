package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// handlePerf handles GET /admin/perf
// Renders a snapshot of request and query timings from the in-memory
// collector. Query params: window (minutes, default 15), top (default 10).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusServiceUnavailable)
		return
	}

	windowMin := 15
	if v := r.URL.Query().Get("window"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			windowMin = n
		}
	}
	topN := 10
	if v := r.URL.Query().Get("top"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			topN = n
		}
	}

	snap := perfCollector.Snapshot(timeNow().Add(-time.Duration(windowMin)*time.Minute), topN)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_perf.html", map[string]any{
			"Snapshot":  snap,
			"WindowMin": windowMin,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
