package web

import (
	"encoding/json"
	"net/http"

	"eventos/internal/application/projections"
)

// handleDashboard handles GET /dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	actor, ok := actorFromSession(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	query := projections.GetDashboardQuery{
		OrganizerID: actor.AccountID,
		Elevated:    actor.Elevated,
	}
	deps := projections.GetDashboardDeps{
		EventStore:    stores.EventStore,
		ResponseStore: stores.ResponseStore,
	}

	result, err := projections.QueryGetDashboard(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "dashboard.html", map[string]any{
			"Events":                  result.Events,
			"TotalConfirmedHeadcount": result.TotalConfirmedHeadcount,
			"TotalResponses":          result.TotalResponses,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleEventDetail handles GET /dashboard/evento/{id}
func handleEventDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	actor, ok := actorFromSession(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	query := projections.GetEventDetailQuery{
		EventID:     r.PathValue("id"),
		OrganizerID: actor.AccountID,
		Elevated:    actor.Elevated,
	}
	deps := projections.GetEventDetailDeps{
		EventStore:    stores.EventStore,
		ResponseStore: stores.ResponseStore,
	}

	result, err := projections.QueryGetEventDetail(ctx, query, deps)
	if err != nil {
		notFoundOrInternal(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "detalhe_evento.html", map[string]any{
			"Event":     result.Event,
			"Responses": result.Responses,
			"Summary":   result.Summary,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
