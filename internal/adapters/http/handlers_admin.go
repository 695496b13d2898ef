package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	eventStore "eventos/internal/adapters/storage/event"
	"eventos/internal/application/orchestrators"
	"eventos/internal/application/projections"
	"eventos/internal/domain/event"
)

// handleAdminEvents handles GET /admin/eventos
// Admins see every event; organizers see their own.
func handleAdminEvents(w http.ResponseWriter, r *http.Request) {
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

	filter := eventStore.ListFilter{OrganizerID: actor.AccountID}
	if actor.Elevated {
		filter.OrganizerID = ""
	}
	events, err := stores.EventStore.List(ctx, filter)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "admin_eventos.html", map[string]any{
			"Events": events,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// handleAdminEventNew handles GET (form) and POST (create) for /admin/eventos/novo
func handleAdminEventNew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	actor, ok := actorFromSession(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "admin_evento_form.html", map[string]any{
			"Title":  "Novo evento",
			"Action": "/admin/eventos/novo",
		})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.CreateEventInput{}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			date, err := parseEventDate(r.FormValue("Date"))
			if err != nil {
				http.Error(w, "Invalid date", http.StatusBadRequest)
				return
			}
			input.Name = strings.TrimSpace(r.FormValue("Name"))
			input.Date = date
			input.Location = strings.TrimSpace(r.FormValue("Location"))
			input.Description = r.FormValue("Description")
			// Organizer override only takes effect for elevated actors; the
			// orchestrator enforces that again regardless of what arrives here.
			input.OrganizerID = r.FormValue("OrganizerID")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.CreateEventDeps{
			EventStore:         stores.EventStore,
			GenerateID:         generateID,
			GenerateAccessCode: event.GenerateAccessCode,
			Now:                timeNow,
		}
		created, err := orchestrators.ExecuteCreateEvent(ctx, input, actor, deps)
		if err != nil {
			if isEventValidationError(err) {
				if isHTML {
					w.WriteHeader(http.StatusUnprocessableEntity)
					renderTemplate(w, r, "admin_evento_form.html", map[string]any{
						"Title":  "Novo evento",
						"Action": "/admin/eventos/novo",
						"Error":  err.Error(),
						"Form":   input,
					})
					return
				}
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			internalError(w, err)
			return
		}

		if isHTML {
			http.Redirect(w, r, "/dashboard/evento/"+created.ID, http.StatusSeeOther)
		} else {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(created)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminEventEdit handles GET (form) and POST (update) for /admin/eventos/{id}
func handleAdminEventEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)
	eventID := r.PathValue("id")

	actor, ok := actorFromSession(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		detail, err := projections.QueryGetEventDetail(ctx, projections.GetEventDetailQuery{
			EventID:     eventID,
			OrganizerID: actor.AccountID,
			Elevated:    actor.Elevated,
		}, projections.GetEventDetailDeps{
			EventStore:    stores.EventStore,
			ResponseStore: stores.ResponseStore,
		})
		if err != nil {
			notFoundOrInternal(w, err)
			return
		}
		renderTemplate(w, r, "admin_evento_form.html", map[string]any{
			"Title":  "Editar evento",
			"Action": "/admin/eventos/" + eventID,
			"Event":  detail.Event,
		})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.EditEventInput{EventID: eventID}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			date, err := parseEventDate(r.FormValue("Date"))
			if err != nil {
				http.Error(w, "Invalid date", http.StatusBadRequest)
				return
			}
			input.Name = strings.TrimSpace(r.FormValue("Name"))
			input.Date = date
			input.Location = strings.TrimSpace(r.FormValue("Location"))
			input.Description = r.FormValue("Description")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.EventID = eventID
		}

		edited, err := orchestrators.ExecuteEditEvent(ctx, input, actor, orchestrators.EditEventDeps{
			EventStore: stores.EventStore,
		})
		if err != nil {
			if isEventValidationError(err) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			notFoundOrInternal(w, err)
			return
		}

		if isHTML {
			http.Redirect(w, r, "/dashboard/evento/"+edited.ID, http.StatusSeeOther)
		} else {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(edited)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminEventDelete handles POST /admin/eventos/{id}/excluir
func handleAdminEventDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	actor, ok := actorFromSession(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	err := orchestrators.ExecuteDeleteEvent(ctx, r.PathValue("id"), actor, orchestrators.DeleteEventDeps{
		EventStore: stores.EventStore,
	})
	if err != nil {
		notFoundOrInternal(w, err)
		return
	}

	if isHTML {
		http.Redirect(w, r, "/admin/eventos", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminEventResponses handles GET /admin/eventos/{id}/respostas
// Responses are read-only here: they can be inspected but never edited or
// deleted individually.
func handleAdminEventResponses(w http.ResponseWriter, r *http.Request) {
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

	result, err := projections.QueryGetEventDetail(ctx, projections.GetEventDetailQuery{
		EventID:     r.PathValue("id"),
		OrganizerID: actor.AccountID,
		Elevated:    actor.Elevated,
	}, projections.GetEventDetailDeps{
		EventStore:    stores.EventStore,
		ResponseStore: stores.ResponseStore,
	})
	if err != nil {
		notFoundOrInternal(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "admin_respostas.html", map[string]any{
			"Event":     result.Event,
			"Responses": result.Responses,
			"Summary":   result.Summary,
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result.Responses)
}

// isEventValidationError reports whether err is an organizer-input problem.
// A collision on a caller-supplied access code belongs here too: the form can
// be resubmitted with a different code.
func isEventValidationError(err error) bool {
	switch {
	case errors.Is(err, event.ErrEmptyName),
		errors.Is(err, event.ErrNameTooLong),
		errors.Is(err, event.ErrEmptyLocation),
		errors.Is(err, event.ErrLocationTooLong),
		errors.Is(err, event.ErrZeroDate),
		errors.Is(err, event.ErrInvalidAccessCode),
		errors.Is(err, eventStore.ErrDuplicateAccessCode):
		return true
	}
	return false
}
