package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"eventos/internal/application/orchestrators"
	"eventos/internal/application/projections"
	"eventos/internal/domain/event"
	"eventos/internal/domain/response"
)

// handleHome handles GET (access code form) and POST (code lookup) for /
func handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		renderTemplate(w, r, "home.html", map[string]any{})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		code := event.NormalizeAccessCode(r.FormValue("codigo"))

		ev, err := projections.QueryResolveEvent(ctx, projections.ResolveEventQuery{AccessCode: code}, projections.ResolveEventDeps{
			EventStore: stores.EventStore,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				renderTemplate(w, r, "home.html", map[string]any{
					"Error":  "Código não encontrado. Verifique e tente novamente.",
					"Codigo": code,
				})
				return
			}
			internalError(w, err)
			return
		}

		http.Redirect(w, r, "/evento/"+ev.AccessCode, http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleRespondEvent handles GET (RSVP form) and POST (submit) for /evento/{codigo}
func handleRespondEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)
	code := r.PathValue("codigo")

	if r.Method == "GET" {
		ev, err := projections.QueryResolveEvent(ctx, projections.ResolveEventQuery{AccessCode: code}, projections.ResolveEventDeps{
			EventStore: stores.EventStore,
		})
		if err != nil {
			notFoundOrInternal(w, err)
			return
		}

		if isHTML {
			renderTemplate(w, r, "responder_evento.html", map[string]any{
				"Event": ev,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"name":     ev.Name,
			"date":     ev.Date,
			"location": ev.Location,
		})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SubmitResponseInput{AccessCode: code}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.PrimaryName = strings.TrimSpace(r.FormValue("PrimaryName"))
			input.Status = r.FormValue("Status")
			input.Notes = r.FormValue("Notes")
			if v := r.FormValue("TotalPeople"); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					http.Error(w, "Invalid form submission", http.StatusBadRequest)
					return
				}
				input.TotalPeople = n
			}
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.AccessCode = code
		}

		deps := orchestrators.SubmitResponseDeps{
			EventStore:    stores.EventStore,
			ResponseStore: stores.ResponseStore,
			AccountStore:  stores.AccountStore,
			Sender:        emailSender,
			EmailFrom:     emailFromAddress,
			EmailReplyTo:  emailReplyTo,
			GenerateID:    generateID,
			Now:           timeNow,
		}
		_, err := orchestrators.ExecuteSubmitResponse(ctx, input, deps)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				notFoundOrInternal(w, err)
				return
			}
			// Validation failures re-render the form with the guest's values so
			// nothing typed is lost.
			if isValidationError(err) {
				if isHTML {
					ev, evErr := projections.QueryResolveEvent(ctx, projections.ResolveEventQuery{AccessCode: code}, projections.ResolveEventDeps{
						EventStore: stores.EventStore,
					})
					if evErr != nil {
						notFoundOrInternal(w, evErr)
						return
					}
					w.WriteHeader(http.StatusUnprocessableEntity)
					renderTemplate(w, r, "responder_evento.html", map[string]any{
						"Event": ev,
						"Error": err.Error(),
						"Form":  input,
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
			http.Redirect(w, r, "/sucesso", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleSuccess handles GET /sucesso
func handleSuccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "sucesso.html", map[string]any{})
}

// isValidationError reports whether err is a guest-input problem rather than
// an infrastructure failure.
func isValidationError(err error) bool {
	switch {
	case errors.Is(err, response.ErrEmptyPrimaryName),
		errors.Is(err, response.ErrPrimaryNameTooLong),
		errors.Is(err, response.ErrInvalidStatus),
		errors.Is(err, response.ErrTotalPeopleTooLow):
		return true
	}
	return false
}
