package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"eventos/internal/adapters/http/middleware"
	"eventos/internal/application/orchestrators"
	"eventos/internal/domain/account"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// notFoundOrInternal maps a missing row to 404 and everything else to 500.
// Owner-scope misses arrive here as sql.ErrNoRows, so a foreign event reads
// identically to an absent one.
func notFoundOrInternal(w http.ResponseWriter, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	internalError(w, err)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// actorFromSession builds the orchestrator actor from the request session.
func actorFromSession(r *http.Request) (orchestrators.Actor, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return orchestrators.Actor{}, false
	}
	return orchestrators.Actor{
		AccountID: sess.AccountID,
		Elevated:  sess.Role == account.RoleAdmin,
	}, true
}

// dateInputLayout matches the datetime-local input format in the event forms.
const dateInputLayout = "2006-01-02T15:04"

// parseEventDate accepts both the form's datetime-local value and RFC 3339
// from JSON clients.
func parseEventDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateInputLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	email := ""
	if ok {
		role = sess.Role
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"isAdmin":      func() bool { return role == account.RoleAdmin },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"formatDate": func(t time.Time) string {
			return t.Format("02/01/2006 15:04")
		},
		"dateInputValue": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(dateInputLayout)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}
