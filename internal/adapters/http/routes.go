package web

import (
	"net/http"

	"eventos/internal/adapters/http/middleware"
	"eventos/internal/domain/account"
)

// registerRoutes wires all application routes onto the mux.
// Handlers dispatch on method themselves, matching how the templates post back
// to the same path they were rendered from.
func registerRoutes(mux *http.ServeMux) {
	// Guest surface: no session required
	mux.HandleFunc("/{$}", handleHome)
	mux.HandleFunc("/evento/{codigo}", handleRespondEvent)
	mux.HandleFunc("/sucesso", handleSuccess)

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	// Organizer surface
	authed := middleware.RequireRole(account.RoleAdmin, account.RoleOrganizer)
	mux.Handle("/dashboard", authed(http.HandlerFunc(handleDashboard)))
	mux.Handle("/dashboard/evento/{id}", authed(http.HandlerFunc(handleEventDetail)))

	// Management surface: event CRUD, owner-scoped (admins see everything)
	mux.Handle("/admin/eventos", authed(http.HandlerFunc(handleAdminEvents)))
	mux.Handle("/admin/eventos/novo", authed(http.HandlerFunc(handleAdminEventNew)))
	mux.Handle("/admin/eventos/{id}", authed(http.HandlerFunc(handleAdminEventEdit)))
	mux.Handle("/admin/eventos/{id}/excluir", authed(http.HandlerFunc(handleAdminEventDelete)))
	mux.Handle("/admin/eventos/{id}/respostas", authed(http.HandlerFunc(handleAdminEventResponses)))

	// Perf dashboard: admin only
	mux.Handle("/admin/perf", middleware.RequireRole(account.RoleAdmin)(http.HandlerFunc(handlePerf)))
}
