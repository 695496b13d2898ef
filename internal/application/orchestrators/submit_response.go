package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"eventos/internal/adapters/email"
	"eventos/internal/domain/account"
	"eventos/internal/domain/event"
	"eventos/internal/domain/response"
)

// EventStoreForSubmit defines the event store interface needed by SubmitResponse.
type EventStoreForSubmit interface {
	GetByAccessCode(ctx context.Context, code string) (event.Event, error)
}

// ResponseStoreForSubmit defines the response store interface needed by SubmitResponse.
type ResponseStoreForSubmit interface {
	Save(ctx context.Context, r response.Response) error
}

// AccountStoreForSubmit resolves the organizer for the notification email.
type AccountStoreForSubmit interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
}

// SubmitResponseInput carries a guest RSVP submission.
type SubmitResponseInput struct {
	AccessCode  string
	PrimaryName string
	Status      string
	TotalPeople int
	Notes       string
}

// SubmitResponseDeps holds dependencies for SubmitResponse.
// AccountStore and Sender are optional; when either is nil the organizer
// notification is skipped.
type SubmitResponseDeps struct {
	EventStore    EventStoreForSubmit
	ResponseStore ResponseStoreForSubmit
	AccountStore  AccountStoreForSubmit
	Sender        email.Sender
	EmailFrom     string
	EmailReplyTo  string
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteSubmitResponse resolves the event by access code, normalizes and
// validates the RSVP, and persists it. A declined submission has its
// headcount forced to zero; a confirmed one must bring at least one person.
// Nothing is persisted on a validation failure.
// PRE: input carries the guest-submitted form values
// POST: Response persisted with RespondedAt set; organizer notified best-effort
func ExecuteSubmitResponse(ctx context.Context, input SubmitResponseInput, deps SubmitResponseDeps) (response.Response, error) {
	ev, err := deps.EventStore.GetByAccessCode(ctx, event.NormalizeAccessCode(input.AccessCode))
	if err != nil {
		return response.Response{}, err
	}

	r := response.Response{
		ID:          deps.GenerateID(),
		EventID:     ev.ID,
		PrimaryName: input.PrimaryName,
		Status:      input.Status,
		TotalPeople: input.TotalPeople,
		Notes:       input.Notes,
		RespondedAt: deps.Now(),
	}

	if err := r.Normalize(); err != nil {
		return response.Response{}, err
	}
	if err := r.Validate(); err != nil {
		return response.Response{}, err
	}

	if err := deps.ResponseStore.Save(ctx, r); err != nil {
		return response.Response{}, err
	}

	slog.Info("rsvp_event", "event", "response_submitted", "response_id", r.ID,
		"event_id", ev.ID, "status", r.Status, "total_people", r.TotalPeople)

	notifyOrganizer(ctx, deps, ev, r)
	return r, nil
}

// notifyOrganizer emails the event owner about the new response. Failures are
// logged and dropped: the guest's submission is already committed and must
// not be blocked on delivery.
func notifyOrganizer(ctx context.Context, deps SubmitResponseDeps, ev event.Event, r response.Response) {
	if deps.Sender == nil || deps.AccountStore == nil {
		return
	}
	organizer, err := deps.AccountStore.GetByID(ctx, ev.OrganizerID)
	if err != nil {
		slog.Warn("rsvp_event", "event", "notify_skipped", "event_id", ev.ID, "error", err)
		return
	}

	subject := fmt.Sprintf("Nova resposta para %s", ev.Name)
	verb := "confirmou presença"
	detail := fmt.Sprintf("%d pessoa(s)", r.TotalPeople)
	if !r.IsConfirmed() {
		verb = "não poderá ir"
		detail = ""
	}
	// The guest name is untrusted input landing in an HTML body.
	body := fmt.Sprintf("<p><strong>%s</strong> %s. %s</p>", html.EscapeString(r.PrimaryName), verb, detail)

	if _, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{organizer.Email},
		From:    deps.EmailFrom,
		Subject: subject,
		HTML:    body,
		ReplyTo: deps.EmailReplyTo,
	}); err != nil {
		slog.Warn("rsvp_event", "event", "notify_failed", "event_id", ev.ID, "error", err)
	}
}
