package orchestrators

import (
	"context"
	"database/sql"
	"testing"
	"time"

	eventStore "eventos/internal/adapters/storage/event"
	"eventos/internal/domain/event"
)

// mockEventStore implements EventStoreForOrchestrator for testing. It enforces
// access-code uniqueness the way the real store's constraint does.
type mockEventStore struct {
	events map[string]event.Event
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: make(map[string]event.Event)}
}

// GetByID implements EventStoreForOrchestrator.
func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, sql.ErrNoRows
	}
	return e, nil
}

// GetByIDForOrganizer implements EventStoreForOrchestrator. A foreign event
// reads the same as an absent one.
func (m *mockEventStore) GetByIDForOrganizer(_ context.Context, id, organizerID string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok || e.OrganizerID != organizerID {
		return event.Event{}, sql.ErrNoRows
	}
	return e, nil
}

// Save implements EventStoreForOrchestrator with the unique-code constraint.
func (m *mockEventStore) Save(_ context.Context, e event.Event) error {
	for id, existing := range m.events {
		if id != e.ID && existing.AccessCode == e.AccessCode {
			return eventStore.ErrDuplicateAccessCode
		}
	}
	m.events[e.ID] = e
	return nil
}

// Delete implements EventStoreForOrchestrator.
func (m *mockEventStore) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

func fixedCode() string { return "AAAA1111" }

// --- ExecuteCreateEvent tests ---

// TestExecuteCreateEvent_Valid tests creating an event with a generated code.
func TestExecuteCreateEvent_Valid(t *testing.T) {
	store := newMockEventStore()
	e, err := ExecuteCreateEvent(context.Background(), CreateEventInput{
		Name:     "Churrasco da firma",
		Date:     time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
		Location: "Parque Ibirapuera",
	}, Actor{AccountID: "org-001"}, CreateEventDeps{
		EventStore:         store,
		GenerateID:         fixedID,
		GenerateAccessCode: fixedCode,
		Now:                fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != "test-id-001" {
		t.Errorf("expected ID=test-id-001, got %s", e.ID)
	}
	if e.AccessCode != "AAAA1111" {
		t.Errorf("expected AccessCode=AAAA1111, got %s", e.AccessCode)
	}
	if e.OrganizerID != "org-001" {
		t.Errorf("expected OrganizerID=org-001, got %s", e.OrganizerID)
	}
	if _, ok := store.events["test-id-001"]; !ok {
		t.Error("expected event to be persisted in store")
	}
}

// TestExecuteCreateEvent_SpoofedOrganizerIgnored tests that a non-elevated
// actor cannot assign the event to someone else, whatever the form carries.
func TestExecuteCreateEvent_SpoofedOrganizerIgnored(t *testing.T) {
	store := newMockEventStore()
	e, err := ExecuteCreateEvent(context.Background(), CreateEventInput{
		Name:        "Festa",
		Date:        fixedTime,
		Location:    "Rua A",
		OrganizerID: "victim-999",
	}, Actor{AccountID: "org-001"}, CreateEventDeps{
		EventStore:         store,
		GenerateID:         fixedID,
		GenerateAccessCode: fixedCode,
		Now:                fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.OrganizerID != "org-001" {
		t.Errorf("expected organizer forced to actor org-001, got %s", e.OrganizerID)
	}
}

// TestExecuteCreateEvent_ElevatedOverridesOrganizer tests that an admin can
// create an event on another organizer's behalf.
func TestExecuteCreateEvent_ElevatedOverridesOrganizer(t *testing.T) {
	store := newMockEventStore()
	e, err := ExecuteCreateEvent(context.Background(), CreateEventInput{
		Name:        "Festa",
		Date:        fixedTime,
		Location:    "Rua A",
		OrganizerID: "org-002",
	}, Actor{AccountID: "admin-001", Elevated: true}, CreateEventDeps{
		EventStore:         store,
		GenerateID:         fixedID,
		GenerateAccessCode: fixedCode,
		Now:                fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.OrganizerID != "org-002" {
		t.Errorf("expected OrganizerID=org-002, got %s", e.OrganizerID)
	}
}

// TestExecuteCreateEvent_CollisionRetries tests that a generated-code
// collision draws a fresh code instead of failing.
func TestExecuteCreateEvent_CollisionRetries(t *testing.T) {
	store := newMockEventStore()
	store.events["existing"] = event.Event{
		ID: "existing", OrganizerID: "org-002", Name: "Outro", Date: fixedTime,
		Location: "Rua B", AccessCode: "AAAA1111",
	}

	codes := []string{"AAAA1111", "AAAA1111", "BBBB2222"}
	draw := 0
	nextCode := func() string {
		c := codes[draw]
		draw++
		return c
	}

	e, err := ExecuteCreateEvent(context.Background(), CreateEventInput{
		Name:     "Festa",
		Date:     fixedTime,
		Location: "Rua A",
	}, Actor{AccountID: "org-001"}, CreateEventDeps{
		EventStore:         store,
		GenerateID:         fixedID,
		GenerateAccessCode: nextCode,
		Now:                fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.AccessCode != "BBBB2222" {
		t.Errorf("expected retried code BBBB2222, got %s", e.AccessCode)
	}
	if draw != 3 {
		t.Errorf("expected 3 draws, got %d", draw)
	}
}

// TestExecuteCreateEvent_CollisionExhausted tests the bounded retry giving up.
func TestExecuteCreateEvent_CollisionExhausted(t *testing.T) {
	store := newMockEventStore()
	store.events["existing"] = event.Event{
		ID: "existing", OrganizerID: "org-002", Name: "Outro", Date: fixedTime,
		Location: "Rua B", AccessCode: "AAAA1111",
	}

	_, err := ExecuteCreateEvent(context.Background(), CreateEventInput{
		Name:     "Festa",
		Date:     fixedTime,
		Location: "Rua A",
	}, Actor{AccountID: "org-001"}, CreateEventDeps{
		EventStore:         store,
		GenerateID:         fixedID,
		GenerateAccessCode: func() string { return "AAAA1111" },
		Now:                fixedNow,
	})
	if err != ErrAccessCodeExhausted {
		t.Errorf("expected ErrAccessCodeExhausted, got %v", err)
	}
}

// TestExecuteCreateEvent_SuppliedCodeNormalized tests that a caller-supplied
// code is uppercased before validation and storage.
func TestExecuteCreateEvent_SuppliedCodeNormalized(t *testing.T) {
	store := newMockEventStore()
	e, err := ExecuteCreateEvent(context.Background(), CreateEventInput{
		Name:       "Festa",
		Date:       fixedTime,
		Location:   "Rua A",
		AccessCode: " abcd1234 ",
	}, Actor{AccountID: "org-001", Elevated: true}, CreateEventDeps{
		EventStore:         store,
		GenerateID:         fixedID,
		GenerateAccessCode: fixedCode,
		Now:                fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.AccessCode != "ABCD1234" {
		t.Errorf("expected ABCD1234, got %s", e.AccessCode)
	}
}

// TestExecuteCreateEvent_InvalidInput tests validation failure on empty name.
func TestExecuteCreateEvent_InvalidInput(t *testing.T) {
	store := newMockEventStore()
	_, err := ExecuteCreateEvent(context.Background(), CreateEventInput{
		Date:     fixedTime,
		Location: "Rua A",
	}, Actor{AccountID: "org-001"}, CreateEventDeps{
		EventStore:         store,
		GenerateID:         fixedID,
		GenerateAccessCode: fixedCode,
		Now:                fixedNow,
	})
	if err == nil {
		t.Error("expected error for empty name")
	}
	if len(store.events) != 0 {
		t.Error("expected nothing persisted on validation failure")
	}
}

// --- ExecuteEditEvent tests ---

func seedEvent(store *mockEventStore) {
	store.events["e1"] = event.Event{
		ID: "e1", OrganizerID: "org-001", Name: "Festa", Date: fixedTime,
		Location: "Rua A", Description: "Traga bebidas", AccessCode: "AAAA1111",
		CreatedAt: fixedTime,
	}
}

// TestExecuteEditEvent_Valid tests editing descriptive fields.
func TestExecuteEditEvent_Valid(t *testing.T) {
	store := newMockEventStore()
	seedEvent(store)

	newDate := time.Date(2026, 7, 1, 20, 0, 0, 0, time.UTC)
	e, err := ExecuteEditEvent(context.Background(), EditEventInput{
		EventID:     "e1",
		Name:        "Festa Junina",
		Date:        newDate,
		Location:    "Rua B",
		Description: "",
	}, Actor{AccountID: "org-001"}, EditEventDeps{EventStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name != "Festa Junina" || e.Location != "Rua B" || !e.Date.Equal(newDate) {
		t.Errorf("edit not applied: %+v", e)
	}
	if e.Description != "" {
		t.Errorf("expected description cleared, got %q", e.Description)
	}
	if e.AccessCode != "AAAA1111" || e.OrganizerID != "org-001" {
		t.Error("access code and organizer must be immutable")
	}
}

// TestExecuteEditEvent_ForeignEvent tests that another organizer's event
// reads as not found, not as forbidden.
func TestExecuteEditEvent_ForeignEvent(t *testing.T) {
	store := newMockEventStore()
	seedEvent(store)

	_, err := ExecuteEditEvent(context.Background(), EditEventInput{
		EventID: "e1",
		Name:    "Hijacked",
	}, Actor{AccountID: "org-002"}, EditEventDeps{EventStore: store})
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if store.events["e1"].Name != "Festa" {
		t.Error("foreign edit must not be persisted")
	}
}

// TestExecuteEditEvent_ElevatedBypassesScope tests the admin path.
func TestExecuteEditEvent_ElevatedBypassesScope(t *testing.T) {
	store := newMockEventStore()
	seedEvent(store)

	e, err := ExecuteEditEvent(context.Background(), EditEventInput{
		EventID: "e1",
		Name:    "Renamed by admin",
	}, Actor{AccountID: "admin-001", Elevated: true}, EditEventDeps{EventStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name != "Renamed by admin" {
		t.Errorf("expected admin edit applied, got %s", e.Name)
	}
}

// --- ExecuteDeleteEvent tests ---

// TestExecuteDeleteEvent_Valid tests deleting an owned event.
func TestExecuteDeleteEvent_Valid(t *testing.T) {
	store := newMockEventStore()
	seedEvent(store)

	if err := ExecuteDeleteEvent(context.Background(), "e1", Actor{AccountID: "org-001"}, DeleteEventDeps{EventStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.events["e1"]; ok {
		t.Error("expected event deleted")
	}
}

// TestExecuteDeleteEvent_ForeignEvent tests that scoping blocks the delete.
func TestExecuteDeleteEvent_ForeignEvent(t *testing.T) {
	store := newMockEventStore()
	seedEvent(store)

	err := ExecuteDeleteEvent(context.Background(), "e1", Actor{AccountID: "org-002"}, DeleteEventDeps{EventStore: store})
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if _, ok := store.events["e1"]; !ok {
		t.Error("foreign delete must not remove the event")
	}
}
