package response

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"eventos/internal/adapters/storage"
	domain "eventos/internal/domain/response"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const responseColumns = `id, event_id, primary_name, status, total_people, notes, responded_at`

// GetByID retrieves a response by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Response, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+responseColumns+` FROM response WHERE id = ?`, id)

	var r domain.Response
	var notes sql.NullString
	var respondedAt string
	err := row.Scan(&r.ID, &r.EventID, &r.PrimaryName, &r.Status,
		&r.TotalPeople, &notes, &respondedAt)
	if err != nil {
		return domain.Response{}, err
	}
	applyScanned(&r, notes, respondedAt)
	return r, nil
}

// Save inserts a response. Responses are immutable, so there is no update arm.
// PRE: entity has been normalized and validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, r domain.Response) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO response (id, event_id, primary_name, status, total_people, notes, responded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.EventID, r.PrimaryName, r.Status, r.TotalPeople,
		nullableString(r.Notes), r.RespondedAt.Format(timeLayout))
	return err
}

// ListByEventID returns all responses for one event, newest first.
// PRE: eventID is non-empty
// POST: Returns matching responses ordered by responded_at DESC
func (s *SQLiteStore) ListByEventID(ctx context.Context, eventID string) ([]domain.Response, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+responseColumns+` FROM response WHERE event_id = ? ORDER BY responded_at DESC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []domain.Response
	for rows.Next() {
		var r domain.Response
		var notes sql.NullString
		var respondedAt string
		err := rows.Scan(&r.ID, &r.EventID, &r.PrimaryName, &r.Status,
			&r.TotalPeople, &notes, &respondedAt)
		if err != nil {
			return nil, err
		}
		applyScanned(&r, notes, respondedAt)
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// CountByEventID returns the number of responses for one event.
// PRE: eventID is non-empty
// POST: Returns the response count (0 for unknown events)
func (s *SQLiteStore) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM response WHERE event_id = ?`, eventID).Scan(&n)
	return n, err
}

// applyScanned converts raw scanned values into the Response domain fields.
func applyScanned(r *domain.Response, notes sql.NullString, respondedAt string) {
	if notes.Valid {
		r.Notes = notes.String
	}
	t, err := time.Parse(timeLayout, respondedAt)
	if err != nil {
		slog.Warn("response: failed to parse time", "field", "responded_at", "response_id", r.ID, "raw", respondedAt, "error", err)
	}
	r.RespondedAt = t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
