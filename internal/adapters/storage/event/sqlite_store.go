package event

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"eventos/internal/adapters/storage"
	domain "eventos/internal/domain/event"
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

const eventColumns = `id, organizer_id, name, date, location, description, access_code, created_at`

// GetByID retrieves an event by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE id = ?`, id)
	return scanEvent(row)
}

// GetByAccessCode retrieves an event by its normalized access code.
// PRE: code has been normalized via domain.NormalizeAccessCode
// POST: Returns the entity or sql.ErrNoRows if no event carries the code
func (s *SQLiteStore) GetByAccessCode(ctx context.Context, code string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE access_code = ?`, code)
	return scanEvent(row)
}

// GetByIDForOrganizer retrieves an event only if it belongs to the organizer.
// PRE: id and organizerID are non-empty
// POST: Returns the entity, or sql.ErrNoRows on absence OR ownership mismatch
func (s *SQLiteStore) GetByIDForOrganizer(ctx context.Context, id, organizerID string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM event WHERE id = ? AND organizer_id = ?`, id, organizerID)
	return scanEvent(row)
}

// Save inserts or updates an event.
// PRE: entity has been validated; access code is uppercase
// POST: Entity is persisted, or ErrDuplicateAccessCode on a code collision
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (id, organizer_id, name, date, location, description, access_code, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   organizer_id=excluded.organizer_id, name=excluded.name, date=excluded.date,
		   location=excluded.location, description=excluded.description,
		   access_code=excluded.access_code, created_at=excluded.created_at`,
		e.ID, e.OrganizerID, e.Name, e.Date.Format(timeLayout),
		e.Location, nullableString(e.Description), e.AccessCode,
		e.CreatedAt.Format(timeLayout))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: event.access_code") {
		return ErrDuplicateAccessCode
	}
	return err
}

// Delete removes an event and its responses atomically.
// PRE: id is non-empty
// POST: The event and every response referencing it are gone, or nothing is
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM response WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns events matching the filter, newest date first.
// PRE: filter has valid parameters
// POST: Returns matching events ordered by date DESC
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM event`
	args := []any{}

	if filter.OrganizerID != "" {
		query += ` WHERE organizer_id = ?`
		args = append(args, filter.OrganizerID)
	}
	query += ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// scanEvent scans a single row into an Event.
func scanEvent(row *sql.Row) (domain.Event, error) {
	var e domain.Event
	var date, createdAt string
	var description sql.NullString

	err := row.Scan(&e.ID, &e.OrganizerID, &e.Name, &date, &e.Location,
		&description, &e.AccessCode, &createdAt)
	if err != nil {
		return domain.Event{}, err
	}

	applyScanned(&e, date, createdAt, description)
	return e, nil
}

// scanEventRow scans the current row of a result set into an Event.
func scanEventRow(rows *sql.Rows) (domain.Event, error) {
	var e domain.Event
	var date, createdAt string
	var description sql.NullString

	err := rows.Scan(&e.ID, &e.OrganizerID, &e.Name, &date, &e.Location,
		&description, &e.AccessCode, &createdAt)
	if err != nil {
		return domain.Event{}, err
	}

	applyScanned(&e, date, createdAt, description)
	return e, nil
}

// applyScanned converts raw scanned values into the Event domain fields.
func applyScanned(e *domain.Event, date, createdAt string, description sql.NullString) {
	if description.Valid {
		e.Description = description.String
	}
	e.Date = parseTime(date, "date", e.ID)
	e.CreatedAt = parseTime(createdAt, "created_at", e.ID)
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, eventID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("event: failed to parse time", "field", field, "event_id", eventID, "raw", raw, "error", err)
	}
	return t
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
