package event

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccessCodeLength is the fixed length of a guest access code.
const AccessCodeLength = 8

// Max length constants for user-editable fields.
const (
	MaxNameLength     = 200
	MaxLocationLength = 300
)

// Domain errors
var (
	ErrEmptyName         = errors.New("event name cannot be empty")
	ErrNameTooLong       = errors.New("event name cannot exceed 200 characters")
	ErrEmptyLocation     = errors.New("event location cannot be empty")
	ErrLocationTooLong   = errors.New("event location cannot exceed 300 characters")
	ErrZeroDate          = errors.New("event date is required")
	ErrEmptyOrganizer    = errors.New("event organizer is required")
	ErrInvalidAccessCode = errors.New("access code must be 8 uppercase alphanumeric characters")
)

// Event represents one event guests can RSVP to.
// The access code is the token guests type in; it is stored uppercase and
// unique across all events. Description supports Markdown formatting.
type Event struct {
	ID          string
	OrganizerID string // AccountID of the owning organizer; immutable after creation
	Name        string
	Date        time.Time
	Location    string
	Description string // Markdown content, optional
	AccessCode  string
	CreatedAt   time.Time
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(e.Location) == "" {
		return ErrEmptyLocation
	}
	if len(e.Location) > MaxLocationLength {
		return ErrLocationTooLong
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if e.OrganizerID == "" {
		return ErrEmptyOrganizer
	}
	if !IsValidAccessCode(e.AccessCode) {
		return ErrInvalidAccessCode
	}
	return nil
}

// GenerateAccessCode produces an 8-character uppercase alphanumeric code from
// a random 128-bit UUID. Uniqueness is enforced by the store's constraint, not
// here; callers retry with a fresh code on conflict.
func GenerateAccessCode() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(hex[:AccessCodeLength])
}

// NormalizeAccessCode trims and uppercases a guest-supplied code so lookup is
// case-insensitive against the uppercase stored form.
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidAccessCode reports whether code is exactly 8 uppercase alphanumerics.
// INVARIANT: code is not mutated
func IsValidAccessCode(code string) bool {
	if len(code) != AccessCodeLength {
		return false
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
