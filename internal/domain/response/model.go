package response

import (
	"errors"
	"strings"
	"time"
)

// Response statuses
const (
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

// ValidStatuses contains all valid response statuses.
var ValidStatuses = []string{StatusConfirmed, StatusDeclined}

// Max length constants for user-editable fields.
const (
	MaxPrimaryNameLength = 200
)

// Domain errors
var (
	ErrEmptyEvent         = errors.New("response must reference an event")
	ErrEmptyPrimaryName   = errors.New("guest name cannot be empty")
	ErrPrimaryNameTooLong = errors.New("guest name cannot exceed 200 characters")
	ErrInvalidStatus      = errors.New("status must be one of: confirmed, declined")
	ErrTotalPeopleTooLow  = errors.New("total people must be at least 1")
)

// Response is one guest party's RSVP against one event.
// Responses are immutable after creation: the guest surface never updates or
// deletes them, and the admin surface is read-only.
type Response struct {
	ID          string
	EventID     string
	PrimaryName string
	Status      string // confirmed, declined
	TotalPeople int
	Notes       string // optional free text
	RespondedAt time.Time
}

// Normalize enforces the headcount consistency rules before persistence.
// A declined response always carries zero people, whatever was submitted;
// a confirmed response must account for at least the guest themselves.
// PRE: Status is set
// POST: TotalPeople is consistent with Status, or an error is returned
func (r *Response) Normalize() error {
	switch r.Status {
	case StatusDeclined:
		r.TotalPeople = 0
	case StatusConfirmed:
		if r.TotalPeople < 1 {
			return ErrTotalPeopleTooLow
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

// Validate checks if the Response has valid data.
// PRE: Response struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Response) Validate() error {
	if r.EventID == "" {
		return ErrEmptyEvent
	}
	if strings.TrimSpace(r.PrimaryName) == "" {
		return ErrEmptyPrimaryName
	}
	if len(r.PrimaryName) > MaxPrimaryNameLength {
		return ErrPrimaryNameTooLong
	}
	if !isValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	if r.Status == StatusConfirmed && r.TotalPeople < 1 {
		return ErrTotalPeopleTooLow
	}
	return nil
}

// IsConfirmed returns true if the guest is attending.
// INVARIANT: Response fields are not mutated
func (r *Response) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// Summary holds the derived statistics for one event's response set.
// It is recomputed on every detail view and never persisted.
type Summary struct {
	ConfirmedHeadcount int
	ConfirmedCount     int
	DeclinedCount      int
}

// Summarize computes the summary in a single pass over the responses.
// Sums and counts are commutative, so the result is independent of order.
// PRE: none (an empty or nil slice yields the zero Summary)
// POST: ConfirmedHeadcount is the sum of TotalPeople over confirmed responses
func Summarize(responses []Response) Summary {
	var s Summary
	for _, r := range responses {
		switch r.Status {
		case StatusConfirmed:
			s.ConfirmedCount++
			s.ConfirmedHeadcount += r.TotalPeople
		case StatusDeclined:
			s.DeclinedCount++
		}
	}
	return s
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
