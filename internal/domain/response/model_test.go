package response_test

import (
	"math/rand"
	"testing"

	"eventos/internal/domain/response"
)

// TestResponse_Normalize tests headcount normalization against status.
func TestResponse_Normalize(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		people     int
		wantPeople int
		wantErr    error
	}{
		{"declined forces zero", response.StatusDeclined, 5, 0, nil},
		{"declined already zero", response.StatusDeclined, 0, 0, nil},
		{"declined negative forced to zero", response.StatusDeclined, -3, 0, nil},
		{"confirmed keeps headcount", response.StatusConfirmed, 4, 4, nil},
		{"confirmed minimum one", response.StatusConfirmed, 1, 1, nil},
		{"confirmed zero rejected", response.StatusConfirmed, 0, 0, response.ErrTotalPeopleTooLow},
		{"confirmed negative rejected", response.StatusConfirmed, -1, -1, response.ErrTotalPeopleTooLow},
		{"unknown status rejected", "maybe", 2, 2, response.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := response.Response{Status: tt.status, TotalPeople: tt.people}
			err := r.Normalize()
			if err != tt.wantErr {
				t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && r.TotalPeople != tt.wantPeople {
				t.Errorf("TotalPeople = %d, want %d", r.TotalPeople, tt.wantPeople)
			}
		})
	}
}

// TestResponse_Validate tests validation of Response.
func TestResponse_Validate(t *testing.T) {
	valid := response.Response{
		ID:          "r1",
		EventID:     "e1",
		PrimaryName: "Maria Silva",
		Status:      response.StatusConfirmed,
		TotalPeople: 2,
	}

	tests := []struct {
		name    string
		mutate  func(r *response.Response)
		wantErr error
	}{
		{"valid confirmed", func(r *response.Response) {}, nil},
		{"valid declined", func(r *response.Response) { r.Status = response.StatusDeclined; r.TotalPeople = 0 }, nil},
		{"missing event", func(r *response.Response) { r.EventID = "" }, response.ErrEmptyEvent},
		{"empty name", func(r *response.Response) { r.PrimaryName = " " }, response.ErrEmptyPrimaryName},
		{"bad status", func(r *response.Response) { r.Status = "talvez" }, response.ErrInvalidStatus},
		{"confirmed with zero people", func(r *response.Response) { r.TotalPeople = 0 }, response.ErrTotalPeopleTooLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Errorf("Response.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSummarize tests the aggregation over a known response set.
func TestSummarize(t *testing.T) {
	responses := []response.Response{
		{Status: response.StatusConfirmed, TotalPeople: 2},
		{Status: response.StatusConfirmed, TotalPeople: 3},
		{Status: response.StatusDeclined, TotalPeople: 0},
	}

	got := response.Summarize(responses)
	want := response.Summary{ConfirmedHeadcount: 5, ConfirmedCount: 2, DeclinedCount: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

// TestSummarize_Empty tests that an empty set yields zeroes, never nulls.
func TestSummarize_Empty(t *testing.T) {
	if got := response.Summarize(nil); got != (response.Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero Summary", got)
	}
	if got := response.Summarize([]response.Response{}); got != (response.Summary{}) {
		t.Errorf("Summarize(empty) = %+v, want zero Summary", got)
	}
}

// TestSummarize_OrderIndependent tests that permuting insertion order does not
// change the summary.
func TestSummarize_OrderIndependent(t *testing.T) {
	responses := []response.Response{
		{Status: response.StatusConfirmed, TotalPeople: 1},
		{Status: response.StatusConfirmed, TotalPeople: 4},
		{Status: response.StatusDeclined, TotalPeople: 0},
		{Status: response.StatusConfirmed, TotalPeople: 2},
		{Status: response.StatusDeclined, TotalPeople: 0},
	}
	want := response.Summarize(responses)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]response.Response, len(responses))
		copy(shuffled, responses)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := response.Summarize(shuffled); got != want {
			t.Fatalf("permutation %d: Summarize() = %+v, want %+v", i, got, want)
		}
	}
}
