package types

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/travelmate-app/travelmate-client/errors"
)

// Trip is the top-level planning unit: destination, dates, budget and the
// collections that hang off it. The backend assigns the ID.
type Trip struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Destination  string          `json:"destination"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Budget       decimal.Decimal `json:"budget"`
	OwnerID      string          `json:"owner_id,omitempty"`
	Participants []string        `json:"participants,omitempty"`
	Activities   []Activity      `json:"activities,omitempty"`
	Expenses     []Expense       `json:"expenses,omitempty"`
	PackingItems []PackingItem   `json:"packing_items,omitempty"`
}

// UnmarshalJSON normalizes server payloads that carry the identifier as
// "_id" instead of "id". All downstream code sees a single canonical ID.
func (t *Trip) UnmarshalJSON(data []byte) error {
	type tripAlias Trip
	aux := struct {
		*tripAlias
		AltID string `json:"_id"`
	}{tripAlias: (*tripAlias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.AltID
	}
	return nil
}

// Validate checks the client-side shape invariants before a trip is sent
// to the backend.
func (t *Trip) Validate() error {
	if t.Title == "" {
		return errors.ValidationFailed("invalid trip", "title is required")
	}
	if t.Destination == "" {
		return errors.ValidationFailed("invalid trip", "destination is required")
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return errors.ValidationFailed("invalid trip", "start and end dates are required")
	}
	if !t.StartDate.Before(t.EndDate) {
		return errors.ValidationFailed("invalid trip", "start date must be before end date")
	}
	return nil
}

// DurationDays returns the number of itinerary days the trip spans.
// A trip ending the day after it starts has one day.
func (t *Trip) DurationDays() int {
	if !t.StartDate.Before(t.EndDate) {
		return 0
	}
	return int(t.EndDate.Sub(t.StartDate).Hours() / 24)
}

// TripCreate carries the fields a caller provides when creating a trip.
type TripCreate struct {
	Title       string          `json:"title"`
	Destination string          `json:"destination"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Budget      decimal.Decimal `json:"budget"`
}

// Validate applies the same shape checks as Trip.Validate.
func (tc *TripCreate) Validate() error {
	t := Trip{
		Title:       tc.Title,
		Destination: tc.Destination,
		StartDate:   tc.StartDate,
		EndDate:     tc.EndDate,
	}
	return t.Validate()
}
