package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/travelmate-app/travelmate-client/errors"
)

// Activity is a single itinerary entry belonging to exactly one trip.
// Day is 1-based, relative to the trip's start date.
type Activity struct {
	ID           string          `json:"id"`
	TripID       string          `json:"trip_id,omitempty"`
	Title        string          `json:"title"`
	Time         string          `json:"time"`
	Location     string          `json:"location"`
	ActivityType string          `json:"activity_type"`
	Cost         decimal.Decimal `json:"cost"`
	Day          int             `json:"day"`
	Notes        string          `json:"notes,omitempty"`
	Order        int             `json:"order"`
}

func (a *Activity) UnmarshalJSON(data []byte) error {
	type activityAlias Activity
	aux := struct {
		*activityAlias
		AltID string `json:"_id"`
	}{activityAlias: (*activityAlias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = aux.AltID
	}
	return nil
}

// ValidateForTrip checks that the activity's day index falls inside the
// trip's itinerary range.
func (a *Activity) ValidateForTrip(trip *Trip) error {
	if a.Title == "" {
		return errors.ValidationFailed("invalid activity", "title is required")
	}
	days := trip.DurationDays()
	if a.Day < 1 || a.Day > days {
		return errors.ValidationFailed(
			"invalid activity",
			fmt.Sprintf("day %d is outside the trip range [1, %d]", a.Day, days),
		)
	}
	return nil
}
