package types

import (
	"encoding/json"

	"github.com/travelmate-app/travelmate-client/errors"
)

// PackingItem is a single checklist entry belonging to a trip.
type PackingItem struct {
	ID       string `json:"id"`
	TripID   string `json:"trip_id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Notes    string `json:"notes,omitempty"`
	Packed   bool   `json:"packed"`
}

func (p *PackingItem) UnmarshalJSON(data []byte) error {
	type packingAlias PackingItem
	aux := struct {
		*packingAlias
		AltID string `json:"_id"`
	}{packingAlias: (*packingAlias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.AltID
	}
	return nil
}

func (p *PackingItem) Validate() error {
	if p.Name == "" {
		return errors.ValidationFailed("invalid packing item", "name is required")
	}
	if p.Category == "" {
		return errors.ValidationFailed("invalid packing item", "category is required")
	}
	return nil
}
