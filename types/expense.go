package types

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/travelmate-app/travelmate-client/errors"
)

// Expense represents a single spend recorded against a trip.
type Expense struct {
	ID       string          `json:"id"`
	TripID   string          `json:"trip_id,omitempty"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Notes    string          `json:"notes,omitempty"`
	Date     time.Time       `json:"date"`
}

func (e *Expense) UnmarshalJSON(data []byte) error {
	type expenseAlias Expense
	aux := struct {
		*expenseAlias
		AltID string `json:"_id"`
	}{expenseAlias: (*expenseAlias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = aux.AltID
	}
	return nil
}

func (e *Expense) Validate() error {
	if e.Title == "" {
		return errors.ValidationFailed("invalid expense", "title is required")
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.ValidationFailed("invalid expense", "amount must be greater than 0")
	}
	return nil
}

// ExpenseSummary is the aggregate view the budget screen renders: what was
// spent per category and what is left against the trip budget.
type ExpenseSummary struct {
	Budget            decimal.Decimal            `json:"budget"`
	TotalSpent        decimal.Decimal            `json:"total_spent"`
	Remaining         decimal.Decimal            `json:"remaining"`
	CategoryBreakdown map[string]decimal.Decimal `json:"category_breakdown"`
}

// NewExpenseSummary computes the aggregate locally from a trip budget and its
// expenses. Used as the fallback when the summary endpoint is unreachable.
// All figures are rounded to 2 decimal places.
func NewExpenseSummary(budget decimal.Decimal, expenses []Expense) ExpenseSummary {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		total = total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	for cat, amount := range byCategory {
		byCategory[cat] = amount.Round(2)
	}
	total = total.Round(2)
	return ExpenseSummary{
		Budget:            budget.Round(2),
		TotalSpent:        total,
		Remaining:         budget.Sub(total).Round(2),
		CategoryBreakdown: byCategory,
	}
}
