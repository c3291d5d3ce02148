package models

import "github.com/mmynk/settleup/internal/money"

// ParticipantID identifies a participant within a session.
type ParticipantID = string

// MeID is the reserved participant ID of the app's own user.
const MeID ParticipantID = "me"

// SplitMode selects how an expense is divided among its participants.
type SplitMode string

const (
	// SplitEqual divides the amount evenly, with the cent remainder on the first participant.
	SplitEqual SplitMode = "equal"
	// SplitCustom uses caller-supplied per-participant amounts.
	SplitCustom SplitMode = "custom"
)

// Valid reports whether m is a known split mode.
func (m SplitMode) Valid() bool {
	return m == SplitEqual || m == SplitCustom
}

// Category groups expenses for the breakdown view.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryActivities    Category = "activities"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryActivities,
	CategoryEntertainment,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryFood:          "Food & Drink",
	CategoryTransport:     "Transport",
	CategoryAccommodation: "Accommodation",
	CategoryActivities:    "Activities",
	CategoryEntertainment: "Entertainment",
	CategoryOther:         "Other",
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// NormalizeCategory maps empty or unknown categories to CategoryOther.
func NormalizeCategory(c Category) Category {
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// ExpenseSplit is one participant's share of an expense.
type ExpenseSplit struct {
	ParticipantID ParticipantID
	Amount        money.Cents
}

// Expense is a payment made by one participant on behalf of several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// SessionID is the session the expense belongs to.
	SessionID string

	// Description is the short user-entered label (e.g., "Dinner", "Taxi").
	Description string

	// Amount is the total paid. Always positive for validated input.
	Amount money.Cents

	Category Category

	// PayerID is the participant who paid the full amount.
	PayerID ParticipantID

	// ParticipantIDs is the selected membership, in input order.
	// For equal mode it determines the splits; the first entry absorbs the cent remainder.
	ParticipantIDs []ParticipantID

	SplitMode SplitMode

	// Splits is always materialized, regardless of SplitMode.
	// For validated input the amounts sum to Amount.
	Splits []ExpenseSplit

	// CreatedAt and UpdatedAt are Unix timestamps in milliseconds.
	CreatedAt int64
	UpdatedAt int64
}

// SplitTotal returns the sum of the expense's split amounts.
func (e Expense) SplitTotal() money.Cents {
	var total money.Cents
	for _, s := range e.Splits {
		total += s.Amount
	}
	return total
}
