package calculator

import (
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// ComputeEqualSplits divides amount evenly among participantIDs at cent resolution.
//
// Algorithm:
//   - share = floor(amount / n) in cents
//   - remainder = amount - share*n, always in [0, n-1] cents
//   - the whole remainder goes to the first participant in input order
//
// The result has one split per participant, in input order, and sums to amount exactly.
// A zero amount yields all-zero splits; no participants yields an empty slice.
func ComputeEqualSplits(amount money.Cents, participantIDs []models.ParticipantID) []models.ExpenseSplit {
	n := money.Cents(len(participantIDs))
	if n == 0 {
		return []models.ExpenseSplit{}
	}

	share := floorDiv(amount, n)
	remainder := amount - share*n

	splits := make([]models.ExpenseSplit, len(participantIDs))
	for i, id := range participantIDs {
		splits[i] = models.ExpenseSplit{ParticipantID: id, Amount: share}
	}
	splits[0].Amount += remainder
	return splits
}

// MaterializeSplits returns the splits to store on an expense.
// Equal mode allocates amount across participantIDs. Custom mode keeps the supplied
// splits whose participant is selected, in their given order; the amounts are not
// checked against amount here.
func MaterializeSplits(amount money.Cents, mode models.SplitMode, participantIDs []models.ParticipantID, custom []models.ExpenseSplit) []models.ExpenseSplit {
	if mode != models.SplitCustom {
		return ComputeEqualSplits(amount, participantIDs)
	}

	selected := make(map[models.ParticipantID]bool, len(participantIDs))
	for _, id := range participantIDs {
		selected[id] = true
	}

	splits := make([]models.ExpenseSplit, 0, len(custom))
	for _, s := range custom {
		if selected[s.ParticipantID] {
			splits = append(splits, s)
		}
	}
	return splits
}

// floorDiv divides rounding toward negative infinity, so the remainder is never negative.
func floorDiv(a, n money.Cents) money.Cents {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
