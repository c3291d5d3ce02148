package calculator

import (
	"sort"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// ComputeNetBalances folds expenses into one signed balance per participant.
//
// Algorithm:
//   - the payer is credited with the full amount
//   - each split's participant is debited by their split amount
//   - a payer who is also in the splits nets out automatically
//
// Every participant mentioned by any expense gets an entry, even when it nets to zero.
// The returned map is freshly allocated. For well-formed expenses the values sum to zero;
// a custom split that does not add up to its expense shows up as a nonzero sum here
// rather than as an error.
func ComputeNetBalances(expenses []models.Expense) map[models.ParticipantID]models.NetBalance {
	totals := make(map[models.ParticipantID]money.Cents)

	for _, expense := range expenses {
		totals[expense.PayerID] += expense.Amount
		for _, split := range expense.Splits {
			totals[split.ParticipantID] -= split.Amount
		}
	}

	balances := make(map[models.ParticipantID]models.NetBalance, len(totals))
	for id, net := range totals {
		balances[id] = models.NetBalance{ParticipantID: id, Net: net}
	}
	return balances
}

// OrderBalances lists balances in first-mention order across expenses:
// for each expense the payer first, then its split participants.
// Balances for participants no expense mentions are appended in ID order.
func OrderBalances(balances map[models.ParticipantID]models.NetBalance, expenses []models.Expense) []models.NetBalance {
	ordered := make([]models.NetBalance, 0, len(balances))
	seen := make(map[models.ParticipantID]bool, len(balances))

	add := func(id models.ParticipantID) {
		if seen[id] {
			return
		}
		if b, ok := balances[id]; ok {
			seen[id] = true
			ordered = append(ordered, b)
		}
	}

	for _, expense := range expenses {
		add(expense.PayerID)
		for _, split := range expense.Splits {
			add(split.ParticipantID)
		}
	}

	var rest []models.ParticipantID
	for id := range balances {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		add(id)
	}

	return ordered
}

// MinimizeTransactions produces a small set of payments that settles balances.
//
// Algorithm:
//   - creditors (net > 0) sorted by net descending, debtors (net < 0) most negative first;
//     both sorts are stable so ties keep their input order
//   - repeatedly pay min(creditor remaining, |debtor remaining|) from the current debtor
//     to the current creditor, advancing whichever reaches zero (both on an exact match)
//   - stop when either side runs out
//
// Zero balances never appear in a transaction. For k nonzero balances at most k-1
// transactions are emitted. If the balances do not sum to zero the residual is left
// unsettled.
func MinimizeTransactions(balances []models.NetBalance) []models.Transaction {
	type party struct {
		id        models.ParticipantID
		remaining money.Cents
	}

	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Net > 0:
			creditors = append(creditors, party{id: b.ParticipantID, remaining: b.Net})
		case b.Net < 0:
			debtors = append(debtors, party{id: b.ParticipantID, remaining: b.Net})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining < debtors[j].remaining
	})

	transactions := []models.Transaction{}
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		amount := money.Min(creditor.remaining, -debtor.remaining)
		if amount > 0 {
			transactions = append(transactions, models.Transaction{
				FromID: debtor.id,
				ToID:   creditor.id,
				Amount: amount,
			})
		}

		creditor.remaining -= amount
		debtor.remaining += amount

		if creditor.remaining <= 0 {
			ci++
		}
		if debtor.remaining >= 0 {
			di++
		}
	}

	return transactions
}

// ComputeSettlement derives balances and transactions from one expense snapshot.
// Balances are listed in first-mention order so repeated calls give identical output.
func ComputeSettlement(expenses []models.Expense) models.Settlement {
	balances := OrderBalances(ComputeNetBalances(expenses), expenses)
	return models.Settlement{
		Balances:     balances,
		Transactions: MinimizeTransactions(balances),
	}
}

// TotalNet sums balances. Zero for well-formed expenses.
func TotalNet(balances []models.NetBalance) money.Cents {
	var total money.Cents
	for _, b := range balances {
		total += b.Net
	}
	return total
}
