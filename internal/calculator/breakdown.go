package calculator

import (
	"sort"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category models.Category
	Amount   money.Cents
	Percent  int // share of the session total, rounded to a whole percent
}

// SessionTotal sums the expense amounts.
func SessionTotal(expenses []models.Expense) money.Cents {
	var total money.Cents
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// CategoryTotals groups expenses by category, largest first.
// Ties keep the order in which the categories first appear. Empty or unknown
// categories are counted as CategoryOther.
func CategoryTotals(expenses []models.Expense) []CategoryTotal {
	var totals []CategoryTotal
	index := make(map[models.Category]int)

	for _, e := range expenses {
		cat := models.NormalizeCategory(e.Category)
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, CategoryTotal{Category: cat})
		}
		totals[i].Amount += e.Amount
	}

	total := SessionTotal(expenses)
	for i := range totals {
		totals[i].Percent = percentOf(totals[i].Amount, total)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount > totals[j].Amount
	})
	return totals
}

// percentOf returns part/total as a whole percent, rounding half up.
func percentOf(part, total money.Cents) int {
	if total <= 0 {
		return 0
	}
	return int((part*200 + total) / (total * 2))
}
