package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Derived values are pure functions of the dataset and an explicit clock.
// They are recomputed on every read; with a bounded transaction log that
// is cheaper than tracking cache invalidation.

// netWorthMonths is the length of the trend series.
const netWorthMonths = 6

// recentLimit caps the recent-transaction slice.
const recentLimit = 10

var thousand = decimal.NewFromInt(1000)

// NetWorthPoint is one entry of the trend series: the cumulative balance
// at the end of a month, in thousands of currency units.
type NetWorthPoint struct {
	Month string `json:"month"`
	Value int64  `json:"value"`
}

// TotalSpendingThisMonth sums expense amounts dated in the calendar month
// of now.
func TotalSpendingThisMonth(data *Data, now time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range data.Transactions {
		if tx.Type != TypeExpense {
			continue
		}

		if !sameMonth(tx.Date.In(now.Location()), now) {
			continue
		}

		total = total.Add(tx.Amount)
	}

	return total
}

// RemainingBudget is the budget left for the month of now, floored at 0.
func RemainingBudget(data *Data, now time.Time) decimal.Decimal {
	remaining := data.MonthlyBudget.Sub(TotalSpendingThisMonth(data, now))
	if remaining.IsNegative() {
		return decimal.Zero
	}

	return remaining
}

// BudgetUsagePercent is this month's spending as a rounded percentage of
// the budget, capped at 100. A zero budget reads as 0% used.
func BudgetUsagePercent(data *Data, now time.Time) int {
	if data.MonthlyBudget.IsZero() {
		return 0
	}

	percent := TotalSpendingThisMonth(data, now).
		Mul(decimal.NewFromInt(100)).
		Div(data.MonthlyBudget).
		Round(0).
		IntPart()

	if percent > 100 {
		return 100
	}

	return int(percent)
}

// RecentTransactions returns the newest entries of the log, at most 10,
// in stored order.
func RecentTransactions(data *Data) []Transaction {
	n := len(data.Transactions)
	if n > recentLimit {
		n = recentLimit
	}

	recent := make([]Transaction, n)
	copy(recent, data.Transactions[:n])

	return recent
}

// NetWorthSeries builds the cumulative trend for the 6 calendar months
// ending at the month of now, oldest first. The series is anchored so the
// final point equals the current balance, then expressed in thousands.
func NetWorthSeries(data *Data, now time.Time) []NetWorthPoint {
	type monthNet struct {
		label string
		net   decimal.Decimal
	}

	months := make([]monthNet, 0, netWorthMonths)

	for i := netWorthMonths - 1; i >= 0; i-- {
		// time.Date normalizes out-of-range months, so this walks
		// backward across year boundaries.
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())

		net := decimal.Zero

		for _, tx := range data.Transactions {
			if !sameMonth(tx.Date.In(now.Location()), start) {
				continue
			}

			if tx.Type == TypeIncome {
				net = net.Add(tx.Amount)
			} else {
				net = net.Sub(tx.Amount)
			}
		}

		months = append(months, monthNet{label: start.Format("Jan"), net: net})
	}

	cumulative := data.Balance
	for _, m := range months {
		cumulative = cumulative.Sub(m.net)
	}

	series := make([]NetWorthPoint, 0, netWorthMonths)

	for _, m := range months {
		cumulative = cumulative.Add(m.net)
		series = append(series, NetWorthPoint{
			Month: m.label,
			Value: cumulative.Div(thousand).Round(0).IntPart(),
		})
	}

	return series
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
