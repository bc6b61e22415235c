package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultData returns the dataset seeded on first run. Every call builds
// an independent copy, so callers may mutate the result freely.
func DefaultData() *Data {
	return &Data{
		User: User{
			Name:        "Fenil",
			CreditScore: 780,
			Tier:        TierPro,
		},

		Balance:       dec("24500.00"),
		MonthlyBudget: dec("3300.00"),

		Transactions: []Transaction{
			{
				ID:          "tx-001",
				Type:        TypeIncome,
				Category:    "Salary",
				Amount:      dec("5500.00"),
				Description: "Monthly Salary",
				Date:        time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC),
			},
			{
				ID:          "tx-002",
				Type:        TypeExpense,
				Category:    "Food",
				Amount:      dec("450.00"),
				Description: "Groceries",
				Date:        time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC),
			},
			{
				ID:          "tx-003",
				Type:        TypeExpense,
				Category:    "Transport",
				Amount:      dec("120.00"),
				Description: "Uber rides",
				Date:        time.Date(2026, time.January, 8, 18, 0, 0, 0, time.UTC),
			},
			{
				ID:          "tx-004",
				Type:        TypeExpense,
				Category:    "Entertainment",
				Amount:      dec("85.00"),
				Description: "Netflix & Spotify",
				Date:        time.Date(2026, time.January, 10, 10, 0, 0, 0, time.UTC),
			},
			{
				ID:          "tx-005",
				Type:        TypeExpense,
				Category:    "Shopping",
				Amount:      dec("320.00"),
				Description: "New headphones",
				Date:        time.Date(2026, time.January, 12, 16, 45, 0, 0, time.UTC),
			},
			{
				ID:          "tx-006",
				Type:        TypeExpense,
				Category:    "Bills",
				Amount:      dec("180.00"),
				Description: "Electricity bill",
				Date:        time.Date(2026, time.January, 15, 11, 0, 0, 0, time.UTC),
			},
			{
				ID:          "tx-007",
				Type:        TypeIncome,
				Category:    "Freelance",
				Amount:      dec("800.00"),
				Description: "Website project",
				Date:        time.Date(2026, time.January, 18, 9, 30, 0, 0, time.UTC),
			},
			{
				ID:          "tx-008",
				Type:        TypeExpense,
				Category:    "Food",
				Amount:      dec("95.00"),
				Description: "Restaurant dinner",
				Date:        time.Date(2026, time.January, 20, 20, 0, 0, 0, time.UTC),
			},
			{
				ID:          "tx-009",
				Type:        TypeExpense,
				Category:    "Health",
				Amount:      dec("200.00"),
				Description: "Gym membership",
				Date:        time.Date(2026, time.January, 22, 8, 0, 0, 0, time.UTC),
			},
		},

		Goals: []Goal{
			{ID: "goal-001", Name: "New Car", Target: dec("10000.00"), Current: dec("4500.00")},
			{ID: "goal-002", Name: "Emergency Fund", Target: dec("5000.00"), Current: dec("3200.00")},
			{ID: "goal-003", Name: "Vacation", Target: dec("2500.00"), Current: dec("800.00")},
		},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
