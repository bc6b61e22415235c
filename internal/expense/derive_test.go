package expense_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketdash/pocketdash/internal/expense"
)

// fixedNow falls inside the month of the seed transactions.
func fixedNow() time.Time {
	return time.Date(2026, time.January, 25, 12, 0, 0, 0, time.UTC)
}

func expenseAt(date time.Time, amount string) expense.Transaction {
	return expense.Transaction{
		ID:       expense.NewTransactionID(date),
		Type:     expense.TypeExpense,
		Category: "Food",
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

func incomeAt(date time.Time, amount string) expense.Transaction {
	return expense.Transaction{
		ID:       expense.NewTransactionID(date),
		Type:     expense.TypeIncome,
		Category: "Salary",
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
}

func TestTotalSpendingThisMonth_SeedData(t *testing.T) {
	got := expense.TotalSpendingThisMonth(expense.DefaultData(), fixedNow())

	assert.True(t, got.Equal(decimal.RequireFromString("1450.00")), got.String())
}

func TestTotalSpendingThisMonth_Filters(t *testing.T) {
	now := fixedNow()
	data := &expense.Data{
		Transactions: []expense.Transaction{
			expenseAt(now.AddDate(0, 0, -1), "100"),
			incomeAt(now.AddDate(0, 0, -2), "500"),
			expenseAt(now.AddDate(0, -1, 0), "999"),
			expenseAt(now.AddDate(-1, 0, 0), "999"),
		},
	}

	got := expense.TotalSpendingThisMonth(data, now)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), got.String())
}

func TestRemainingBudget(t *testing.T) {
	type testCase struct {
		name    string
		budget  string
		expense string
		want    string
	}

	tests := []testCase{
		{name: "SeedScenario", budget: "3300.00", expense: "1450.00", want: "1850.00"},
		{name: "Overspent", budget: "100", expense: "250", want: "0"},
		{name: "Untouched", budget: "500", expense: "0", want: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := fixedNow()
			data := &expense.Data{MonthlyBudget: decimal.RequireFromString(tt.budget)}

			if tt.expense != "0" {
				data.Transactions = []expense.Transaction{expenseAt(now, tt.expense)}
			}

			got := expense.RemainingBudget(data, now)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), got.String())
		})
	}
}

func TestBudgetUsagePercent(t *testing.T) {
	type testCase struct {
		name    string
		budget  string
		expense string
		want    int
	}

	tests := []testCase{
		{name: "SeedScenario", budget: "3300.00", expense: "1450.00", want: 44},
		{name: "ZeroBudget", budget: "0", expense: "1450.00", want: 0},
		{name: "CappedAt100", budget: "100", expense: "250", want: 100},
		{name: "RoundsDown", budget: "1000", expense: "4.4", want: 0},
		{name: "RoundsUp", budget: "1000", expense: "5", want: 1},
		{name: "Exact", budget: "200", expense: "100", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := fixedNow()
			data := &expense.Data{
				MonthlyBudget: decimal.RequireFromString(tt.budget),
				Transactions:  []expense.Transaction{expenseAt(now, tt.expense)},
			}

			assert.Equal(t, tt.want, expense.BudgetUsagePercent(data, now))
		})
	}
}

func TestRecentTransactions_Limit(t *testing.T) {
	now := fixedNow()
	data := &expense.Data{}

	for i := 0; i < 12; i++ {
		tx := expenseAt(now.AddDate(0, 0, -i), "10")
		tx.Description = fmt.Sprintf("entry-%d", i)
		data.Transactions = append(data.Transactions, tx)
	}

	recent := expense.RecentTransactions(data)
	require.Len(t, recent, 10)
	assert.Equal(t, "entry-0", recent[0].Description)
	assert.Equal(t, "entry-9", recent[9].Description)
}

func TestRecentTransactions_ShortLog(t *testing.T) {
	data := expense.DefaultData()

	recent := expense.RecentTransactions(data)
	require.Len(t, recent, 9)
	assert.Equal(t, data.Transactions[0].ID, recent[0].ID)
}

func TestNetWorthSeries_SeedData(t *testing.T) {
	// Seed months: only January 2026 has activity, with net
	// 5500 + 800 - 1450 = 4850. The series is anchored so January's
	// cumulative equals the balance: 24500/1000 rounds to 25, earlier
	// months sit at (24500-4850)/1000 = 19.65, rounding to 20.
	series := expense.NetWorthSeries(expense.DefaultData(), fixedNow())

	require.Len(t, series, 6)

	wantLabels := []string{"Aug", "Sep", "Oct", "Nov", "Dec", "Jan"}
	wantValues := []int64{20, 20, 20, 20, 20, 25}

	for i, point := range series {
		assert.Equal(t, wantLabels[i], point.Month)
		assert.Equal(t, wantValues[i], point.Value)
	}
}

func TestNetWorthSeries_CrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	series := expense.NetWorthSeries(expense.DefaultData(), now)

	require.Len(t, series, 6)

	wantLabels := []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}
	for i, point := range series {
		assert.Equal(t, wantLabels[i], point.Month)
	}

	// No activity after January, so the tail stays at the balance.
	assert.Equal(t, int64(25), series[3].Value)
	assert.Equal(t, int64(25), series[4].Value)
	assert.Equal(t, int64(25), series[5].Value)
}

func TestNetWorthSeries_LastPointMatchesBalance(t *testing.T) {
	now := fixedNow()
	data := &expense.Data{
		Balance: decimal.RequireFromString("7499"),
		Transactions: []expense.Transaction{
			incomeAt(now.AddDate(0, -2, 0), "3000"),
			expenseAt(now.AddDate(0, -1, 0), "1200"),
			incomeAt(now, "500"),
		},
	}

	series := expense.NetWorthSeries(data, now)
	require.Len(t, series, 6)

	// 7499/1000 rounds half away from zero to 7.
	assert.Equal(t, int64(7), series[5].Value)
}
