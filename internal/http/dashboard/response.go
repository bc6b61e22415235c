package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketdash/pocketdash/internal/expense"
)

type userResponse struct {
	Name        string       `json:"name"`
	CreditScore int          `json:"creditScore"`
	Tier        expense.Tier `json:"tier"`
}

type transactionResponse struct {
	ID          string          `json:"id"`
	Type        expense.Type    `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

type goalResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Target  decimal.Decimal `json:"target"`
	Current decimal.Decimal `json:"current"`
}

type dataResponse struct {
	User          userResponse          `json:"user"`
	Balance       decimal.Decimal       `json:"balance"`
	MonthlyBudget decimal.Decimal       `json:"monthlyBudget"`
	Transactions  []transactionResponse `json:"transactions"`
	Goals         []goalResponse        `json:"goals"`
}

// dashboardResponse is the full read surface: the aggregate (null until
// the first load completes) plus every derived value.
type dashboardResponse struct {
	Data                   *dataResponse           `json:"data"`
	Loading                bool                    `json:"loading"`
	TotalSpendingThisMonth decimal.Decimal         `json:"totalSpendingThisMonth"`
	RemainingBudget        decimal.Decimal         `json:"remainingBudget"`
	BudgetUsagePercent     int                     `json:"budgetUsagePercent"`
	RecentTransactions     []transactionResponse   `json:"recentTransactions"`
	NetWorthSeries         []expense.NetWorthPoint `json:"netWorthSeries"`
}

type transactionResult struct {
	Transaction transactionResponse `json:"transaction"`
	Persisted   bool                `json:"persisted"`
}

type goalResult struct {
	Goal      goalResponse `json:"goal"`
	Persisted bool         `json:"persisted"`
}

type userResult struct {
	User      userResponse `json:"user"`
	Persisted bool         `json:"persisted"`
}

type budgetResult struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	Persisted     bool            `json:"persisted"`
}

type storageHealthResponse struct {
	Available bool `json:"available"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toUser(user expense.User) userResponse {
	return userResponse{
		Name:        user.Name,
		CreditScore: user.CreditScore,
		Tier:        user.Tier,
	}
}

func toTransaction(tx expense.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		Category:    tx.Category,
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date,
	}
}

func toTransactionList(txs []expense.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransaction(tx)
	}

	return resp
}

func toGoal(goal expense.Goal) goalResponse {
	return goalResponse{
		ID:      goal.ID,
		Name:    goal.Name,
		Target:  goal.Target,
		Current: goal.Current,
	}
}

func toData(data *expense.Data) *dataResponse {
	if data == nil {
		return nil
	}

	goals := make([]goalResponse, len(data.Goals))
	for i, goal := range data.Goals {
		goals[i] = toGoal(goal)
	}

	return &dataResponse{
		User:          toUser(data.User),
		Balance:       data.Balance,
		MonthlyBudget: data.MonthlyBudget,
		Transactions:  toTransactionList(data.Transactions),
		Goals:         goals,
	}
}

func toDashboard(data *expense.Data, loading bool, summary expense.Summary) dashboardResponse {
	return dashboardResponse{
		Data:                   toData(data),
		Loading:                loading,
		TotalSpendingThisMonth: summary.TotalSpendingThisMonth,
		RemainingBudget:        summary.RemainingBudget,
		BudgetUsagePercent:     summary.BudgetUsagePercent,
		RecentTransactions:     toTransactionList(summary.RecentTransactions),
		NetWorthSeries:         summary.NetWorthSeries,
	}
}
