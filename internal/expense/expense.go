package expense

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Tier represents the account tier of a user.
type Tier string

const (
	TierFree Tier = "Free"
	TierPro  Tier = "Pro"
)

// User is the profile attached to the dataset. CreditScore is advisory;
// the 300-850 range is not enforced.
type User struct {
	Name        string `json:"name"`
	CreditScore int    `json:"creditScore"`
	Tier        Tier   `json:"tier"`
}

// Transaction is a single income or expense entry. Entries are immutable
// once appended and the log is kept newest first.
type Transaction struct {
	ID          string          `json:"id"`
	Type        Type            `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Goal is a savings goal. Current always stays within [0, Target].
type Goal struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Target  decimal.Decimal `json:"target"`
	Current decimal.Decimal `json:"current"`
}

// Data is the aggregate root: everything the dashboard persists.
//
// Balance is maintained incrementally by the mutation operations rather
// than recomputed from the log, so an out-of-band edit of the log would
// desynchronize it.
type Data struct {
	User          User            `json:"user"`
	Balance       decimal.Decimal `json:"balance"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	Transactions  []Transaction   `json:"transactions"`
	Goals         []Goal          `json:"goals"`
}

// Clone returns a deep copy sharing no mutable structure with d.
func (d *Data) Clone() *Data {
	c := *d
	c.Transactions = make([]Transaction, len(d.Transactions))
	copy(c.Transactions, d.Transactions)
	c.Goals = make([]Goal, len(d.Goals))
	copy(c.Goals, d.Goals)

	return &c
}

// Categories lists the allowed categories per transaction type.
var Categories = map[Type][]string{
	TypeIncome:  {"Salary", "Freelance", "Investment", "Gift", "Other"},
	TypeExpense: {"Food", "Transport", "Shopping", "Entertainment", "Bills", "Health", "Other"},
}

// ValidCategory reports whether category is allowed for transactions of
// type t.
func ValidCategory(t Type, category string) bool {
	for _, c := range Categories[t] {
		if c == category {
			return true
		}
	}

	return false
}

// NewTransactionID builds an ID from a millisecond timestamp plus a
// random suffix. Uniqueness is probabilistic, not guaranteed.
func NewTransactionID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
