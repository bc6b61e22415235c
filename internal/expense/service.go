package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=storage_mock.go -package=expense

// Storage persists the aggregate between sessions.
type Storage interface {
	// Load returns the persisted dataset, or a fresh default copy when
	// nothing usable is stored. It never fails.
	Load(ctx context.Context) *Data
	// Save overwrites the persisted dataset with the full aggregate.
	Save(ctx context.Context, data *Data) error
	// Reset clears storage and returns a fresh default copy.
	Reset(ctx context.Context) *Data
	// Available reports whether storage currently accepts writes.
	Available(ctx context.Context) bool
}

// Mutation rejection causes. State is untouched whenever one of these is
// returned.
var (
	ErrNotLoaded       = errors.New("dataset not loaded")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrUnknownGoal     = errors.New("unknown goal")
	ErrInvalidBudget   = errors.New("invalid budget")
)

// ErrSaveFailed wraps a write-through failure. The in-memory mutation has
// already been applied when a mutation returns it.
var ErrSaveFailed = errors.New("write-through save failed")

// Service owns the single in-memory dataset for the session. Mutations
// are validated, applied, then written through to Storage; a failed write
// leaves the in-memory change in place.
type Service struct {
	storage Storage
	now     func() time.Time

	mu      sync.Mutex
	data    *Data
	loading bool
}

type Option func(*Service)

// WithClock overrides the wall clock used for timestamps and
// derivations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		now:     time.Now,
		loading: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Initialize performs the one-time load from storage. Further calls are
// no-ops, so the dataset is never double-seeded.
func (s *Service) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data != nil {
		return
	}

	s.data = s.storage.Load(ctx)
	s.loading = false
}

// Loading reports whether the first load has completed.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Data returns a snapshot of the current aggregate, or nil before the
// first load. The snapshot shares no mutable structure with the service.
func (s *Service) Data() *Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil
	}

	return s.data.Clone()
}

// AddFunds increases the balance and records a matching income entry.
func (s *Service) AddFunds(ctx context.Context, amount decimal.Decimal) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotLoaded
	}

	now := s.now()
	tx := Transaction{
		ID:          NewTransactionID(now),
		Type:        TypeIncome,
		Category:    "Other",
		Amount:      amount,
		Description: "Added funds",
		Date:        now,
	}

	s.data.Balance = s.data.Balance.Add(amount)
	s.data.Transactions = append([]Transaction{tx}, s.data.Transactions...)

	return &tx, s.persist(ctx)
}

// AddTransactionParams carries the caller-supplied fields of a new
// transaction; ID and date are generated.
type AddTransactionParams struct {
	Type        Type
	Category    string
	Amount      decimal.Decimal
	Description string
}

// AddTransaction prepends a new entry to the log and moves the balance by
// the signed amount. An empty description falls back to the category.
func (s *Service) AddTransaction(ctx context.Context, params AddTransactionParams) (*Transaction, error) {
	if params.Type != TypeIncome && params.Type != TypeExpense {
		return nil, ErrInvalidType
	}

	if !ValidCategory(params.Type, params.Category) {
		return nil, ErrInvalidCategory
	}

	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotLoaded
	}

	description := params.Description
	if description == "" {
		description = params.Category
	}

	now := s.now()
	tx := Transaction{
		ID:          NewTransactionID(now),
		Type:        params.Type,
		Category:    params.Category,
		Amount:      params.Amount,
		Description: description,
		Date:        now,
	}

	if params.Type == TypeIncome {
		s.data.Balance = s.data.Balance.Add(params.Amount)
	} else {
		s.data.Balance = s.data.Balance.Sub(params.Amount)
	}

	s.data.Transactions = append([]Transaction{tx}, s.data.Transactions...)

	return &tx, s.persist(ctx)
}

// UpdateGoal moves a goal's saved amount by delta, clamped to
// [0, target]. Other goals are unaffected.
func (s *Service) UpdateGoal(ctx context.Context, goalID string, delta decimal.Decimal) (*Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotLoaded
	}

	for i := range s.data.Goals {
		goal := &s.data.Goals[i]
		if goal.ID != goalID {
			continue
		}

		current := goal.Current.Add(delta)
		if current.IsNegative() {
			current = decimal.Zero
		}

		if current.GreaterThan(goal.Target) {
			current = goal.Target
		}

		goal.Current = current
		updated := *goal

		return &updated, s.persist(ctx)
	}

	return nil, ErrUnknownGoal
}

// UserUpdate carries the profile fields to merge; nil fields are left
// unchanged.
type UserUpdate struct {
	Name        *string
	CreditScore *int
	Tier        *Tier
}

// UpdateUser shallow-merges the provided fields into the profile.
func (s *Service) UpdateUser(ctx context.Context, update UserUpdate) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrNotLoaded
	}

	if update.Name != nil {
		s.data.User.Name = *update.Name
	}

	if update.CreditScore != nil {
		s.data.User.CreditScore = *update.CreditScore
	}

	if update.Tier != nil {
		s.data.User.Tier = *update.Tier
	}

	user := s.data.User

	return &user, s.persist(ctx)
}

// UpdateBudget replaces the monthly budget.
func (s *Service) UpdateBudget(ctx context.Context, budget decimal.Decimal) error {
	if budget.IsNegative() {
		return ErrInvalidBudget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrNotLoaded
	}

	s.data.MonthlyBudget = budget

	return s.persist(ctx)
}

// ResetAll discards both the session state and storage, returning a
// snapshot of the fresh defaults.
func (s *Service) ResetAll(ctx context.Context) *Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = s.storage.Reset(ctx)
	s.loading = false

	return s.data.Clone()
}

// StorageAvailable reports whether write-through persistence is working,
// so callers can warn that changes will not survive the session.
func (s *Service) StorageAvailable(ctx context.Context) bool {
	return s.storage.Available(ctx)
}

// Summary bundles every derived dashboard value at one instant.
type Summary struct {
	TotalSpendingThisMonth decimal.Decimal
	RemainingBudget        decimal.Decimal
	BudgetUsagePercent     int
	RecentTransactions     []Transaction
	NetWorthSeries         []NetWorthPoint
}

// Summary recomputes all derived values from the current state. Nothing
// is cached between calls.
func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return Summary{}
	}

	now := s.now()

	return Summary{
		TotalSpendingThisMonth: TotalSpendingThisMonth(s.data, now),
		RemainingBudget:        RemainingBudget(s.data, now),
		BudgetUsagePercent:     BudgetUsagePercent(s.data, now),
		RecentTransactions:     RecentTransactions(s.data),
		NetWorthSeries:         NetWorthSeries(s.data, now),
	}
}

// persist writes the settled state through to storage. The in-memory
// change stands even when the write fails; callers decide whether to
// surface the wrapped error.
func (s *Service) persist(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.data); err != nil {
		slog.Warn("continuing with unpersisted in-memory state", "error", err)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	return nil
}
