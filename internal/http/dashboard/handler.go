package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pocketdash/pocketdash/internal/expense"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Post("/funds", h.addFunds)
	r.Post("/transactions", h.addTransaction)
	r.Patch("/goals/{id}", h.updateGoal)
	r.Patch("/user", h.updateUser)
	r.Put("/budget", h.updateBudget)
	r.Post("/reset", h.reset)
	r.Get("/storage/health", h.storageHealth)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toDashboard(h.svc.Data(), h.svc.Loading(), h.svc.Summary()))
}

type addFundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) addFunds(w http.ResponseWriter, r *http.Request) {
	var req addFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.AddFunds(r.Context(), req.Amount)

	persisted, err := splitSaveFailure(err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transactionResult{
		Transaction: toTransaction(*tx),
		Persisted:   persisted,
	})
}

type addTransactionRequest struct {
	Type        expense.Type    `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.AddTransaction(r.Context(), expense.AddTransactionParams{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	})

	persisted, err := splitSaveFailure(err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, transactionResult{
		Transaction: toTransaction(*tx),
		Persisted:   persisted,
	})
}

type updateGoalRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := h.svc.UpdateGoal(r.Context(), chi.URLParam(r, "id"), req.Amount)

	persisted, err := splitSaveFailure(err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goalResult{Goal: toGoal(*goal), Persisted: persisted})
}

type updateUserRequest struct {
	Name        *string       `json:"name,omitempty"`
	CreditScore *int          `json:"creditScore,omitempty"`
	Tier        *expense.Tier `json:"tier,omitempty"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), expense.UserUpdate{
		Name:        req.Name,
		CreditScore: req.CreditScore,
		Tier:        req.Tier,
	})

	persisted, err := splitSaveFailure(err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResult{User: toUser(*user), Persisted: persisted})
}

type updateBudgetRequest struct {
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
}

func (h *Handler) updateBudget(w http.ResponseWriter, r *http.Request) {
	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.UpdateBudget(r.Context(), req.MonthlyBudget)

	persisted, err := splitSaveFailure(err)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, budgetResult{
		MonthlyBudget: req.MonthlyBudget,
		Persisted:     persisted,
	})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	data := h.svc.ResetAll(r.Context())

	writeJSON(w, http.StatusOK, toData(data))
}

func (h *Handler) storageHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, storageHealthResponse{
		Available: h.svc.StorageAvailable(r.Context()),
	})
}

// splitSaveFailure separates "applied but not persisted" from real
// rejections: a save failure still produced a result worth returning.
func splitSaveFailure(err error) (bool, error) {
	if errors.Is(err, expense.ErrSaveFailed) {
		return false, nil
	}

	return true, err
}

func writeError(w http.ResponseWriter, err error) {
	code := "internal"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, expense.ErrInvalidAmount):
		code, status = "invalid-amount", http.StatusUnprocessableEntity
	case errors.Is(err, expense.ErrInvalidType):
		code, status = "invalid-type", http.StatusUnprocessableEntity
	case errors.Is(err, expense.ErrInvalidCategory):
		code, status = "invalid-category", http.StatusUnprocessableEntity
	case errors.Is(err, expense.ErrInvalidBudget):
		code, status = "invalid-budget", http.StatusUnprocessableEntity
	case errors.Is(err, expense.ErrUnknownGoal):
		code, status = "unknown-goal", http.StatusNotFound
	case errors.Is(err, expense.ErrNotLoaded):
		code, status = "not-loaded", http.StatusServiceUnavailable
	}

	writeJSON(w, status, errorResponse{Error: code})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
