package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type ExpenseHandler struct {
	expenses service.ExpenseService
}

func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var expense domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.expenses.CreateExpense(r.Context(), &expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	expense, err := h.expenses.GetExpense(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

// List filters by optional category, from and to query parameters; dates use
// the 2006-01-02 layout.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}

	expenses, err := h.expenses.ListExpenses(r.Context(), category, from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var expense domain.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	expense.ID = id
	if err := h.expenses.UpdateExpense(r.Context(), &expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.expenses.DeleteExpense(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func queryDate(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		badRequest(w, "invalid "+name+" date, expected YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}
