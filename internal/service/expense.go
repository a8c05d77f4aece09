package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type expenseService struct {
	store repository.Store
}

func NewExpenseService(store repository.Store) ExpenseService {
	return &expenseService{store: store}
}

func (s *expenseService) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	if expense.Amount <= 0 {
		return domain.Validationf("expense amount must be > 0")
	}
	if expense.Description == "" {
		return domain.Validationf("expense description is required")
	}
	if expense.SpentOn.IsZero() {
		expense.SpentOn = time.Now()
	}
	return s.store.Expenses().Create(ctx, expense)
}

func (s *expenseService) GetExpense(ctx context.Context, id int64) (*domain.Expense, error) {
	return s.store.Expenses().GetByID(ctx, id)
}

func (s *expenseService) UpdateExpense(ctx context.Context, expense *domain.Expense) error {
	if expense.Amount <= 0 {
		return domain.Validationf("expense amount must be > 0")
	}
	return s.store.Expenses().Update(ctx, expense)
}

func (s *expenseService) DeleteExpense(ctx context.Context, id int64) error {
	return s.store.Expenses().Delete(ctx, id)
}

func (s *expenseService) ListExpenses(ctx context.Context, category string, from, to *time.Time) ([]domain.Expense, error) {
	return s.store.Expenses().List(ctx, category, from, to)
}
