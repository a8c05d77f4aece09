package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type expenseRepository struct {
	db DBTX
}

func NewExpenseRepository(db DBTX) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (description, amount, category, payment_method, spent_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.Description, e.Amount, e.Category,
		e.PaymentMethod, e.SpentOn, time.Now()).Scan(&e.ID)
}

func (r *expenseRepository) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	e := &domain.Expense{}
	query := `SELECT id, description, amount, category, payment_method, spent_on, created_on
	          FROM expenses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Description, &e.Amount,
		&e.Category, &e.PaymentMethod, &e.SpentOn, &e.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *expenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET description=$1, amount=$2, category=$3, payment_method=$4, spent_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, e.Description, e.Amount, e.Category, e.PaymentMethod, e.SpentOn, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *expenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *expenseRepository) List(ctx context.Context, category string, from, to *time.Time) ([]domain.Expense, error) {
	query := `SELECT id, description, amount, category, payment_method, spent_on, created_on FROM expenses`
	var args []any
	var conds []string
	if category != "" {
		args = append(args, category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("spent_on >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("spent_on <= $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY spent_on DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.PaymentMethod,
			&e.SpentOn, &e.CreatedOn); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
