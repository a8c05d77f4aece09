package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type paymentService struct {
	store repository.Store
	log   *slog.Logger
}

func NewPaymentService(store repository.Store) PaymentService {
	return &paymentService{
		store: store,
		log:   logger.WithService("payment"),
	}
}

func (s *paymentService) AddPayment(ctx context.Context, input AddPaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, domain.Validationf("payment amount must be > 0")
	}
	if input.PaymentType == "" {
		input.PaymentType = domain.PaymentTypeCash
	}
	if !domain.ValidPaymentType(input.PaymentType) {
		return nil, domain.Validationf("unknown payment type %q", input.PaymentType)
	}
	if input.PaymentDate.IsZero() {
		input.PaymentDate = time.Now()
	}

	payment := &domain.Payment{
		RentalID:    input.RentalID,
		CustomerID:  input.CustomerID,
		Amount:      input.Amount,
		Discount:    input.Discount,
		PaymentType: input.PaymentType,
		PaymentDate: input.PaymentDate,
		Description: input.Description,
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		if input.RentalID != nil {
			rental, err := tx.Rentals().GetByID(ctx, *input.RentalID)
			if err != nil {
				return fmt.Errorf("rental %d: %w", *input.RentalID, err)
			}
			// The rental decides whose account is credited.
			payment.CustomerID = rental.CustomerID

			rental.Debt -= input.Amount
			if rental.Debt < 0 {
				// Overpayments are fine; the excess stays on the customer
				// balance as credit.
				rental.Debt = 0
			}
			if err := tx.Rentals().Update(ctx, rental); err != nil {
				return fmt.Errorf("update rental debt: %w", err)
			}
		}
		if payment.CustomerID <= 0 {
			return domain.Validationf("customer_id is required for a payment without a rental")
		}
		if _, err := tx.Customers().GetByID(ctx, payment.CustomerID); err != nil {
			return fmt.Errorf("customer %d: %w", payment.CustomerID, err)
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return tx.Customers().AdjustBalance(ctx, payment.CustomerID, input.Amount)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment added", "payment_id", payment.ID, "customer_id", payment.CustomerID, "amount", payment.Amount)
	return payment, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, id int64, input AddPaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, domain.Validationf("payment amount must be > 0")
	}
	if input.PaymentType != "" && !domain.ValidPaymentType(input.PaymentType) {
		return nil, domain.Validationf("unknown payment type %q", input.PaymentType)
	}

	var updated *domain.Payment
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		payment, err := tx.Payments().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("payment %d: %w", id, err)
		}

		delta := input.Amount - payment.Amount
		payment.Amount = input.Amount
		payment.Discount = input.Discount
		if input.PaymentType != "" {
			payment.PaymentType = input.PaymentType
		}
		if !input.PaymentDate.IsZero() {
			payment.PaymentDate = input.PaymentDate
		}
		if input.Description != "" {
			payment.Description = input.Description
		}
		if err := tx.Payments().Update(ctx, payment); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}

		// One net adjustment to the balance, never remove-then-readd.
		if delta != 0 {
			if err := tx.Customers().AdjustBalance(ctx, payment.CustomerID, delta); err != nil {
				return fmt.Errorf("adjust customer balance: %w", err)
			}
		}
		if payment.RentalID != nil {
			if err := recomputeRentalDebt(ctx, tx, *payment.RentalID); err != nil {
				return err
			}
		}
		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment updated", "payment_id", id)
	return updated, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id int64) error {
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		payment, err := tx.Payments().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("payment %d: %w", id, err)
		}
		if err := tx.Payments().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}
		if err := tx.Customers().AdjustBalance(ctx, payment.CustomerID, -payment.Amount); err != nil {
			return fmt.Errorf("adjust customer balance: %w", err)
		}
		if payment.RentalID != nil {
			return recomputeRentalDebt(ctx, tx, *payment.RentalID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("payment deleted", "payment_id", id)
	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.store.Payments().GetByID(ctx, id)
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.store.Payments().List(ctx)
}

func (s *paymentService) ListPaymentsByCustomer(ctx context.Context, customerID int64) ([]domain.Payment, error) {
	return s.store.Payments().ListByCustomer(ctx, customerID)
}

func (s *paymentService) ListPaymentsByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	return s.store.Payments().ListByRental(ctx, rentalID)
}

// recomputeRentalDebt rebuilds debt from the full payment history so edits and
// deletions cannot drift it: debt = max(0, totalCost - sum(payments)).
func recomputeRentalDebt(ctx context.Context, tx repository.Store, rentalID int64) error {
	rental, err := tx.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("rental %d: %w", rentalID, err)
	}
	paid, err := tx.Payments().SumByRental(ctx, rentalID)
	if err != nil {
		return fmt.Errorf("sum payments: %w", err)
	}
	debt := rental.TotalCost - paid
	if debt < 0 {
		debt = 0
	}
	if debt == rental.Debt {
		return nil
	}
	rental.Debt = debt
	return tx.Rentals().Update(ctx, rental)
}
