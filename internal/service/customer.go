package service

import (
	"context"
	"fmt"
	"log/slog"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type customerService struct {
	store repository.Store
	log   *slog.Logger
}

func NewCustomerService(store repository.Store) CustomerService {
	return &customerService{
		store: store,
		log:   logger.WithService("customer"),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Name == "" {
		return domain.Validationf("customer name is required")
	}
	if customer.Status == "" {
		customer.Status = domain.CustomerStatusOrdinary
	}
	if !domain.ValidCustomerStatus(customer.Status) {
		return domain.Validationf("unknown customer status %q", customer.Status)
	}
	return s.store.Customers().Create(ctx, customer)
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.store.Customers().GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.Name == "" {
		return domain.Validationf("customer name is required")
	}
	if !domain.ValidCustomerStatus(customer.Status) {
		return domain.Validationf("unknown customer status %q", customer.Status)
	}
	return s.store.Customers().Update(ctx, customer)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rentals, err := tx.Rentals().ListByCustomer(ctx, id)
		if err != nil {
			return err
		}
		for _, rental := range rentals {
			if rental.Status == domain.RentalStatusActive {
				return domain.Validationf("customer %d has active rental #%d", id, rental.RentalNumber)
			}
		}
		return tx.Customers().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("customer deleted", "customer_id", id)
	return nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.store.Customers().List(ctx)
}

func (s *customerService) ListCustomersByStatus(ctx context.Context, status domain.CustomerStatus) ([]domain.Customer, error) {
	if !domain.ValidCustomerStatus(status) {
		return nil, domain.Validationf("unknown customer status %q", status)
	}
	return s.store.Customers().ListByStatus(ctx, status)
}

func (s *customerService) RecomputeBalance(ctx context.Context, customerID int64) (*domain.Customer, error) {
	var customer *domain.Customer
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Customers().GetByID(ctx, customerID); err != nil {
			return fmt.Errorf("customer %d: %w", customerID, err)
		}
		paid, err := tx.Payments().SumByCustomer(ctx, customerID)
		if err != nil {
			return fmt.Errorf("sum payments: %w", err)
		}
		charged, err := tx.Rentals().SumReturnChargesByCustomer(ctx, customerID)
		if err != nil {
			return fmt.Errorf("sum return charges: %w", err)
		}
		if err := tx.Customers().SetBalance(ctx, customerID, paid-charged); err != nil {
			return fmt.Errorf("set balance: %w", err)
		}
		customer, err = tx.Customers().GetByID(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("balance recomputed", "customer_id", customerID, "balance", customer.Balance)
	return customer, nil
}
