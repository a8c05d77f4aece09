package service

import (
	"context"
	"testing"

	"rentdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCustomerService_RecomputeBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("BalanceIsPaymentsMinusCharges", func(t *testing.T) {
		store := newMockStore()
		svc := NewCustomerService(store)

		store.customers.On("GetByID", ctx, int64(3)).
			Return(&domain.Customer{ID: 3, Name: "ACME", Balance: -250}, nil).Once()
		store.payments.On("SumByCustomer", ctx, int64(3)).Return(int64(1500), nil)
		store.rentals.On("SumReturnChargesByCustomer", ctx, int64(3)).Return(int64(1750), nil)
		store.customers.On("SetBalance", ctx, int64(3), int64(-250)).Return(nil)
		store.customers.On("GetByID", ctx, int64(3)).
			Return(&domain.Customer{ID: 3, Name: "ACME", Balance: -250}, nil)

		customer, err := svc.RecomputeBalance(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int64(-250), customer.Balance)
		store.customers.AssertCalled(t, "SetBalance", ctx, int64(3), int64(-250))
	})

	t.Run("UnknownCustomer", func(t *testing.T) {
		store := newMockStore()
		svc := NewCustomerService(store)

		store.customers.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := svc.RecomputeBalance(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToOrdinary", func(t *testing.T) {
		store := newMockStore()
		svc := NewCustomerService(store)

		customer := &domain.Customer{Name: "ACME"}
		store.customers.On("Create", ctx, customer).Return(nil)

		err := svc.CreateCustomer(ctx, customer)
		assert.NoError(t, err)
		assert.Equal(t, domain.CustomerStatusOrdinary, customer.Status)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		store := newMockStore()
		svc := NewCustomerService(store)

		err := svc.CreateCustomer(ctx, &domain.Customer{Name: "ACME", Status: "gold"})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("BlockedByActiveRental", func(t *testing.T) {
		store := newMockStore()
		svc := NewCustomerService(store)

		store.rentals.On("ListByCustomer", ctx, int64(3)).Return([]domain.Rental{
			{ID: 15, RentalNumber: 42, Status: domain.RentalStatusActive},
		}, nil)

		err := svc.DeleteCustomer(ctx, 3)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		store.customers.AssertNotCalled(t, "Delete", ctx, int64(3))
	})
}
