package service

import (
	"context"
	"testing"
	"time"

	"rentdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentService_AddPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("PaysDownRentalDebt", func(t *testing.T) {
		store := newMockStore()
		svc := NewPaymentService(store)

		rentalID := int64(15)
		rental := &domain.Rental{ID: 15, CustomerID: 3, TotalCost: 1000, Debt: 500}

		store.rentals.On("GetByID", ctx, rentalID).Return(rental, nil)
		store.rentals.On("Update", ctx, rental).Return(nil)
		store.customers.On("GetByID", ctx, int64(3)).Return(&domain.Customer{ID: 3}, nil)
		store.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Payment).ID = 9
			}).Return(nil)
		store.customers.On("AdjustBalance", ctx, int64(3), int64(300)).Return(nil)

		payment, err := svc.AddPayment(ctx, AddPaymentInput{
			RentalID:    &rentalID,
			Amount:      300,
			PaymentType: domain.PaymentTypeCash,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(9), payment.ID)
		assert.Equal(t, int64(3), payment.CustomerID)
		assert.Equal(t, int64(200), rental.Debt)
	})

	t.Run("OverpaymentClampsDebtAtZero", func(t *testing.T) {
		store := newMockStore()
		svc := NewPaymentService(store)

		rentalID := int64(15)
		rental := &domain.Rental{ID: 15, CustomerID: 3, TotalCost: 1000, Debt: 500}

		store.rentals.On("GetByID", ctx, rentalID).Return(rental, nil)
		store.rentals.On("Update", ctx, rental).Return(nil)
		store.customers.On("GetByID", ctx, int64(3)).Return(&domain.Customer{ID: 3}, nil)
		store.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		store.customers.On("AdjustBalance", ctx, int64(3), int64(800)).Return(nil)

		_, err := svc.AddPayment(ctx, AddPaymentInput{RentalID: &rentalID, Amount: 800})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rental.Debt)
	})

	t.Run("StandalonePaymentNeedsCustomer", func(t *testing.T) {
		store := newMockStore()
		svc := NewPaymentService(store)

		_, err := svc.AddPayment(ctx, AddPaymentInput{Amount: 100})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		store := newMockStore()
		svc := NewPaymentService(store)

		_, err := svc.AddPayment(ctx, AddPaymentInput{CustomerID: 3, Amount: 0})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestPaymentService_UpdatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleNetBalanceAdjustment", func(t *testing.T) {
		store := newMockStore()
		svc := NewPaymentService(store)

		rentalID := int64(15)
		payment := &domain.Payment{ID: 9, RentalID: &rentalID, CustomerID: 3, Amount: 300, PaymentType: domain.PaymentTypeCash, PaymentDate: time.Now()}
		rental := &domain.Rental{ID: 15, CustomerID: 3, TotalCost: 1000, Debt: 700}

		store.payments.On("GetByID", ctx, int64(9)).Return(payment, nil)
		store.payments.On("Update", ctx, payment).Return(nil)
		// amount 300 -> 500 is one +200 adjustment, not -300 then +500.
		store.customers.On("AdjustBalance", ctx, int64(3), int64(200)).Return(nil)
		store.rentals.On("GetByID", ctx, rentalID).Return(rental, nil)
		store.payments.On("SumByRental", ctx, rentalID).Return(int64(500), nil)
		store.rentals.On("Update", ctx, rental).Return(nil)

		updated, err := svc.UpdatePayment(ctx, 9, AddPaymentInput{Amount: 500})
		assert.NoError(t, err)
		assert.Equal(t, int64(500), updated.Amount)
		// debt = 1000 total - 500 paid
		assert.Equal(t, int64(500), rental.Debt)
		store.customers.AssertNumberOfCalls(t, "AdjustBalance", 1)
	})
}

func TestPaymentService_DeletePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("RestoresDebtAndBalance", func(t *testing.T) {
		store := newMockStore()
		svc := NewPaymentService(store)

		rentalID := int64(15)
		payment := &domain.Payment{ID: 9, RentalID: &rentalID, CustomerID: 3, Amount: 300}
		rental := &domain.Rental{ID: 15, CustomerID: 3, TotalCost: 1000, Debt: 700}

		store.payments.On("GetByID", ctx, int64(9)).Return(payment, nil)
		store.payments.On("Delete", ctx, int64(9)).Return(nil)
		store.customers.On("AdjustBalance", ctx, int64(3), int64(-300)).Return(nil)
		store.rentals.On("GetByID", ctx, rentalID).Return(rental, nil)
		store.payments.On("SumByRental", ctx, rentalID).Return(int64(0), nil)
		store.rentals.On("Update", ctx, rental).Return(nil)

		err := svc.DeletePayment(ctx, 9)
		assert.NoError(t, err)
		// With no payments left the full cost is owed again.
		assert.Equal(t, int64(1000), rental.Debt)
	})
}
