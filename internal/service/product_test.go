package service

import (
	"context"
	"testing"

	"rentdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_SetParts(t *testing.T) {
	ctx := context.Background()

	t.Run("RecomputesComboRate", func(t *testing.T) {
		store := newMockStore()
		svc := NewProductService(store)

		combo := &domain.Product{ID: 5, Name: "Scaffold set", Type: domain.ProductTypeCombo}
		store.products.On("GetByID", ctx, int64(5)).Return(combo, nil)
		store.products.On("GetByID", ctx, int64(10)).
			Return(&domain.Product{ID: 10, DailyRate: 20, Type: domain.ProductTypeSingle}, nil)
		store.products.On("GetByID", ctx, int64(11)).
			Return(&domain.Product{ID: 11, DailyRate: 30, Type: domain.ProductTypeSingle}, nil)
		// rate = 20*2 + 30*1 = 70
		store.products.On("SetParts", ctx, int64(5), mock.AnythingOfType("[]domain.ProductPart"), int64(70)).Return(nil)

		_, err := svc.SetParts(ctx, 5, []ProductPartInput{
			{PartProductID: 10, Quantity: 2},
			{PartProductID: 11, Quantity: 1},
		})
		assert.NoError(t, err)
		store.products.AssertExpectations(t)
	})

	t.Run("RejectsNestedCombos", func(t *testing.T) {
		store := newMockStore()
		svc := NewProductService(store)

		combo := &domain.Product{ID: 5, Type: domain.ProductTypeCombo}
		store.products.On("GetByID", ctx, int64(5)).Return(combo, nil)
		store.products.On("GetByID", ctx, int64(6)).
			Return(&domain.Product{ID: 6, Type: domain.ProductTypeCombo}, nil)

		_, err := svc.SetParts(ctx, 5, []ProductPartInput{{PartProductID: 6, Quantity: 1}})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("RejectsNonCombo", func(t *testing.T) {
		store := newMockStore()
		svc := NewProductService(store)

		store.products.On("GetByID", ctx, int64(7)).
			Return(&domain.Product{ID: 7, Type: domain.ProductTypeSingle}, nil)

		_, err := svc.SetParts(ctx, 7, []ProductPartInput{{PartProductID: 10, Quantity: 1}})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("BlockedWhileOnActiveRental", func(t *testing.T) {
		store := newMockStore()
		svc := NewProductService(store)

		store.rentals.On("CountActiveByProduct", ctx, int64(1)).Return(int64(2), nil)

		err := svc.DeleteProduct(ctx, 1)
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
		store.products.AssertNotCalled(t, "Delete", ctx, int64(1))
	})

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := NewProductService(store)

		store.rentals.On("CountActiveByProduct", ctx, int64(1)).Return(int64(0), nil)
		store.products.On("Delete", ctx, int64(1)).Return(nil)

		err := svc.DeleteProduct(ctx, 1)
		assert.NoError(t, err)
	})
}
