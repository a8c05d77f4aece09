package service

import (
	"context"
	"testing"

	"rentdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInventoryService_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("ComboReservesParts", func(t *testing.T) {
		store := newMockStore()
		svc := NewInventoryService(store)

		combo := &domain.Product{
			ID: 5, Name: "Scaffold set", Type: domain.ProductTypeCombo, Quantity: 3,
			Parts: []domain.ProductPart{
				{PartProductID: 10, Quantity: 2},
				{PartProductID: 11, Quantity: 1},
			},
		}
		frame := &domain.Product{ID: 10, Name: "Frame", Type: domain.ProductTypeSingle, Quantity: 20}
		plank := &domain.Product{ID: 11, Name: "Plank", Type: domain.ProductTypeSingle, Quantity: 10}

		store.products.On("GetByID", ctx, int64(5)).Return(combo, nil)
		store.products.On("GetByID", ctx, int64(10)).Return(frame, nil)
		store.products.On("GetByID", ctx, int64(11)).Return(plank, nil)
		store.products.On("Reserve", ctx, int64(5), int64(2)).Return(true, nil)
		// 2 sets need 2*2 frames and 1*2 planks.
		store.products.On("Reserve", ctx, int64(10), int64(4)).Return(true, nil)
		store.products.On("Reserve", ctx, int64(11), int64(2)).Return(true, nil)

		err := svc.Reserve(ctx, 5, 2)
		assert.NoError(t, err)
		store.products.AssertExpectations(t)
	})

	t.Run("PartShortfallFailsWholeReserve", func(t *testing.T) {
		store := newMockStore()
		svc := NewInventoryService(store)

		combo := &domain.Product{
			ID: 5, Name: "Scaffold set", Type: domain.ProductTypeCombo, Quantity: 3,
			Parts: []domain.ProductPart{{PartProductID: 10, Quantity: 2}},
		}
		frame := &domain.Product{ID: 10, Name: "Frame", Type: domain.ProductTypeSingle, Quantity: 3, Rented: 1}

		store.products.On("GetByID", ctx, int64(5)).Return(combo, nil)
		store.products.On("GetByID", ctx, int64(10)).Return(frame, nil)
		store.products.On("Reserve", ctx, int64(5), int64(2)).Return(true, nil)
		store.products.On("Reserve", ctx, int64(10), int64(4)).Return(false, nil)

		err := svc.Reserve(ctx, 5, 2)
		var stockErr *domain.InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(10), stockErr.ProductID)
		assert.Equal(t, int64(2), stockErr.Available)
		assert.Equal(t, int64(4), stockErr.Requested)
	})
}

func TestInventoryService_CheckAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleProduct", func(t *testing.T) {
		store := newMockStore()
		svc := NewInventoryService(store)

		store.products.On("GetByID", ctx, int64(1)).
			Return(&domain.Product{ID: 1, Quantity: 5, Rented: 3, Type: domain.ProductTypeSingle}, nil)

		ok, free, err := svc.CheckAvailability(ctx, 1, 2)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(2), free)
	})

	t.Run("ComboBottleneckedByPart", func(t *testing.T) {
		store := newMockStore()
		svc := NewInventoryService(store)

		combo := &domain.Product{
			ID: 5, Type: domain.ProductTypeCombo, Quantity: 10,
			Parts: []domain.ProductPart{
				{PartProductID: 10, Quantity: 2},
				{PartProductID: 11, Quantity: 1},
			},
		}
		store.products.On("GetByID", ctx, int64(5)).Return(combo, nil)
		// 5 frames free / 2 per set = 2 sets; 9 planks / 1 = 9 sets.
		store.products.On("GetByID", ctx, int64(10)).
			Return(&domain.Product{ID: 10, Quantity: 6, Rented: 1, Type: domain.ProductTypeSingle}, nil)
		store.products.On("GetByID", ctx, int64(11)).
			Return(&domain.Product{ID: 11, Quantity: 9, Type: domain.ProductTypeSingle}, nil)

		ok, free, err := svc.CheckAvailability(ctx, 5, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(2), free)
	})

	t.Run("ComboLimitedByOwnStock", func(t *testing.T) {
		store := newMockStore()
		svc := NewInventoryService(store)

		combo := &domain.Product{
			ID: 5, Type: domain.ProductTypeCombo, Quantity: 2, Rented: 1,
			Parts: []domain.ProductPart{{PartProductID: 10, Quantity: 1}},
		}
		store.products.On("GetByID", ctx, int64(5)).Return(combo, nil)
		// Parts would allow 8 sets, but only 1 combo unit is free itself.
		store.products.On("GetByID", ctx, int64(10)).
			Return(&domain.Product{ID: 10, Quantity: 8, Type: domain.ProductTypeSingle}, nil)

		ok, free, err := svc.CheckAvailability(ctx, 5, 2)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(1), free)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		store := newMockStore()
		svc := NewInventoryService(store)

		store.products.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, _, err := svc.CheckAvailability(ctx, 99, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		store.products.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
	})
}
