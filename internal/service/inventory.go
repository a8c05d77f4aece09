package service

import (
	"context"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type inventoryService struct {
	store repository.Store
}

func NewInventoryService(store repository.Store) InventoryService {
	return &inventoryService{store: store}
}

func (s *inventoryService) CheckAvailability(ctx context.Context, productID, qty int64) (bool, int64, error) {
	product, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return false, 0, err
	}
	return checkAvailability(ctx, s.store, product, qty)
}

func (s *inventoryService) Reserve(ctx context.Context, productID, qty int64) error {
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		product, err := tx.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		return reserveProduct(ctx, tx, product, qty)
	})
}

func (s *inventoryService) Release(ctx context.Context, productID, qty int64) error {
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		product, err := tx.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		return releaseProduct(ctx, tx, product, qty)
	})
}

// checkAvailability reads free stock without mutating anything. For combos the
// free count is bounded by the combo's own stock and by its bottleneck part.
func checkAvailability(ctx context.Context, store repository.Store, product *domain.Product, qty int64) (bool, int64, error) {
	free := product.Available()
	if product.Type != domain.ProductTypeCombo {
		return free >= qty, free, nil
	}

	for _, part := range product.Parts {
		partProduct, err := store.Products().GetByID(ctx, part.PartProductID)
		if err != nil {
			return false, 0, fmt.Errorf("load combo part %d: %w", part.PartProductID, err)
		}
		if part.Quantity <= 0 {
			continue
		}
		sets := partProduct.Available() / part.Quantity
		if sets < free {
			free = sets
		}
	}
	return free >= qty, free, nil
}

// reserveProduct takes qty units of a product off the shelf. A combo reserves
// each part at part.Quantity * qty; any shortfall rolls the transaction back.
func reserveProduct(ctx context.Context, store repository.Store, product *domain.Product, qty int64) error {
	if qty <= 0 {
		return domain.Validationf("reserve quantity must be > 0, got %d", qty)
	}

	ok, err := store.Products().Reserve(ctx, product.ID, qty)
	if err != nil {
		return fmt.Errorf("reserve product %d: %w", product.ID, err)
	}
	if !ok {
		current, err := store.Products().GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   current.Available(),
			Requested:   qty,
		}
	}

	if product.Type == domain.ProductTypeCombo {
		for _, part := range product.Parts {
			partProduct, err := store.Products().GetByID(ctx, part.PartProductID)
			if err != nil {
				return fmt.Errorf("load combo part %d: %w", part.PartProductID, err)
			}
			if err := reserveProduct(ctx, store, partProduct, part.Quantity*qty); err != nil {
				return err
			}
		}
	}
	return nil
}

// releaseProduct is the inverse of reserveProduct. The repository floors the
// rented counter at zero, so double releases cannot go negative.
func releaseProduct(ctx context.Context, store repository.Store, product *domain.Product, qty int64) error {
	if qty <= 0 {
		return nil
	}
	if err := store.Products().Release(ctx, product.ID, qty); err != nil {
		return fmt.Errorf("release product %d: %w", product.ID, err)
	}
	if product.Type == domain.ProductTypeCombo {
		for _, part := range product.Parts {
			partProduct, err := store.Products().GetByID(ctx, part.PartProductID)
			if err != nil {
				return fmt.Errorf("load combo part %d: %w", part.PartProductID, err)
			}
			if err := releaseProduct(ctx, store, partProduct, part.Quantity*qty); err != nil {
				return err
			}
		}
	}
	return nil
}
