package service

import (
	"context"
	"fmt"
	"log/slog"

	"rentdesk-backend/internal/billing"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type productService struct {
	store repository.Store
	log   *slog.Logger
}

func NewProductService(store repository.Store) ProductService {
	return &productService{
		store: store,
		log:   logger.WithService("product"),
	}
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product, parts []ProductPartInput) error {
	if product.Name == "" {
		return domain.Validationf("product name is required")
	}
	if product.Quantity < 0 {
		return domain.Validationf("product quantity must be >= 0")
	}
	if product.Type == "" {
		product.Type = domain.ProductTypeSingle
	}
	if product.Type != domain.ProductTypeSingle && product.Type != domain.ProductTypeCombo {
		return domain.Validationf("unknown product type %q", product.Type)
	}
	if product.Type == domain.ProductTypeCombo && len(parts) == 0 {
		return domain.Validationf("a combo product needs at least one part")
	}
	if product.Type == domain.ProductTypeSingle && len(parts) > 0 {
		return domain.Validationf("a single product cannot have parts")
	}

	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		if product.Type == domain.ProductTypeCombo {
			resolved, err := resolveParts(ctx, tx, parts)
			if err != nil {
				return err
			}
			product.Parts = resolved
			product.DailyRate = billing.ComboDailyRate(resolved)
		}
		return tx.Products().Create(ctx, product)
	})
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.Products().GetByID(ctx, id)
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if product.Name == "" {
		return domain.Validationf("product name is required")
	}
	if product.Quantity < 0 {
		return domain.Validationf("product quantity must be >= 0")
	}
	return s.store.Products().Update(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		active, err := tx.Rentals().CountActiveByProduct(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.Validationf("product %d is on %d active rental(s)", id, active)
		}
		return tx.Products().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("product deleted", "product_id", id)
	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.Products().List(ctx)
}

func (s *productService) SetParts(ctx context.Context, productID int64, parts []ProductPartInput) (*domain.Product, error) {
	if len(parts) == 0 {
		return nil, domain.Validationf("a combo product needs at least one part")
	}

	var product *domain.Product
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		existing, err := tx.Products().GetByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("product %d: %w", productID, err)
		}
		if existing.Type != domain.ProductTypeCombo {
			return domain.Validationf("product %d is not a combo", productID)
		}

		resolved, err := resolveParts(ctx, tx, parts)
		if err != nil {
			return err
		}
		rate := billing.ComboDailyRate(resolved)
		if err := tx.Products().SetParts(ctx, productID, resolved, rate); err != nil {
			return fmt.Errorf("set parts: %w", err)
		}
		product, err = tx.Products().GetByID(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("combo parts replaced", "product_id", productID, "daily_rate", product.DailyRate)
	return product, nil
}

// resolveParts validates part references and snapshots each part's current
// daily rate into the combo definition.
func resolveParts(ctx context.Context, tx repository.Store, parts []ProductPartInput) ([]domain.ProductPart, error) {
	resolved := make([]domain.ProductPart, len(parts))
	for i, part := range parts {
		if part.Quantity <= 0 {
			return nil, domain.Validationf("part quantity must be > 0")
		}
		partProduct, err := tx.Products().GetByID(ctx, part.PartProductID)
		if err != nil {
			return nil, fmt.Errorf("part product %d: %w", part.PartProductID, err)
		}
		if partProduct.Type == domain.ProductTypeCombo {
			return nil, domain.Validationf("combo parts cannot themselves be combos (product %d)", part.PartProductID)
		}
		resolved[i] = domain.ProductPart{
			PartProductID: part.PartProductID,
			Quantity:      part.Quantity,
			DailyRate:     partProduct.DailyRate,
		}
	}
	return resolved, nil
}
