package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rentdesk-backend/internal/billing"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
)

type rentalService struct {
	store repository.Store
	log   *slog.Logger
}

func NewRentalService(store repository.Store) RentalService {
	return &rentalService{
		store: store,
		log:   logger.WithService("rental"),
	}
}

func (s *rentalService) CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error) {
	if input.CustomerID <= 0 {
		return nil, domain.Validationf("customer_id is required")
	}
	if len(input.Items) == 0 {
		return nil, domain.Validationf("a rental needs at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return nil, domain.Validationf("item product_id and quantity must be > 0")
		}
	}
	if input.WorkStartDate.IsZero() {
		input.WorkStartDate = time.Now()
	}
	if input.PrepaidAmount < 0 {
		return nil, domain.Validationf("prepaid_amount must be >= 0")
	}
	if input.PrepaidAmount > 0 {
		if input.PrepaidType == "" {
			input.PrepaidType = domain.PaymentTypeCash
		}
		if !domain.ValidPaymentType(input.PrepaidType) {
			return nil, domain.Validationf("unknown payment type %q", input.PrepaidType)
		}
	}

	var rentalID int64
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Customers().GetByID(ctx, input.CustomerID); err != nil {
			return fmt.Errorf("customer %d: %w", input.CustomerID, err)
		}
		if input.CarID != nil {
			if _, err := tx.Cars().GetByID(ctx, *input.CarID); err != nil {
				return fmt.Errorf("car %d: %w", *input.CarID, err)
			}
		}

		// Load and availability-check every line before touching stock, so the
		// caller sees all shortages at once instead of one per attempt.
		products := make([]*domain.Product, len(input.Items))
		var stockErrs []error
		for i, item := range input.Items {
			product, err := tx.Products().GetByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			products[i] = product

			ok, free, err := checkAvailability(ctx, tx, product, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				stockErrs = append(stockErrs, &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   free,
					Requested:   item.Quantity,
				})
			}
		}
		if len(stockErrs) > 0 {
			return errors.Join(stockErrs...)
		}

		for i, item := range input.Items {
			if err := reserveProduct(ctx, tx, products[i], item.Quantity); err != nil {
				return err
			}
		}

		number, err := tx.Rentals().NextRentalNumber(ctx)
		if err != nil {
			return fmt.Errorf("next rental number: %w", err)
		}

		borrowed := make([]domain.BorrowedItem, len(input.Items))
		for i, item := range input.Items {
			startDate := item.StartDate
			if startDate.IsZero() {
				startDate = input.WorkStartDate
			}
			borrowed[i] = domain.BorrowedItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				DailyRate: products[i].DailyRate,
				StartDate: startDate,
			}
		}

		estimate := input.TotalCost
		if estimate == 0 && !input.ExpectedEndDate.IsZero() {
			for i := range borrowed {
				cost, err := billing.EstimateItemCost(borrowed[i].StartDate,
					input.ExpectedEndDate, borrowed[i].DailyRate, borrowed[i].Quantity)
				if err != nil {
					return domain.Validationf("product %d: %s", borrowed[i].ProductID, err.Error())
				}
				estimate += cost
			}
		}

		debt := estimate - input.PrepaidAmount
		if debt < 0 {
			debt = 0
		}
		rental := &domain.Rental{
			RentalNumber:  number,
			CustomerID:    input.CustomerID,
			CarID:         input.CarID,
			BorrowedItems: borrowed,
			WorkStartDate: input.WorkStartDate,
			TotalCost:     estimate,
			Debt:          debt,
			Status:        domain.RentalStatusActive,
			Description:   input.Description,
		}
		if err := tx.Rentals().Create(ctx, rental); err != nil {
			return fmt.Errorf("create rental: %w", err)
		}
		rentalID = rental.ID

		if input.PrepaidAmount > 0 {
			payment := &domain.Payment{
				RentalID:    &rental.ID,
				CustomerID:  input.CustomerID,
				Amount:      input.PrepaidAmount,
				PaymentType: input.PrepaidType,
				PaymentDate: time.Now(),
				IsPrepaid:   true,
				Description: fmt.Sprintf("prepayment for rental #%d", number),
			}
			if err := tx.Payments().Create(ctx, payment); err != nil {
				return fmt.Errorf("create prepayment: %w", err)
			}
			if err := tx.Customers().AdjustBalance(ctx, input.CustomerID, input.PrepaidAmount); err != nil {
				return fmt.Errorf("credit customer balance: %w", err)
			}
		}

		counted := make(map[int64]bool)
		for _, item := range input.Items {
			if counted[item.ProductID] {
				continue
			}
			counted[item.ProductID] = true
			if err := tx.Products().IncrementRentalCount(ctx, item.ProductID); err != nil {
				return err
			}
		}
		if input.CarID != nil {
			if err := tx.Cars().IncrementRentalCount(ctx, *input.CarID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rental created", "rental_id", rentalID, "customer_id", input.CustomerID)
	return s.GetRental(ctx, rentalID)
}

func (s *rentalService) ReturnItems(ctx context.Context, rentalID int64, lines []ReturnLine) (*domain.Rental, int64, error) {
	if len(lines) == 0 {
		return nil, 0, domain.Validationf("a return needs at least one line")
	}
	for i := range lines {
		if lines[i].ProductID <= 0 || lines[i].Quantity <= 0 {
			return nil, 0, domain.Validationf("return line product_id and quantity must be > 0")
		}
		if lines[i].ReturnDate.IsZero() {
			lines[i].ReturnDate = time.Now()
		}
	}

	var charged int64
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rental, err := tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return fmt.Errorf("rental %d: %w", rentalID, err)
		}
		if rental.Status != domain.RentalStatusActive {
			return domain.Validationf("rental #%d is %s, only active rentals accept returns",
				rental.RentalNumber, rental.Status)
		}

		// Validate every line against outstanding quantities before anything
		// is written. Lines in this batch count against each other too.
		pending := make(map[int64]int64)
		var lineErrs []error
		for _, line := range lines {
			outstanding := rental.BorrowedQuantity(line.ProductID) -
				rental.ReturnedQuantity(line.ProductID) - pending[line.ProductID]
			if rental.BorrowedQuantity(line.ProductID) == 0 {
				lineErrs = append(lineErrs, domain.Validationf(
					"product %d was not borrowed on rental #%d", line.ProductID, rental.RentalNumber))
				continue
			}
			if line.Quantity > outstanding {
				lineErrs = append(lineErrs, &domain.OverReturnError{
					ProductID:   line.ProductID,
					Outstanding: outstanding,
					Requested:   line.Quantity,
				})
				continue
			}
			pending[line.ProductID] += line.Quantity
		}
		if len(lineErrs) > 0 {
			return errors.Join(lineErrs...)
		}

		returned := make([]domain.ReturnedItem, 0, len(lines))
		for _, line := range lines {
			borrowedLine := firstBorrowedLine(rental, line.ProductID)
			rate := borrowedLine.DailyRate
			if line.DailyRate != nil {
				rate = *line.DailyRate
			}
			days, err := billing.DaysBilled(borrowedLine.StartDate, line.ReturnDate, line.DiscountDays)
			if err != nil {
				return domain.Validationf("product %d: %s", line.ProductID, err.Error())
			}
			cost := billing.ReturnCost(days, rate, line.Quantity)
			charged += cost
			returned = append(returned, domain.ReturnedItem{
				RentalID:     rental.ID,
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				StartDate:    borrowedLine.StartDate,
				ReturnDate:   line.ReturnDate,
				DailyRate:    rate,
				DiscountDays: line.DiscountDays,
				DaysBilled:   days,
				Cost:         cost,
			})
		}

		if err := tx.Rentals().AddReturnedItems(ctx, rental.ID, returned); err != nil {
			return fmt.Errorf("record returns: %w", err)
		}
		for _, line := range lines {
			product, err := tx.Products().GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := releaseProduct(ctx, tx, product, line.Quantity); err != nil {
				return err
			}
		}

		rental.ReturnedItems = append(rental.ReturnedItems, returned...)

		// Realized charges are authoritative from the first return on; a
		// creation-time estimate only seeded the initial debt figure.
		var total int64
		for _, ri := range rental.ReturnedItems {
			total += ri.Cost
		}
		rental.TotalCost = total
		paid, err := tx.Payments().SumByRental(ctx, rental.ID)
		if err != nil {
			return fmt.Errorf("sum payments: %w", err)
		}
		rental.Debt = total - paid
		if rental.Debt < 0 {
			rental.Debt = 0
		}

		if rental.FullyReturned() {
			now := time.Now()
			rental.Status = domain.RentalStatusCompleted
			rental.EndDate = &now
		}
		if err := tx.Rentals().Update(ctx, rental); err != nil {
			return fmt.Errorf("update rental: %w", err)
		}

		// Return charges debit the customer's running balance.
		if err := tx.Customers().AdjustBalance(ctx, rental.CustomerID, -charged); err != nil {
			return fmt.Errorf("debit customer balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.log.Info("items returned", "rental_id", rentalID, "charged", charged)
	rental, err := s.GetRental(ctx, rentalID)
	if err != nil {
		return nil, 0, err
	}
	return rental, charged, nil
}

func (s *rentalService) EditRental(ctx context.Context, rentalID int64, input EditRentalInput) (*domain.Rental, error) {
	if len(input.Items) == 0 {
		return nil, domain.Validationf("a rental needs at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return nil, domain.Validationf("item product_id and quantity must be > 0")
		}
	}

	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rental, err := tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return fmt.Errorf("rental %d: %w", rentalID, err)
		}
		if rental.Status != domain.RentalStatusActive {
			return domain.Validationf("rental #%d is %s and cannot be edited",
				rental.RentalNumber, rental.Status)
		}

		// Hand all outstanding stock back first, then reserve the new lines
		// from a clean slate.
		if err := releaseOutstanding(ctx, tx, rental); err != nil {
			return err
		}

		products := make([]*domain.Product, len(input.Items))
		for i, item := range input.Items {
			product, err := tx.Products().GetByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			products[i] = product
			if err := reserveProduct(ctx, tx, product, item.Quantity); err != nil {
				return err
			}
		}

		if input.CustomerID > 0 && input.CustomerID != rental.CustomerID {
			if _, err := tx.Customers().GetByID(ctx, input.CustomerID); err != nil {
				return fmt.Errorf("customer %d: %w", input.CustomerID, err)
			}
			rental.CustomerID = input.CustomerID
		}
		if input.CarID != nil {
			if _, err := tx.Cars().GetByID(ctx, *input.CarID); err != nil {
				return fmt.Errorf("car %d: %w", *input.CarID, err)
			}
		}
		rental.CarID = input.CarID
		if !input.WorkStartDate.IsZero() {
			rental.WorkStartDate = input.WorkStartDate
		}
		rental.Description = input.Description

		borrowed := make([]domain.BorrowedItem, len(input.Items))
		for i, item := range input.Items {
			startDate := item.StartDate
			if startDate.IsZero() {
				startDate = rental.WorkStartDate
			}
			borrowed[i] = domain.BorrowedItem{
				RentalID:  rental.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				DailyRate: products[i].DailyRate,
				StartDate: startDate,
			}
		}
		if err := tx.Rentals().ReplaceBorrowedItems(ctx, rental.ID, borrowed); err != nil {
			return fmt.Errorf("replace borrowed items: %w", err)
		}

		// Realized charges stay authoritative: total is what returns have
		// accrued, debt is whatever payments have not covered.
		var total int64
		for _, ri := range rental.ReturnedItems {
			total += ri.Cost
		}
		rental.TotalCost = total
		paid, err := tx.Payments().SumByRental(ctx, rental.ID)
		if err != nil {
			return fmt.Errorf("sum payments: %w", err)
		}
		rental.Debt = total - paid
		if rental.Debt < 0 {
			rental.Debt = 0
		}
		return tx.Rentals().Update(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("rental edited", "rental_id", rentalID)
	return s.GetRental(ctx, rentalID)
}

func (s *rentalService) DeleteRental(ctx context.Context, rentalID int64) error {
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rental, err := tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return fmt.Errorf("rental %d: %w", rentalID, err)
		}
		if rental.Status == domain.RentalStatusActive {
			if err := releaseOutstanding(ctx, tx, rental); err != nil {
				return err
			}
		}
		// The customer's balance keeps its payment and charge history even
		// after the rental record goes away.
		return tx.Rentals().Delete(ctx, rental.ID)
	})
	if err != nil {
		return err
	}
	s.log.Info("rental deleted", "rental_id", rentalID)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rental, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	rentals, err := s.store.Rentals().List(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, rentals)
}

func (s *rentalService) ListRentalsByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	rentals, err := s.store.Rentals().ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, rentals)
}

func (s *rentalService) ListRentalsByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	rentals, err := s.store.Rentals().ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, rentals)
}

func (s *rentalService) ListRentalsByCar(ctx context.Context, carID int64) ([]domain.Rental, error) {
	rentals, err := s.store.Rentals().ListByCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, rentals)
}

func (s *rentalService) ListRentalsByProduct(ctx context.Context, productID int64) ([]domain.Rental, error) {
	rentals, err := s.store.Rentals().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, rentals)
}

func (s *rentalService) enrichAll(ctx context.Context, rentals []domain.Rental) ([]domain.Rental, error) {
	for i := range rentals {
		if err := s.enrich(ctx, &rentals[i]); err != nil {
			return nil, err
		}
	}
	return rentals, nil
}

// enrich fills the computed read-side fields: how long the rental has run,
// what has been paid against it and what is still owed.
func (s *rentalService) enrich(ctx context.Context, rental *domain.Rental) error {
	asOf := time.Now()
	if rental.EndDate != nil {
		asOf = *rental.EndDate
	}
	rental.RentalDays = billing.RentalDays(rental.WorkStartDate, asOf)

	paid, err := s.store.Payments().SumByRental(ctx, rental.ID)
	if err != nil {
		return fmt.Errorf("sum payments for rental %d: %w", rental.ID, err)
	}
	rental.TotalPayments = paid
	rental.RemainingAmount = rental.TotalCost - paid
	if rental.RemainingAmount < 0 {
		rental.RemainingAmount = 0
	}
	return nil
}

// firstBorrowedLine picks the earliest borrowed line for a product; its start
// date and rate snapshot drive the return charge.
func firstBorrowedLine(rental *domain.Rental, productID int64) *domain.BorrowedItem {
	for i := range rental.BorrowedItems {
		if rental.BorrowedItems[i].ProductID == productID {
			return &rental.BorrowedItems[i]
		}
	}
	return nil
}

// releaseOutstanding hands back every unit still out on the rental, combo
// parts included.
func releaseOutstanding(ctx context.Context, tx repository.Store, rental *domain.Rental) error {
	seen := make(map[int64]bool)
	for _, bi := range rental.BorrowedItems {
		if seen[bi.ProductID] {
			continue
		}
		seen[bi.ProductID] = true
		outstanding := rental.BorrowedQuantity(bi.ProductID) - rental.ReturnedQuantity(bi.ProductID)
		if outstanding <= 0 {
			continue
		}
		product, err := tx.Products().GetByID(ctx, bi.ProductID)
		if err != nil {
			return fmt.Errorf("product %d: %w", bi.ProductID, err)
		}
		if err := releaseProduct(ctx, tx, product, outstanding); err != nil {
			return err
		}
	}
	return nil
}
