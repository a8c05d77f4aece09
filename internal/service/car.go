package service

import (
	"context"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type carService struct {
	store repository.Store
}

func NewCarService(store repository.Store) CarService {
	return &carService{store: store}
}

func (s *carService) CreateCar(ctx context.Context, car *domain.Car) error {
	if car.CarNumber == "" {
		return domain.Validationf("car_number is required")
	}
	if car.Status == "" {
		car.Status = "available"
	}
	return s.store.Cars().Create(ctx, car)
}

func (s *carService) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	return s.store.Cars().GetByID(ctx, id)
}

func (s *carService) UpdateCar(ctx context.Context, car *domain.Car) error {
	if car.CarNumber == "" {
		return domain.Validationf("car_number is required")
	}
	return s.store.Cars().Update(ctx, car)
}

func (s *carService) DeleteCar(ctx context.Context, id int64) error {
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		rentals, err := tx.Rentals().ListByCar(ctx, id)
		if err != nil {
			return err
		}
		for _, rental := range rentals {
			if rental.Status == domain.RentalStatusActive {
				return domain.Validationf("car %d is on active rental #%d", id, rental.RentalNumber)
			}
		}
		return tx.Cars().Delete(ctx, id)
	})
}

func (s *carService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.store.Cars().List(ctx)
}
