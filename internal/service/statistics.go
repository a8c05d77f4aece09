package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type statisticsService struct {
	store repository.Store
}

func NewStatisticsService(store repository.Store) StatisticsService {
	return &statisticsService{store: store}
}

func (s *statisticsService) Revenue(ctx context.Context, period string) (*domain.RevenueStats, error) {
	from, to, err := periodBounds(period, time.Now())
	if err != nil {
		return nil, err
	}
	return s.store.Stats().RevenueBetween(ctx, from, to)
}

func (s *statisticsService) TopCustomers(ctx context.Context, period string, limit int) ([]domain.TopCustomer, error) {
	from, to, err := periodBounds(period, time.Now())
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return s.store.Stats().TopCustomers(ctx, from, to, limit)
}

func (s *statisticsService) MostRentedCars(ctx context.Context, limit int) ([]domain.Car, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.Stats().MostRentedCars(ctx, limit)
}

// periodBounds maps a period name to a [from, now] window: daily covers the
// current calendar day, weekly the last seven days, monthly and yearly the
// current month and year.
func periodBounds(period string, now time.Time) (time.Time, time.Time, error) {
	y, m, d := now.Date()
	switch period {
	case "daily":
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), now, nil
	case "weekly":
		return now.AddDate(0, 0, -7), now, nil
	case "monthly":
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), now, nil
	case "yearly":
		return time.Date(y, 1, 1, 0, 0, 0, 0, now.Location()), now, nil
	}
	return time.Time{}, time.Time{}, domain.Validationf("unknown period %q", period)
}
