// Package billing holds the pure rental billing arithmetic: billable days,
// return line costs, combo rate derivation and rental age. All functions are
// side-effect free so the lifecycle services can compute everything before
// touching storage.
package billing

import (
	"fmt"
	"time"

	"rentdesk-backend/internal/domain"
)

const day = 24 * time.Hour

// DayStart truncates a timestamp to the start of its calendar day in UTC.
// Billing compares day starts, so the time-of-day of a return never changes
// the charge.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBilled computes the billable days for a returned line:
// max(1, ceil((returnDate - startDate) / 1 day) - discountDays).
// A same-day return is still one billable day, and discounts can never push
// the charge below one day.
func DaysBilled(startDate, returnDate time.Time, discountDays int64) (int64, error) {
	start := DayStart(startDate)
	ret := DayStart(returnDate)
	if ret.Before(start) {
		return 0, fmt.Errorf("return date %s is before start date %s",
			ret.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if discountDays < 0 {
		return 0, fmt.Errorf("discount days must be >= 0, got %d", discountDays)
	}
	days := int64(ret.Sub(start) / day)
	days -= discountDays
	if days < 1 {
		days = 1
	}
	return days, nil
}

// ReturnCost is daysBilled * dailyRate * quantity.
func ReturnCost(daysBilled, dailyRate, quantity int64) int64 {
	return daysBilled * dailyRate * quantity
}

// ComboDailyRate derives a combo product's rate as the weighted sum of its
// parts: sum(part.dailyRate * part.quantity).
func ComboDailyRate(parts []domain.ProductPart) int64 {
	var rate int64
	for _, p := range parts {
		rate += p.DailyRate * p.Quantity
	}
	return rate
}

// RentalDays reports how many days a rental has been running, counting a
// started day as a full day.
func RentalDays(workStartDate, now time.Time) int64 {
	start := DayStart(workStartDate)
	today := DayStart(now)
	if today.Before(start) {
		return 0
	}
	days := int64(today.Sub(start)/day) + 1
	return days
}

// EstimateItemCost prices a borrowed line up front from its planned period.
// Used only for the optional caller-supplied estimate at creation time; the
// realized cost accrues at return.
func EstimateItemCost(startDate, endDate time.Time, dailyRate, quantity int64) (int64, error) {
	days, err := DaysBilled(startDate, endDate, 0)
	if err != nil {
		return 0, err
	}
	return ReturnCost(days, dailyRate, quantity), nil
}
