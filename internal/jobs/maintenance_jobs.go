package jobs

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
)

// ReconcileCustomerBalances recomputes every customer balance from payment and
// return-charge history and logs any drift it corrects.
func (jr *JobRunner) ReconcileCustomerBalances() {
	jr.runWithRecovery("ReconcileCustomerBalances", func() {
		ctx := context.Background()

		customers, err := jr.store.Customers().List(ctx)
		if err != nil {
			logger.Error("Failed to list customers", "error", err)
			return
		}

		drifted := 0
		for _, customer := range customers {
			recomputed, err := jr.services.Customer.RecomputeBalance(ctx, customer.ID)
			if err != nil {
				logger.Error("Failed to recompute balance",
					"customer_id", customer.ID,
					"customer_name", customer.Name,
					"error", err)
				continue
			}
			if recomputed.Balance != customer.Balance {
				drifted++
				logger.Warn("Corrected drifted customer balance",
					"customer_id", customer.ID,
					"customer_name", customer.Name,
					"stored_balance", customer.Balance,
					"recomputed_balance", recomputed.Balance)
			}
		}

		logger.Info("Balance reconciliation completed",
			"customers_checked", len(customers),
			"balances_corrected", drifted)
	})
}

// ReportStaleRentals logs active rentals older than the configured threshold
// so staff can chase missing returns.
func (jr *JobRunner) ReportStaleRentals() {
	jr.runWithRecovery("ReportStaleRentals", func() {
		ctx := context.Background()

		rentals, err := jr.store.Rentals().ListByStatus(ctx, domain.RentalStatusActive)
		if err != nil {
			logger.Error("Failed to list active rentals", "error", err)
			return
		}

		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.StaleRentalDays)
		stale := 0
		for _, rental := range rentals {
			if rental.WorkStartDate.After(cutoff) {
				continue
			}
			stale++
			logger.Warn("Stale active rental",
				"rental_id", rental.ID,
				"rental_number", rental.RentalNumber,
				"customer_id", rental.CustomerID,
				"work_start_date", rental.WorkStartDate.Format("2006-01-02"),
				"age_days", int(time.Since(rental.WorkStartDate).Hours()/24))
		}

		logger.Info("Stale rental report completed",
			"active_rentals", len(rentals),
			"stale_rentals", stale,
			"threshold_days", jr.config.Scheduler.StaleRentalDays)
	})
}

// RefreshComboRates re-snapshots part rates from the current product prices
// and recomputes every combo's derived daily rate in one transaction.
func (jr *JobRunner) RefreshComboRates() {
	jr.runWithRecovery("RefreshComboRates", func() {
		ctx := context.Background()

		tx, err := jr.db.BeginTx(ctx, nil)
		if err != nil {
			logger.Error("Failed to begin combo rate refresh", "error", err)
			return
		}
		defer tx.Rollback()

		res, err := tx.ExecContext(ctx, `
			UPDATE product_parts cp
			SET daily_rate = p.daily_rate
			FROM products p
			WHERE p.id = cp.part_product_id
			  AND cp.daily_rate <> p.daily_rate`)
		if err != nil {
			logger.Error("Failed to refresh part rate snapshots", "error", err)
			return
		}
		partsRefreshed, _ := res.RowsAffected()

		res, err = tx.ExecContext(ctx, `
			UPDATE products p
			SET daily_rate = sub.total, updated_on = now()
			FROM (
				SELECT product_id, SUM(daily_rate * quantity) AS total
				FROM product_parts
				GROUP BY product_id
			) sub
			WHERE p.id = sub.product_id
			  AND p.type = 'combo'
			  AND p.daily_rate <> sub.total`)
		if err != nil {
			logger.Error("Failed to recompute combo rates", "error", err)
			return
		}
		combosUpdated, _ := res.RowsAffected()

		if err := tx.Commit(); err != nil {
			logger.Error("Failed to commit combo rate refresh", "error", err)
			return
		}

		logger.Info("Combo rate refresh completed",
			"parts_refreshed", partsRefreshed,
			"combos_updated", combosUpdated)
	})
}
