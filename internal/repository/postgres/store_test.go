package postgres

import (
	"context"
	"errors"
	"testing"

	"rentdesk-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStore_ExecTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("CommitsOnSuccess", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products SET rented = rented \\+ \\$2").
			WithArgs(int64(1), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.ExecTx(ctx, func(s repository.Store) error {
			ok, err := s.Products().Reserve(ctx, 1, 1)
			assert.True(t, ok)
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.ExecTx(ctx, func(s repository.Store) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NestedCallReusesTransaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE customers SET balance = balance \\+ \\$2").
			WithArgs(int64(5), int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.ExecTx(ctx, func(outer repository.Store) error {
			return outer.ExecTx(ctx, func(inner repository.Store) error {
				return inner.Customers().AdjustBalance(ctx, 5, 100)
			})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
