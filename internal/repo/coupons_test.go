package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/internal/repo"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestCouponRepo_CreateCoupon(t *testing.T) {
	coupon := entities.Coupon{
		Code:          "SAVE10",
		DiscountType:  entities.DiscountPercentage,
		DiscountValue: 10,
		Active:        true,
	}

	t.Run("OK", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := repo.NewCouponRepo(db)

		mock.ExpectExec("INSERT INTO coupons").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, r.CreateCoupon(context.Background(), coupon))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate code", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := repo.NewCouponRepo(db)

		mock.ExpectExec("INSERT INTO coupons").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "coupons_pkey"})

		err := r.CreateCoupon(context.Background(), coupon)
		assert.ErrorIs(t, err, entities.ErrCouponExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other db error passes through", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := repo.NewCouponRepo(db)

		dbError := errors.New("connection reset")
		mock.ExpectExec("INSERT INTO coupons").WillReturnError(dbError)

		err := r.CreateCoupon(context.Background(), coupon)
		assert.ErrorIs(t, err, dbError)
		assert.NotErrorIs(t, err, entities.ErrCouponExists)
	})
}
