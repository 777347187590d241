package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/internal/service"
	mocks "github.com/strumhaus/order-service/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCouponService_ApplyCoupon(t *testing.T) {
	pastTime := time.Now().UTC().Add(-24 * time.Hour)

	testCases := []struct {
		name         string
		code         string
		subtotal     float64
		mockBehavior func(repo *mocks.MockCouponRepo)
		want         float64
		wantErr      error
	}{
		{
			name:     "percentage coupon",
			code:     "SAVE10",
			subtotal: 1000,
			mockBehavior: func(repo *mocks.MockCouponRepo) {
				repo.On("GetByCode", mock.Anything, "SAVE10").Return(entities.Coupon{
					Code:           "SAVE10",
					DiscountType:   entities.DiscountPercentage,
					DiscountValue:  10,
					MinOrderAmount: 500,
					Active:         true,
				}, nil)
			},
			want: 100,
		},
		{
			name:     "fixed coupon clamped to subtotal",
			code:     "FLAT50",
			subtotal: 30,
			mockBehavior: func(repo *mocks.MockCouponRepo) {
				repo.On("GetByCode", mock.Anything, "FLAT50").Return(entities.Coupon{
					Code:          "FLAT50",
					DiscountType:  entities.DiscountFixedAmount,
					DiscountValue: 50,
					Active:        true,
				}, nil)
			},
			want: 30,
		},
		{
			name:     "code is normalized before lookup",
			code:     "  save10 ",
			subtotal: 1000,
			mockBehavior: func(repo *mocks.MockCouponRepo) {
				repo.On("GetByCode", mock.Anything, "SAVE10").Return(entities.Coupon{
					Code:          "SAVE10",
					DiscountType:  entities.DiscountPercentage,
					DiscountValue: 10,
					Active:        true,
				}, nil)
			},
			want: 100,
		},
		{
			name:     "not found",
			code:     "NOPE",
			subtotal: 100,
			mockBehavior: func(repo *mocks.MockCouponRepo) {
				repo.On("GetByCode", mock.Anything, "NOPE").
					Return(entities.Coupon{}, entities.ErrCouponNotFound)
			},
			wantErr: entities.ErrCouponNotFound,
		},
		{
			name:     "expired",
			code:     "OLD",
			subtotal: 100,
			mockBehavior: func(repo *mocks.MockCouponRepo) {
				repo.On("GetByCode", mock.Anything, "OLD").Return(entities.Coupon{
					Code:          "OLD",
					DiscountType:  entities.DiscountFixedAmount,
					DiscountValue: 10,
					Active:        true,
					ValidUntil:    &pastTime,
				}, nil)
			},
			wantErr: entities.ErrCouponExpired,
		},
		{
			name:     "below minimum",
			code:     "BIGSPEND",
			subtotal: 100,
			mockBehavior: func(repo *mocks.MockCouponRepo) {
				repo.On("GetByCode", mock.Anything, "BIGSPEND").Return(entities.Coupon{
					Code:           "BIGSPEND",
					DiscountType:   entities.DiscountPercentage,
					DiscountValue:  20,
					MinOrderAmount: 1000,
					Active:         true,
				}, nil)
			},
			wantErr: entities.ErrCouponMinOrder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockCouponRepo)
			tc.mockBehavior(repo)

			svc := service.NewCouponService(testLogger(), repo)

			got, err := svc.ApplyCoupon(context.Background(), tc.code, tc.subtotal)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCouponService_CreateCoupon_NormalizesCode(t *testing.T) {
	repo := new(mocks.MockCouponRepo)
	repo.On("CreateCoupon", mock.Anything, mock.MatchedBy(func(c entities.Coupon) bool {
		return c.Code == "SUMMER25"
	})).Return(nil)

	svc := service.NewCouponService(testLogger(), repo)

	coupon, err := svc.CreateCoupon(context.Background(), entities.Coupon{
		Code:          "summer25",
		DiscountType:  entities.DiscountPercentage,
		DiscountValue: 25,
		Active:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", coupon.Code)
}
