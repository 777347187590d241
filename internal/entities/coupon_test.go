package entities_test

import (
	"testing"
	"time"

	"github.com/strumhaus/order-service/internal/entities"

	"github.com/stretchr/testify/assert"
)

func TestCoupon_DiscountFor(t *testing.T) {
	testCases := []struct {
		name     string
		coupon   entities.Coupon
		subtotal float64
		want     float64
	}{
		{
			name:     "percentage",
			coupon:   entities.Coupon{DiscountType: entities.DiscountPercentage, DiscountValue: 10},
			subtotal: 1000,
			want:     100,
		},
		{
			name:     "percentage never exceeds subtotal",
			coupon:   entities.Coupon{DiscountType: entities.DiscountPercentage, DiscountValue: 150},
			subtotal: 200,
			want:     200,
		},
		{
			name:     "fixed amount",
			coupon:   entities.Coupon{DiscountType: entities.DiscountFixedAmount, DiscountValue: 50},
			subtotal: 400,
			want:     50,
		},
		{
			name:     "fixed amount clamped to subtotal",
			coupon:   entities.Coupon{DiscountType: entities.DiscountFixedAmount, DiscountValue: 50},
			subtotal: 30,
			want:     30,
		},
		{
			name:     "zero subtotal",
			coupon:   entities.Coupon{DiscountType: entities.DiscountFixedAmount, DiscountValue: 50},
			subtotal: 0,
			want:     0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.coupon.DiscountFor(tc.subtotal), 1e-9)
		})
	}
}

func TestCoupon_Redeemable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	testCases := []struct {
		name     string
		coupon   entities.Coupon
		subtotal float64
		wantErr  error
	}{
		{
			name:     "ok without window",
			coupon:   entities.Coupon{Active: true},
			subtotal: 100,
		},
		{
			name:     "ok inside window",
			coupon:   entities.Coupon{Active: true, ValidFrom: &past, ValidUntil: &future},
			subtotal: 100,
		},
		{
			name:     "inactive",
			coupon:   entities.Coupon{Active: false},
			subtotal: 100,
			wantErr:  entities.ErrCouponInactive,
		},
		{
			name:     "not yet valid",
			coupon:   entities.Coupon{Active: true, ValidFrom: &future},
			subtotal: 100,
			wantErr:  entities.ErrCouponNotYetValid,
		},
		{
			name:     "expired",
			coupon:   entities.Coupon{Active: true, ValidUntil: &past},
			subtotal: 100,
			wantErr:  entities.ErrCouponExpired,
		},
		{
			name:     "below minimum regardless of type",
			coupon:   entities.Coupon{Active: true, DiscountType: entities.DiscountFixedAmount, MinOrderAmount: 500},
			subtotal: 499.99,
			wantErr:  entities.ErrCouponMinOrder,
		},
		{
			name:     "inactive wins over expired",
			coupon:   entities.Coupon{Active: false, ValidUntil: &past},
			subtotal: 100,
			wantErr:  entities.ErrCouponInactive,
		},
		{
			name:     "expired wins over minimum",
			coupon:   entities.Coupon{Active: true, ValidUntil: &past, MinOrderAmount: 500},
			subtotal: 100,
			wantErr:  entities.ErrCouponExpired,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coupon.Redeemable(tc.subtotal, now)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// Сценарий из чек-листа: SAVE10 на 10% с минимальной суммой 500.
func TestCoupon_Save10Scenario(t *testing.T) {
	coupon := entities.Coupon{
		Code:           "SAVE10",
		DiscountType:   entities.DiscountPercentage,
		DiscountValue:  10,
		MinOrderAmount: 500,
		Active:         true,
	}

	assert.NoError(t, coupon.Redeemable(1000, time.Now().UTC()))
	assert.InDelta(t, 100, coupon.DiscountFor(1000), 1e-9)
}
