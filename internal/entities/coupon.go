package entities

import (
	"errors"
	"time"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixedAmount
}

// Coupon codes are stored uppercase and looked up case-insensitively.
// Hidden coupons are excluded from the public listing but stay redeemable.
type Coupon struct {
	Code           string
	DiscountType   DiscountType
	DiscountValue  float64
	MinOrderAmount float64
	MaxUsesPerUser int
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	Active         bool
	Hidden         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponExists      = errors.New("coupon already exists")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponMinOrder    = errors.New("order total below coupon minimum")
)

// Redeemable reports whether the coupon can be applied to an order with the
// given subtotal at the given moment. Checks run in a fixed order so the
// caller always gets the same rejection reason for the same coupon state.
// MaxUsesPerUser is recorded but not checked here: redemption history is not
// consulted at evaluation time.
func (c Coupon) Redeemable(subtotal float64, now time.Time) error {
	if !c.Active {
		return ErrCouponInactive
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return ErrCouponNotYetValid
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return ErrCouponExpired
	}
	if subtotal < c.MinOrderAmount {
		return ErrCouponMinOrder
	}
	return nil
}

// DiscountFor computes the discount amount for the given subtotal. The
// result never exceeds the subtotal, so an order can't go negative.
func (c Coupon) DiscountFor(subtotal float64) float64 {
	var discount float64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal * c.DiscountValue / 100
	default:
		discount = c.DiscountValue
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}
