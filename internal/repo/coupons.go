package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/strumhaus/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type couponRepo struct {
	base
}

func NewCouponRepo(db *sqlx.DB) *couponRepo {
	return &couponRepo{base: newBase(db)}
}

var couponColumns = []string{
	"code", "discount_type", "discount_value", "min_order_amount",
	"max_uses_per_user", "valid_from", "valid_until", "active", "hidden",
	"created_at", "updated_at",
}

// GetByCode expects the code already normalized to uppercase; codes are
// stored uppercase, which makes the lookup case-insensitive.
func (r *couponRepo) GetByCode(ctx context.Context, code string) (entities.Coupon, error) {
	query, args := r.qb.Select(couponColumns...).
		From("coupons").
		Where(sq.Eq{"code": code}).
		MustSql()

	var coupon Coupon
	err := r.getContext(ctx, &coupon, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Coupon{}, entities.ErrCouponNotFound
	}
	if err != nil {
		return entities.Coupon{}, fmt.Errorf("failed to get coupon: %w", err)
	}
	return CouponToEntity(coupon), nil
}

// ListPublic returns coupons shown on the storefront. Hidden coupons stay
// redeemable through GetByCode but never appear here.
func (r *couponRepo) ListPublic(ctx context.Context) ([]entities.Coupon, error) {
	query, args := r.qb.Select(couponColumns...).
		From("coupons").
		Where(sq.Eq{"active": true, "hidden": false}).
		OrderBy("created_at DESC").
		MustSql()

	return r.list(ctx, query, args)
}

func (r *couponRepo) ListAll(ctx context.Context) ([]entities.Coupon, error) {
	query, args := r.qb.Select(couponColumns...).
		From("coupons").
		OrderBy("created_at DESC").
		MustSql()

	return r.list(ctx, query, args)
}

func (r *couponRepo) list(ctx context.Context, query string, args []any) ([]entities.Coupon, error) {
	var coupons []Coupon
	if err := r.selectContext(ctx, &coupons, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select coupons: %w", err)
	}

	result := make([]entities.Coupon, 0, len(coupons))
	for _, c := range coupons {
		result = append(result, CouponToEntity(c))
	}
	return result, nil
}

func (r *couponRepo) CreateCoupon(ctx context.Context, c entities.Coupon) error {
	query, args := r.qb.Insert("coupons").
		Columns("code", "discount_type", "discount_value", "min_order_amount",
			"max_uses_per_user", "valid_from", "valid_until", "active", "hidden").
		Values(c.Code, string(c.DiscountType), c.DiscountValue, c.MinOrderAmount,
			c.MaxUsesPerUser, nullTime(c.ValidFrom), nullTime(c.ValidUntil), c.Active, c.Hidden).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return entities.ErrCouponExists
	}
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *couponRepo) UpdateCoupon(ctx context.Context, c entities.Coupon) error {
	query, args := r.qb.Update("coupons").
		Set("discount_type", string(c.DiscountType)).
		Set("discount_value", c.DiscountValue).
		Set("min_order_amount", c.MinOrderAmount).
		Set("max_uses_per_user", c.MaxUsesPerUser).
		Set("valid_from", nullTime(c.ValidFrom)).
		Set("valid_until", nullTime(c.ValidUntil)).
		Set("active", c.Active).
		Set("hidden", c.Hidden).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"code": c.Code}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrCouponNotFound
	}
	return nil
}

func (r *couponRepo) DeleteCoupon(ctx context.Context, code string) error {
	query, args := r.qb.Delete("coupons").
		Where(sq.Eq{"code": code}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrCouponNotFound
	}
	return nil
}
