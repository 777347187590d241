package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/strumhaus/order-service/internal/entities"
)

type CouponRepo interface {
	GetByCode(ctx context.Context, code string) (entities.Coupon, error)
	ListPublic(ctx context.Context) ([]entities.Coupon, error)
	ListAll(ctx context.Context) ([]entities.Coupon, error)
	CreateCoupon(ctx context.Context, c entities.Coupon) error
	UpdateCoupon(ctx context.Context, c entities.Coupon) error
	DeleteCoupon(ctx context.Context, code string) error
}

type couponService struct {
	logger *slog.Logger
	repo   CouponRepo
}

func NewCouponService(logger *slog.Logger, repo CouponRepo) *couponService {
	return &couponService{
		logger: logger.With(slog.String("service", "coupon")),
		repo:   repo,
	}
}

// ApplyCoupon validates the code against the order subtotal and returns the
// discount amount. Rejections come back as the entities.ErrCoupon* sentinels
// so handlers can surface a precise reason. The call reads the coupon row and
// nothing else; redemption is not recorded here.
func (s *couponService) ApplyCoupon(ctx context.Context, code string, subtotal float64) (float64, error) {
	coupon, err := s.repo.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return 0, err
	}

	if err := coupon.Redeemable(subtotal, time.Now().UTC()); err != nil {
		return 0, err
	}

	return coupon.DiscountFor(subtotal), nil
}

// ListCoupons returns the storefront listing; hidden coupons are omitted but
// still redeemable by code.
func (s *couponService) ListCoupons(ctx context.Context) ([]entities.Coupon, error) {
	return s.repo.ListPublic(ctx)
}

func (s *couponService) ListAllCoupons(ctx context.Context) ([]entities.Coupon, error) {
	return s.repo.ListAll(ctx)
}

func (s *couponService) CreateCoupon(ctx context.Context, coupon entities.Coupon) (entities.Coupon, error) {
	coupon.Code = NormalizeCode(coupon.Code)
	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return entities.Coupon{}, err
	}
	s.logger.Debug("coupon created", "code", coupon.Code)
	return coupon, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, coupon entities.Coupon) (entities.Coupon, error) {
	coupon.Code = NormalizeCode(coupon.Code)
	if err := s.repo.UpdateCoupon(ctx, coupon); err != nil {
		return entities.Coupon{}, err
	}
	s.logger.Debug("coupon updated", "code", coupon.Code)
	return coupon, nil
}

func (s *couponService) DeleteCoupon(ctx context.Context, code string) error {
	return s.repo.DeleteCoupon(ctx, NormalizeCode(code))
}

// NormalizeCode uppercases a coupon code; codes are stored uppercase, which
// makes every lookup case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
