package mocks

import (
	"context"

	"github.com/strumhaus/order-service/internal/entities"

	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *MockOrderService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	args := m.Called(ctx, count)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) ChangeStatus(ctx context.Context, orderID string, status entities.OrderStatus, comment string) (entities.Order, error) {
	args := m.Called(ctx, orderID, status, comment)
	return args.Get(0).(entities.Order), args.Error(1)
}

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) ApplyCoupon(ctx context.Context, code string, subtotal float64) (float64, error) {
	args := m.Called(ctx, code, subtotal)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCouponService) ListCoupons(ctx context.Context) ([]entities.Coupon, error) {
	args := m.Called(ctx)
	coupons, _ := args.Get(0).([]entities.Coupon)
	return coupons, args.Error(1)
}

func (m *MockCouponService) ListAllCoupons(ctx context.Context) ([]entities.Coupon, error) {
	args := m.Called(ctx)
	coupons, _ := args.Get(0).([]entities.Coupon)
	return coupons, args.Error(1)
}

func (m *MockCouponService) CreateCoupon(ctx context.Context, coupon entities.Coupon) (entities.Coupon, error) {
	args := m.Called(ctx, coupon)
	return args.Get(0).(entities.Coupon), args.Error(1)
}

func (m *MockCouponService) UpdateCoupon(ctx context.Context, coupon entities.Coupon) (entities.Coupon, error) {
	args := m.Called(ctx, coupon)
	return args.Get(0).(entities.Coupon), args.Error(1)
}

func (m *MockCouponService) DeleteCoupon(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notifications(ctx context.Context, recipientID string) ([]entities.Notification, error) {
	args := m.Called(ctx, recipientID)
	notifications, _ := args.Get(0).([]entities.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id int64, recipientID string) error {
	return m.Called(ctx, id, recipientID).Error(0)
}
