package mocks

import (
	"context"

	"github.com/strumhaus/order-service/internal/entities"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *MockOrderRepo) ListOrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	args := m.Called(ctx, count)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepo) SaveAddress(ctx context.Context, orderID string, a entities.Address) error {
	return m.Called(ctx, orderID, a).Error(0)
}

func (m *MockOrderRepo) SaveSummary(ctx context.Context, orderID string, s entities.Summary) error {
	return m.Called(ctx, orderID, s).Error(0)
}

func (m *MockOrderRepo) SaveItems(ctx context.Context, orderID string, items []entities.Item) error {
	return m.Called(ctx, orderID, items).Error(0)
}

func (m *MockOrderRepo) AppendHistory(ctx context.Context, orderID string, entry entities.HistoryEntry) error {
	return m.Called(ctx, orderID, entry).Error(0)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) error {
	return m.Called(ctx, orderID, status).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1)
}

func (m *MockCache) Set(key string, value []byte) {
	m.Called(key, value)
}

func (m *MockCache) Del(keys ...string) {
	m.Called(keys)
}

type MockOrderNotifier struct {
	mock.Mock
}

func (m *MockOrderNotifier) OrderPlaced(ctx context.Context, order entities.Order) {
	m.Called(ctx, order)
}

func (m *MockOrderNotifier) OrderStatusChanged(ctx context.Context, orderID string, status entities.OrderStatus, customerID string) {
	m.Called(ctx, orderID, status, customerID)
}

type MockCouponRepo struct {
	mock.Mock
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (entities.Coupon, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(entities.Coupon), args.Error(1)
}

func (m *MockCouponRepo) ListPublic(ctx context.Context) ([]entities.Coupon, error) {
	args := m.Called(ctx)
	coupons, _ := args.Get(0).([]entities.Coupon)
	return coupons, args.Error(1)
}

func (m *MockCouponRepo) ListAll(ctx context.Context) ([]entities.Coupon, error) {
	args := m.Called(ctx)
	coupons, _ := args.Get(0).([]entities.Coupon)
	return coupons, args.Error(1)
}

func (m *MockCouponRepo) CreateCoupon(ctx context.Context, c entities.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepo) UpdateCoupon(ctx context.Context, c entities.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepo) DeleteCoupon(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) CreateNotification(ctx context.Context, n entities.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]entities.Notification, error) {
	args := m.Called(ctx, recipientID)
	notifications, _ := args.Get(0).([]entities.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id int64, recipientID string) error {
	return m.Called(ctx, id, recipientID).Error(0)
}

type MockAdminLister struct {
	mock.Mock
}

func (m *MockAdminLister) AdminIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}
