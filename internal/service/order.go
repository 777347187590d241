package service

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"time"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/pkg/trm"

	"github.com/google/uuid"
)

type OrderRepo interface {
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)

	// Операции вставки идемпотентны, т.к. используется ON CONFLICT DO NOTHING
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveAddress(ctx context.Context, orderID string, a entities.Address) error
	SaveSummary(ctx context.Context, orderID string, s entities.Summary) error
	SaveItems(ctx context.Context, orderID string, items []entities.Item) error

	AppendHistory(ctx context.Context, orderID string, entry entities.HistoryEntry) error
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(keys ...string)
}

type OrderNotifier interface {
	OrderPlaced(ctx context.Context, order entities.Order)
	OrderStatusChanged(ctx context.Context, orderID string, status entities.OrderStatus, customerID string)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	notifier  OrderNotifier
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, cache Cache, notifier OrderNotifier) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
		notifier:  notifier,
	}
}

// CreateOrder persists a checkout snapshot as a new order. The order starts
// as Placed with exactly one history entry, written in the same transaction
// as the order itself. Administrators are alerted best-effort afterwards.
func (s *orderService) CreateOrder(ctx context.Context, order entities.Order) (entities.Order, error) {
	now := time.Now().UTC()
	if order.OrderID == "" {
		order.OrderID = uuid.NewString()
	}
	order.CreatedAt = now
	order.Status = entities.StatusPlaced
	order.History = []entities.HistoryEntry{{Status: entities.StatusPlaced, Date: now}}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := s.repo.SaveAddress(ctx, order.OrderID, order.ShippingAddress); err != nil {
			return fmt.Errorf("failed to save address: %w", err)
		}
		if err := s.repo.SaveSummary(ctx, order.OrderID, order.Summary); err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}
		if err := s.repo.SaveItems(ctx, order.OrderID, order.Items); err != nil {
			return fmt.Errorf("failed to save items: %w", err)
		}
		if err := s.repo.AppendHistory(ctx, order.OrderID, order.History[0]); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.logger.Debug("order created", "order_id", order.OrderID)

	s.notifier.OrderPlaced(ctx, order)
	s.cache.Del(customerOrdersKey(order.CustomerID))

	return order, nil
}

// ChangeStatus applies a status transition. Any status may follow any other:
// the back office is trusted to pick a sensible next state. The status update
// and the history append commit in one transaction so concurrent transitions
// can't drop an audit entry.
func (s *orderService) ChangeStatus(ctx context.Context, orderID string, status entities.OrderStatus, comment string) (entities.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	entry := entities.HistoryEntry{
		Status:  status,
		Date:    time.Now().UTC(),
		Comment: comment,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		if err := s.repo.AppendHistory(ctx, orderID, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}

	order.Status = status
	order.History = append(order.History, entry)

	s.logger.Debug("order status changed", "order_id", orderID, "status", string(status))

	s.notifier.OrderStatusChanged(ctx, orderID, status, order.CustomerID)
	s.cache.Del(orderKey(orderID), customerOrdersKey(order.CustomerID))

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if data, ok := s.cache.Get(orderKey(orderID)); ok {
		var order entities.Order
		err := order.Unmarshal(data)
		if err == nil {
			return order, nil
		}
		// повреждённая запись вытесняется, заказ перечитывается из базы
		s.logger.Error("failed to unmarshal cached order", slog.String("order_id", orderID), slog.Any("error", err))
		s.cache.Del(orderKey(orderID))
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	data, err := order.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", orderID), slog.Any("error", err))
		return entities.Order{}, err
	}
	s.cache.Set(orderKey(orderID), data)
	return order, nil
}

func (s *orderService) ListOrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	if data, ok := s.cache.Get(customerOrdersKey(customerID)); ok {
		orders, err := unmarshalOrders(data)
		if err == nil {
			return orders, nil
		}
		s.logger.Error("failed to unmarshal cached order list", slog.String("customer_id", customerID), slog.Any("error", err))
	}

	orders, err := s.repo.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if data, err := marshalOrders(orders); err == nil {
		s.cache.Set(customerOrdersKey(customerID), data)
	}
	return orders, nil
}

func (s *orderService) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	return s.repo.LatestOrders(ctx, count)
}

// WarmUpCache preloads the most recent orders so the first reads after a
// restart don't all hit the database.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.LatestOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to warm up cache: %w", err)
	}

	for _, order := range orders {
		data, err := order.Marshal()
		if err != nil {
			s.logger.Error("failed to marshal order", slog.String("order_id", order.OrderID), slog.Any("error", err))
			continue
		}
		s.cache.Set(orderKey(order.OrderID), data)
	}

	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

func orderKey(orderID string) string {
	return "order:" + orderID
}

func customerOrdersKey(customerID string) string {
	return "orders:customer:" + customerID
}

func marshalOrders(orders []entities.Order) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(orders); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalOrders(data []byte) ([]entities.Order, error) {
	var orders []entities.Order
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&orders); err != nil {
		return nil, err
	}
	return orders, nil
}
