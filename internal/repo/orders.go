package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/strumhaus/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type orderRepo struct {
	base
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{base: newBase(db)}
}

func (r *orderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("order_id", "customer_id", "created_at", "status", "total", "payment_ref").
		Values(o.OrderID, o.CustomerID, o.CreatedAt, string(o.Status), o.Total, nullString(o.PaymentRef)).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *orderRepo) SaveAddress(ctx context.Context, orderID string, a entities.Address) error {
	query, args := r.qb.Insert("order_addresses").
		Columns("order_id", "name", "phone", "email", "street", "city", "region", "zip", "country").
		Values(orderID,
			nullString(a.Name),
			nullString(a.Phone),
			nullString(a.Email),
			nullString(a.Street),
			nullString(a.City),
			nullString(a.Region),
			nullString(a.ZIP),
			nullString(a.Country),
		).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}
	return nil
}

func (r *orderRepo) SaveSummary(ctx context.Context, orderID string, s entities.Summary) error {
	query, args := r.qb.Insert("order_summaries").
		Columns("order_id", "subtotal", "shipping_cost", "discount", "coupon_code", "grand_total", "payment_method").
		Values(orderID, s.Subtotal, s.ShippingCost, s.Discount,
			nullString(s.CouponCode), s.GrandTotal, nullString(s.PaymentMethod)).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}

func (r *orderRepo) SaveItems(ctx context.Context, orderID string, items []entities.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "product_id", "name", "unit_price", "quantity", "customizations")

	for _, it := range items {
		var customizations []byte
		if len(it.Customizations) > 0 {
			data, err := json.Marshal(it.Customizations)
			if err != nil {
				return fmt.Errorf("failed to marshal customizations: %w", err)
			}
			customizations = data
		}
		q = q.Values(orderID, it.ProductID, it.Name, it.UnitPrice, it.Quantity, customizations)
	}

	query, args := q.MustSql()
	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

// AppendHistory adds one audit entry. History rows are insert-only and read
// back ordered by entry_id, so prior entries can't be reordered or lost.
func (r *orderRepo) AppendHistory(ctx context.Context, orderID string, entry entities.HistoryEntry) error {
	query, args := r.qb.Insert("order_status_history").
		Columns("order_id", "status", "created_at", "comment").
		Values(orderID, string(entry.Status), entry.Date, nullString(entry.Comment)).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) error {
	query, args := r.qb.Update("orders").
		Set("status", string(status)).
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select("order_id", "customer_id", "created_at", "status", "total", "payment_ref").
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	hydrated, err := r.hydrate(ctx, []Order{order})
	if err != nil {
		return entities.Order{}, err
	}
	return hydrated[0], nil
}

func (r *orderRepo) ListOrdersByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	query, args := r.qb.Select("order_id", "customer_id", "created_at", "status", "total", "payment_ref").
		From("orders").
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}
	return r.hydrate(ctx, orders)
}

func (r *orderRepo) LatestOrders(ctx context.Context, count int) ([]entities.Order, error) {
	query, args := r.qb.Select("order_id", "customer_id", "created_at", "status", "total", "payment_ref").
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(count)).
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}
	return r.hydrate(ctx, orders)
}

// hydrate batches the per-order tables for the given rows and assembles
// complete entities.
func (r *orderRepo) hydrate(ctx context.Context, orders []Order) ([]entities.Order, error) {
	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.OrderID
	}

	query, args := r.qb.Select("order_id", "name", "phone", "email", "street", "city", "region", "zip", "country").
		From("order_addresses").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var addresses []Address
	if err := r.selectContext(ctx, &addresses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select addresses: %w", err)
	}
	addressMap := make(map[string]Address, len(addresses))
	for _, a := range addresses {
		addressMap[a.OrderID] = a
	}

	query, args = r.qb.Select("order_id", "subtotal", "shipping_cost", "discount", "coupon_code", "grand_total", "payment_method").
		From("order_summaries").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var summaries []Summary
	if err := r.selectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select summaries: %w", err)
	}
	summaryMap := make(map[string]Summary, len(summaries))
	for _, s := range summaries {
		summaryMap[s.OrderID] = s
	}

	query, args = r.qb.Select("item_id", "order_id", "product_id", "name", "unit_price", "quantity", "customizations").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("item_id").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	itemsMap := make(map[string][]Item, len(ids))
	for _, item := range items {
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}

	query, args = r.qb.Select("entry_id", "order_id", "status", "created_at", "comment").
		From("order_status_history").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("entry_id").
		MustSql()

	var history []HistoryEntry
	if err := r.selectContext(ctx, &history, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	historyMap := make(map[string][]HistoryEntry, len(ids))
	for _, h := range history {
		historyMap[h.OrderID] = append(historyMap[h.OrderID], h)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(
			order,
			addressMap[order.OrderID],
			summaryMap[order.OrderID],
			itemsMap[order.OrderID],
			historyMap[order.OrderID],
		))
	}
	return result, nil
}
