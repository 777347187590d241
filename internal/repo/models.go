package repo

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/strumhaus/order-service/internal/entities"
)

type Order struct {
	OrderID    string         `db:"order_id"`
	CustomerID string         `db:"customer_id"`
	CreatedAt  time.Time      `db:"created_at"`
	Status     string         `db:"status"`
	Total      float64        `db:"total"`
	PaymentRef sql.NullString `db:"payment_ref"`
}

type Address struct {
	OrderID string         `db:"order_id"`
	Name    sql.NullString `db:"name"`
	Phone   sql.NullString `db:"phone"`
	Email   sql.NullString `db:"email"`
	Street  sql.NullString `db:"street"`
	City    sql.NullString `db:"city"`
	Region  sql.NullString `db:"region"`
	Zip     sql.NullString `db:"zip"`
	Country sql.NullString `db:"country"`
}

type Summary struct {
	OrderID       string         `db:"order_id"`
	Subtotal      float64        `db:"subtotal"`
	ShippingCost  float64        `db:"shipping_cost"`
	Discount      float64        `db:"discount"`
	CouponCode    sql.NullString `db:"coupon_code"`
	GrandTotal    float64        `db:"grand_total"`
	PaymentMethod sql.NullString `db:"payment_method"`
}

type Item struct {
	ItemID         int64   `db:"item_id"`
	OrderID        string  `db:"order_id"`
	ProductID      string  `db:"product_id"`
	Name           string  `db:"name"`
	UnitPrice      float64 `db:"unit_price"`
	Quantity       int     `db:"quantity"`
	Customizations []byte  `db:"customizations"`
}

type HistoryEntry struct {
	EntryID   int64          `db:"entry_id"`
	OrderID   string         `db:"order_id"`
	Status    string         `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
	Comment   sql.NullString `db:"comment"`
}

type Coupon struct {
	Code           string       `db:"code"`
	DiscountType   string       `db:"discount_type"`
	DiscountValue  float64      `db:"discount_value"`
	MinOrderAmount float64      `db:"min_order_amount"`
	MaxUsesPerUser int          `db:"max_uses_per_user"`
	ValidFrom      sql.NullTime `db:"valid_from"`
	ValidUntil     sql.NullTime `db:"valid_until"`
	Active         bool         `db:"active"`
	Hidden         bool         `db:"hidden"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

type Notification struct {
	NotificationID int64          `db:"notification_id"`
	RecipientID    string         `db:"recipient_id"`
	OrderID        sql.NullString `db:"order_id"`
	Title          string         `db:"title"`
	Message        string         `db:"message"`
	Read           bool           `db:"read"`
	CreatedAt      time.Time      `db:"created_at"`
}

func AddressToEntity(a Address) entities.Address {
	return entities.Address{
		Name:    nullStringToString(a.Name),
		Phone:   nullStringToString(a.Phone),
		Email:   nullStringToString(a.Email),
		Street:  nullStringToString(a.Street),
		City:    nullStringToString(a.City),
		Region:  nullStringToString(a.Region),
		ZIP:     nullStringToString(a.Zip),
		Country: nullStringToString(a.Country),
	}
}

func SummaryToEntity(s Summary) entities.Summary {
	return entities.Summary{
		Subtotal:      s.Subtotal,
		ShippingCost:  s.ShippingCost,
		Discount:      s.Discount,
		CouponCode:    nullStringToString(s.CouponCode),
		GrandTotal:    s.GrandTotal,
		PaymentMethod: nullStringToString(s.PaymentMethod),
	}
}

func ItemToEntity(i Item) entities.Item {
	item := entities.Item{
		ProductID: i.ProductID,
		Name:      i.Name,
		UnitPrice: i.UnitPrice,
		Quantity:  i.Quantity,
	}
	if len(i.Customizations) > 0 {
		// повреждённый jsonb не должен ронять чтение заказа
		_ = json.Unmarshal(i.Customizations, &item.Customizations)
	}
	return item
}

func HistoryEntryToEntity(h HistoryEntry) entities.HistoryEntry {
	return entities.HistoryEntry{
		Status:  entities.OrderStatus(h.Status),
		Date:    h.CreatedAt,
		Comment: nullStringToString(h.Comment),
	}
}

func OrderToEntity(o Order, a Address, s Summary, items []Item, history []HistoryEntry) entities.Order {
	order := entities.Order{
		OrderID:         o.OrderID,
		CustomerID:      o.CustomerID,
		CreatedAt:       o.CreatedAt,
		Status:          entities.OrderStatus(o.Status),
		Total:           o.Total,
		PaymentRef:      nullStringToString(o.PaymentRef),
		ShippingAddress: AddressToEntity(a),
		Summary:         SummaryToEntity(s),
	}

	if len(items) > 0 {
		order.Items = make([]entities.Item, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	if len(history) > 0 {
		order.History = make([]entities.HistoryEntry, 0, len(history))
		for _, h := range history {
			order.History = append(order.History, HistoryEntryToEntity(h))
		}
	}

	return order
}

func CouponToEntity(c Coupon) entities.Coupon {
	return entities.Coupon{
		Code:           c.Code,
		DiscountType:   entities.DiscountType(c.DiscountType),
		DiscountValue:  c.DiscountValue,
		MinOrderAmount: c.MinOrderAmount,
		MaxUsesPerUser: c.MaxUsesPerUser,
		ValidFrom:      nullTimeToPtr(c.ValidFrom),
		ValidUntil:     nullTimeToPtr(c.ValidUntil),
		Active:         c.Active,
		Hidden:         c.Hidden,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func NotificationToEntity(n Notification) entities.Notification {
	return entities.Notification{
		ID:          n.NotificationID,
		RecipientID: n.RecipientID,
		OrderID:     nullStringToString(n.OrderID),
		Title:       n.Title,
		Message:     n.Message,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
