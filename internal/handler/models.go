package handler

import (
	"time"

	"github.com/strumhaus/order-service/internal/entities"
)

// Order представляет заказ
type Order struct {
	OrderID         string         `json:"order_id"`
	CustomerID      string         `json:"customer_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Status          string         `json:"status"`
	Total           float64        `json:"total"`
	PaymentRef      string         `json:"payment_ref,omitempty"`
	ShippingAddress Address        `json:"shipping_address"`
	Summary         Summary        `json:"summary"`
	Items           []Item         `json:"items"`
	History         []HistoryEntry `json:"status_history"`
}

type HistoryEntry struct {
	Status  string    `json:"status"`
	Date    time.Time `json:"date"`
	Comment string    `json:"comment,omitempty"`
}

type Address struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	ZIP     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

type Summary struct {
	Subtotal      float64 `json:"subtotal"`
	ShippingCost  float64 `json:"shipping_cost"`
	Discount      float64 `json:"discount"`
	CouponCode    string  `json:"coupon_code,omitempty"`
	GrandTotal    float64 `json:"grand_total"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

type Item struct {
	ProductID      string            `json:"product_id"`
	Name           string            `json:"name"`
	UnitPrice      float64           `json:"unit_price"`
	Quantity       int               `json:"quantity"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

// CreateOrderRequest это снимок корзины на момент оформления
type CreateOrderRequest struct {
	Items           []ItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress Address       `json:"shipping_address" validate:"required"`
	PaymentRef      string        `json:"payment_ref,omitempty"`
	Summary         Summary       `json:"summary" validate:"required"`
}

type ItemRequest struct {
	ProductID      string            `json:"product_id" validate:"required"`
	Name           string            `json:"name" validate:"required"`
	UnitPrice      float64           `json:"unit_price" validate:"gte=0"`
	Quantity       int               `json:"quantity" validate:"required,gte=1"`
	Customizations map[string]string `json:"customizations,omitempty"`
}

// CheckoutEvent приходит из Kafka от витрины; то же содержимое, что и
// CreateOrderRequest, плюс идентификатор покупателя
type CheckoutEvent struct {
	OrderID    string `json:"order_id,omitempty"`
	CustomerID string `json:"customer_id" validate:"required"`
	CreateOrderRequest
}

type ChangeStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment,omitempty"`
}

type ApplyCouponRequest struct {
	CouponCode string  `json:"coupon_code" validate:"required"`
	Subtotal   float64 `json:"subtotal" validate:"gte=0"`
}

type ApplyCouponResponse struct {
	Success        bool    `json:"success"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	Error          string  `json:"error,omitempty"`
}

type Coupon struct {
	Code           string     `json:"code"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	MinOrderAmount float64    `json:"min_order_amount"`
	MaxUsesPerUser int        `json:"max_uses_per_user"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	Active         bool       `json:"active"`
	Hidden         bool       `json:"hidden"`
}

type UpsertCouponRequest struct {
	Code           string     `json:"code" validate:"required"`
	DiscountType   string     `json:"discount_type" validate:"required,oneof=percentage fixed_amount"`
	DiscountValue  float64    `json:"discount_value" validate:"required,gt=0"`
	MinOrderAmount float64    `json:"min_order_amount" validate:"gte=0"`
	MaxUsesPerUser int        `json:"max_uses_per_user" validate:"gte=0"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	Active         bool       `json:"active"`
	Hidden         bool       `json:"hidden"`
}

type Notification struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"order_id,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func AddressJSONToEntity(a Address) entities.Address {
	return entities.Address{
		Name:    a.Name,
		Phone:   a.Phone,
		Email:   a.Email,
		Street:  a.Street,
		City:    a.City,
		Region:  a.Region,
		ZIP:     a.ZIP,
		Country: a.Country,
	}
}

func AddressEntityToJSON(a entities.Address) Address {
	return Address{
		Name:    a.Name,
		Phone:   a.Phone,
		Email:   a.Email,
		Street:  a.Street,
		City:    a.City,
		Region:  a.Region,
		ZIP:     a.ZIP,
		Country: a.Country,
	}
}

func SummaryJSONToEntity(s Summary) entities.Summary {
	return entities.Summary{
		Subtotal:      s.Subtotal,
		ShippingCost:  s.ShippingCost,
		Discount:      s.Discount,
		CouponCode:    s.CouponCode,
		GrandTotal:    s.GrandTotal,
		PaymentMethod: s.PaymentMethod,
	}
}

func SummaryEntityToJSON(s entities.Summary) Summary {
	return Summary{
		Subtotal:      s.Subtotal,
		ShippingCost:  s.ShippingCost,
		Discount:      s.Discount,
		CouponCode:    s.CouponCode,
		GrandTotal:    s.GrandTotal,
		PaymentMethod: s.PaymentMethod,
	}
}

func ItemEntityToJSON(i entities.Item) Item {
	return Item{
		ProductID:      i.ProductID,
		Name:           i.Name,
		UnitPrice:      i.UnitPrice,
		Quantity:       i.Quantity,
		Customizations: i.Customizations,
	}
}

func CreateOrderRequestToEntity(req CreateOrderRequest, customerID string) entities.Order {
	items := make([]entities.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, entities.Item{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPrice:      it.UnitPrice,
			Quantity:       it.Quantity,
			Customizations: it.Customizations,
		})
	}

	return entities.Order{
		CustomerID:      customerID,
		Total:           req.Summary.GrandTotal,
		PaymentRef:      req.PaymentRef,
		ShippingAddress: AddressJSONToEntity(req.ShippingAddress),
		Summary:         SummaryJSONToEntity(req.Summary),
		Items:           items,
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemEntityToJSON(it))
	}

	history := make([]HistoryEntry, 0, len(o.History))
	for _, h := range o.History {
		history = append(history, HistoryEntry{
			Status:  string(h.Status),
			Date:    h.Date,
			Comment: h.Comment,
		})
	}

	return Order{
		OrderID:         o.OrderID,
		CustomerID:      o.CustomerID,
		CreatedAt:       o.CreatedAt,
		Status:          string(o.Status),
		Total:           o.Total,
		PaymentRef:      o.PaymentRef,
		ShippingAddress: AddressEntityToJSON(o.ShippingAddress),
		Summary:         SummaryEntityToJSON(o.Summary),
		Items:           items,
		History:         history,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderEntityToJSON(o))
	}
	return result
}

func UpsertCouponRequestToEntity(req UpsertCouponRequest) entities.Coupon {
	return entities.Coupon{
		Code:           req.Code,
		DiscountType:   entities.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxUsesPerUser: req.MaxUsesPerUser,
		ValidFrom:      req.ValidFrom,
		ValidUntil:     req.ValidUntil,
		Active:         req.Active,
		Hidden:         req.Hidden,
	}
}

func CouponEntityToJSON(c entities.Coupon) Coupon {
	return Coupon{
		Code:           c.Code,
		DiscountType:   string(c.DiscountType),
		DiscountValue:  c.DiscountValue,
		MinOrderAmount: c.MinOrderAmount,
		MaxUsesPerUser: c.MaxUsesPerUser,
		ValidFrom:      c.ValidFrom,
		ValidUntil:     c.ValidUntil,
		Active:         c.Active,
		Hidden:         c.Hidden,
	}
}

func CouponsEntityToJSON(coupons []entities.Coupon) []Coupon {
	result := make([]Coupon, 0, len(coupons))
	for _, c := range coupons {
		result = append(result, CouponEntityToJSON(c))
	}
	return result
}

func NotificationEntityToJSON(n entities.Notification) Notification {
	return Notification{
		ID:        n.ID,
		OrderID:   n.OrderID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func NotificationsEntityToJSON(notifications []entities.Notification) []Notification {
	result := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, NotificationEntityToJSON(n))
	}
	return result
}
