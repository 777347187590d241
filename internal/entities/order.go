package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"
)

type OrderStatus string

const (
	StatusPlaced              OrderStatus = "Placed"
	StatusProcessing          OrderStatus = "Processing"
	StatusShipped             OrderStatus = "Shipped"
	StatusDelivered           OrderStatus = "Delivered"
	StatusCancellationPending OrderStatus = "Cancellation Pending"
	StatusCancelled           OrderStatus = "Cancelled"
	StatusRefunded            OrderStatus = "Refunded"
)

// Statuses lists every order status the store recognizes. Transitions are
// deliberately unconstrained: an administrator may set any status from any
// other status.
var Statuses = []OrderStatus{
	StatusPlaced,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancellationPending,
	StatusCancelled,
	StatusRefunded,
}

func (s OrderStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// HistoryEntry is one immutable audit record of a status change.
type HistoryEntry struct {
	Status  OrderStatus
	Date    time.Time
	Comment string
}

type Item struct {
	ProductID      string
	Name           string
	UnitPrice      float64
	Quantity       int
	Customizations map[string]string
}

type Address struct {
	Name    string
	Phone   string
	Email   string
	Street  string
	City    string
	Region  string
	ZIP     string
	Country string
}

type Summary struct {
	Subtotal      float64
	ShippingCost  float64
	Discount      float64
	CouponCode    string
	GrandTotal    float64
	PaymentMethod string
}

type Order struct {
	OrderID    string
	CustomerID string
	CreatedAt  time.Time
	Status     OrderStatus
	Total      float64
	PaymentRef string

	// без указателей: адрес и итоги заказа присутствуют всегда
	ShippingAddress Address
	Summary         Summary
	Items           []Item

	// History is append-only; the last entry always matches Status.
	History []HistoryEntry
}

var ErrOrderNotFound = errors.New("order not found")

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(o)
}

func init() {
	gob.Register(Order{})
	gob.Register(Address{})
	gob.Register(Summary{})
	gob.Register(Item{})
	gob.Register(HistoryEntry{})
}
