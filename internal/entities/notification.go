package entities

import (
	"errors"
	"time"
)

// Notification belongs to its recipient; only the Read flag ever changes
// after insert.
type Notification struct {
	ID          int64
	RecipientID string
	OrderID     string
	Title       string
	Message     string
	Read        bool
	CreatedAt   time.Time
}

var ErrNotificationNotFound = errors.New("notification not found")
