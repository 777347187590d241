package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/strumhaus/order-service/internal/entities"

	"golang.org/x/sync/errgroup"
)

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n entities.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id int64, recipientID string) error
}

type AdminLister interface {
	AdminIDs(ctx context.Context) ([]string, error)
}

// notifier fans order events out as notification rows. Every insert is
// best-effort: failures are logged and never reach the caller, so a broken
// notification can't roll back an order update.
type notifier struct {
	logger *slog.Logger
	repo   NotificationRepo
	admins AdminLister
}

func NewNotifier(logger *slog.Logger, repo NotificationRepo, admins AdminLister) *notifier {
	return &notifier{
		logger: logger.With(slog.String("service", "notifier")),
		repo:   repo,
		admins: admins,
	}
}

// OrderPlaced alerts every administrator about a new order.
func (n *notifier) OrderPlaced(ctx context.Context, order entities.Order) {
	adminIDs, err := n.admins.AdminIDs(ctx)
	if err != nil {
		n.logger.Error("failed to list admins", slog.Any("error", err), slog.String("order_id", order.OrderID))
		return
	}
	n.dispatch(ctx, PlacedNotifications(order.OrderID, order.Total, adminIDs))
}

// OrderStatusChanged emits the notifications a status change calls for.
// Administrators are only alerted on cancellation requests; everything else
// goes to the owning customer.
func (n *notifier) OrderStatusChanged(ctx context.Context, orderID string, status entities.OrderStatus, customerID string) {
	var adminIDs []string
	if status == entities.StatusCancellationPending {
		ids, err := n.admins.AdminIDs(ctx)
		if err != nil {
			n.logger.Error("failed to list admins", slog.Any("error", err), slog.String("order_id", orderID))
			return
		}
		adminIDs = ids
	}
	n.dispatch(ctx, StatusNotifications(orderID, status, customerID, adminIDs))
}

func (n *notifier) dispatch(ctx context.Context, notifications []entities.Notification) {
	g, ctx := errgroup.WithContext(ctx)
	for _, notification := range notifications {
		g.Go(func() error {
			if err := n.repo.CreateNotification(ctx, notification); err != nil {
				n.logger.Error("failed to create notification",
					slog.Any("error", err),
					slog.String("recipient_id", notification.RecipientID),
					slog.String("order_id", notification.OrderID),
				)
			}
			return nil
		})
	}
	g.Wait()
}

func (n *notifier) Notifications(ctx context.Context, recipientID string) ([]entities.Notification, error) {
	return n.repo.ListByRecipient(ctx, recipientID)
}

func (n *notifier) MarkRead(ctx context.Context, id int64, recipientID string) error {
	return n.repo.MarkRead(ctx, id, recipientID)
}

// PlacedNotifications builds the new-order alert for each administrator.
func PlacedNotifications(orderID string, total float64, adminIDs []string) []entities.Notification {
	notifications := make([]entities.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		notifications = append(notifications, entities.Notification{
			RecipientID: adminID,
			OrderID:     orderID,
			Title:       "New order received",
			Message:     fmt.Sprintf("Order %s was placed for %s.", orderID, formatAmount(total)),
		})
	}
	return notifications
}

// StatusNotifications builds the records a status change produces. A pending
// cancellation alerts administrators only; the customer is not told until the
// request is resolved.
func StatusNotifications(orderID string, status entities.OrderStatus, customerID string, adminIDs []string) []entities.Notification {
	switch status {
	case entities.StatusCancellationPending:
		notifications := make([]entities.Notification, 0, len(adminIDs))
		for _, adminID := range adminIDs {
			notifications = append(notifications, entities.Notification{
				RecipientID: adminID,
				OrderID:     orderID,
				Title:       "Cancellation requested",
				Message:     fmt.Sprintf("Order %s has a pending cancellation request. Review it in the back office.", orderID),
			})
		}
		return notifications
	case entities.StatusShipped:
		return []entities.Notification{{
			RecipientID: customerID,
			OrderID:     orderID,
			Title:       "Your order has been shipped",
			Message:     fmt.Sprintf("Order %s is on its way to you.", orderID),
		}}
	case entities.StatusDelivered:
		return []entities.Notification{{
			RecipientID: customerID,
			OrderID:     orderID,
			Title:       "Your order has been delivered",
			Message:     fmt.Sprintf("Order %s has been delivered. Happy playing!", orderID),
		}}
	case entities.StatusCancelled:
		return []entities.Notification{{
			RecipientID: customerID,
			OrderID:     orderID,
			Title:       "Your order has been cancelled",
			Message:     fmt.Sprintf("Order %s has been cancelled.", orderID),
		}}
	default:
		return []entities.Notification{{
			RecipientID: customerID,
			OrderID:     orderID,
			Title:       "Order update",
			Message:     fmt.Sprintf("Your order %s is now %s.", orderID, status),
		}}
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
