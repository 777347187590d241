package repo

import (
	"context"
	"fmt"

	"github.com/strumhaus/order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type notificationRepo struct {
	base
}

func NewNotificationRepo(db *sqlx.DB) *notificationRepo {
	return &notificationRepo{base: newBase(db)}
}

func (r *notificationRepo) CreateNotification(ctx context.Context, n entities.Notification) error {
	query, args := r.qb.Insert("notifications").
		Columns("recipient_id", "order_id", "title", "message").
		Values(n.RecipientID, nullString(n.OrderID), n.Title, n.Message).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID string) ([]entities.Notification, error) {
	query, args := r.qb.Select("notification_id", "recipient_id", "order_id", "title", "message", "read", "created_at").
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC").
		MustSql()

	var notifications []Notification
	if err := r.selectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}

	result := make([]entities.Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, NotificationToEntity(n))
	}
	return result, nil
}

// MarkRead flips the read flag. The recipient filter keeps one user from
// touching another's notifications.
func (r *notificationRepo) MarkRead(ctx context.Context, id int64, recipientID string) error {
	query, args := r.qb.Update("notifications").
		Set("read", true).
		Where(sq.Eq{"notification_id": id, "recipient_id": recipientID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return entities.ErrNotificationNotFound
	}
	return nil
}
