package notification

import (
	"context"
)

type Service interface {
	// QueueBulkNotification hands notifications to the background writer.
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	GetNotifications(ctx context.Context, userID string, filter ListNotificationsRequest) (NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// Stop flushes queued notifications and stops the writers.
	Stop()
}
