package notification

import (
	"context"
)

type Repository interface {
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	// MarkAsRead ignores ids that belong to other users.
	MarkAsRead(ctx context.Context, ids []string, userID string) (int64, error)
	MarkAllAsRead(ctx context.Context, userID string) error
}
