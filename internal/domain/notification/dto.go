package notification

import (
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (r *MarkAsReadRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.NotificationIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "notification_ids",
			Message: "notification_ids must contain at least one id",
		})
	} else if len(r.NotificationIDs) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "notification_ids",
			Message: "notification_ids must not contain more than 100 ids",
		})
	}

	for _, id := range r.NotificationIDs {
		if _, err := uuid.Parse(id); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "notification_ids",
				Message: "notification_ids must contain valid ids",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListNotificationsRequest struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

// Normalize applies the default page and clamps the page size.
func (r *ListNotificationsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
