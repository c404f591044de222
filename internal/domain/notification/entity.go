package notification

import (
	"time"
)

type NotificationType string

const (
	TypeSchedulePublished NotificationType = "schedule_published"
)

// Notification is one inbox entry of a user.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
