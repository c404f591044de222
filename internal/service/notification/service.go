package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/notification"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type notificationServiceImpl struct {
	repo   notification.Repository
	config Config

	queue    chan notification.CreateNotificationRequest
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
	stopped  bool
}

// NewNotificationService starts cfg.WorkerCount writers that batch queued
// notifications into the repository.
func NewNotificationService(repo notification.Repository, cfg Config) notification.Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	s := &notificationServiceImpl{
		repo:   repo,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

func (s *notificationServiceImpl) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.insert(ctx, batch); err != nil {
			slog.Error("failed to batch insert notifications", "worker", id, "count", len(batch), "error", err)
		} else {
			slog.Debug("inserted notifications", "worker", id, "count", len(batch))
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// drain what was queued before Stop
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *notificationServiceImpl) insert(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	now := time.Now()
	notifications := make([]*notification.Notification, len(reqs))
	for i, req := range reqs {
		notifications[i] = &notification.Notification{
			ID:          uuid.NewString(),
			RecipientID: req.RecipientID,
			Type:        req.Type,
			Title:       req.Title,
			Message:     req.Message,
			Data:        req.Data,
			CreatedAt:   now,
		}
	}
	return s.repo.CreateBatch(ctx, notifications)
}

// QueueBulkNotification implements notification.Service. When the queue is
// full the remaining requests are written synchronously.
func (s *notificationServiceImpl) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return notification.ErrServiceStopped
	}

	for i, req := range reqs {
		select {
		case s.queue <- req:
		case <-ctx.Done():
			return ctx.Err()
		default:
			slog.Warn("notification queue full, inserting directly", "pending", len(reqs)-i)
			return s.insert(ctx, reqs[i:])
		}
	}
	return nil
}

func (s *notificationServiceImpl) toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications implements notification.Service.
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID string, filter notification.ListNotificationsRequest) (notification.NotificationListResponse, error) {
	filter.Normalize()

	notifications, total, err := s.repo.GetByUserID(ctx, userID, filter.Page, filter.PageSize, filter.UnreadOnly)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = s.toResponse(n)
	}

	return notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}, nil
}

// GetUnreadCount implements notification.Service.
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead implements notification.Service.
func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
	return err
}

// MarkAllAsRead implements notification.Service.
func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Stop implements notification.Service.
func (s *notificationServiceImpl) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
