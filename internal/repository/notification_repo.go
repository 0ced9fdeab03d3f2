package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cash-reconciliation-backend/internal/models"
)

// ErrNotFound is returned when a record does not exist for the given owner.
var ErrNotFound = errors.New("record not found")

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListForUser returns the user's notifications of the given types, newest
// first. An empty types slice means no type filter.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, types []string, limit int) ([]models.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)

	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if len(types) > 0 {
		query = query.Where("type IN ?", types)
	}

	var notifications []models.Notification
	err := query.Find(&notifications).Error
	return notifications, err
}

// MarkRead flags the notification as read. Returns ErrNotFound when it does
// not exist or belongs to another user.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	var n models.Notification
	err := r.db.WithContext(ctx).
		First(&n, "id = ? AND user_id = ?", notificationID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	n.IsRead = true
	n.ReadAt = &now
	return r.db.WithContext(ctx).Save(&n).Error
}
