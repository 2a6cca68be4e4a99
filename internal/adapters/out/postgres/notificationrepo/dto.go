// Package notificationrepo persists in-app notifications and the push tokens
// used to reach a user's devices.
package notificationrepo

import (
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_seen,priority:1"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"type:text"`
	Seen      bool      `gorm:"not null;default:false;index:idx_notifications_user_seen,priority:2"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// PushTokenDTO is one registered device of a user.
type PushTokenDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token     string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PushTokenDTO) TableName() string {
	return "push_tokens"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID().Bytes(),
		Title:     n.Title(),
		Content:   n.Content(),
		Seen:      n.IsSeen(),
		CreatedAt: n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	return notification.RestoreNotification(
		id,
		userID,
		notification.Message{Title: dto.Title, Content: dto.Content},
		dto.Seen,
		dto.CreatedAt,
	)
}
