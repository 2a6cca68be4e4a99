package ports

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"
)

// NotificationPage is one page of a user's notifications, newest first.
type NotificationPage struct {
	Results []*notification.Notification
	Count   int64
	Unseen  int64
}

type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)
	Update(ctx context.Context, n *notification.Notification) error

	// ListByUser returns the page starting at offset with at most limit rows.
	ListByUser(ctx context.Context, userID kernel.UUID, offset, limit int) (NotificationPage, error)

	// MarkAllSeen flags every unseen notification of userID and returns how
	// many changed.
	MarkAllSeen(ctx context.Context, userID kernel.UUID) (int64, error)

	// DeleteSeenBefore removes seen notifications created before cutoff.
	DeleteSeenBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PushTokenRepository lists the device tokens registered by a user.
type PushTokenRepository interface {
	ListTokens(ctx context.Context, userID kernel.UUID) ([]string, error)
}

// PushTokenRegistry stores device tokens. Registering a known token is a no-op.
type PushTokenRegistry interface {
	Register(ctx context.Context, userID kernel.UUID, token string) error
}
