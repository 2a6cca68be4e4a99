// Package notification holds the in-app notification record written once per
// recipient for every announced event, whether or not the push reached a device.
package notification

import (
	"errors"
	"strings"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification",
)

// Message is the title and body shared by every recipient of one announcement.
type Message struct {
	Title   string
	Content string
}

// Validate requires a non-blank title.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	return nil
}

// Notification is one user's copy of an announcement.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	title     string
	content   string
	seen      bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unseen notification for userID.
func NewNotification(userID kernel.UUID, msg Message, createdAt time.Time) (*Notification, error) {
	return RestoreNotification(kernel.NewUUID(), userID, msg, false, createdAt)
}

// RestoreNotification rebuilds a notification from persistence.
func RestoreNotification(
	id, userID kernel.UUID,
	msg Message,
	seen bool,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), msg.Validate()); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Notification{
		id:        id,
		userID:    userID,
		title:     msg.Title,
		content:   msg.Content,
		seen:      seen,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Content() string {
	return n.content
}

func (n *Notification) IsSeen() bool {
	return n.seen
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkSeen flags the notification as read. It is idempotent.
func (n *Notification) MarkSeen() {
	n.seen = true
}
