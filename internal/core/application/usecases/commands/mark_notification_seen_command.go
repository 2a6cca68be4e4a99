package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrMarkNotificationSeenCommandIsNotConstructed = errors.New(
	"MarkNotificationSeenCommand must be created via NewMarkNotificationSeenCommand constructor",
)

// MarkNotificationSeenCommand flags one notification of a user as seen.
type MarkNotificationSeenCommand struct { //nolint:recvcheck //using for validation
	userID         kernel.UUID
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationSeenCommand(userID, notificationID kernel.UUID) (MarkNotificationSeenCommand, error) {
	if err := errors.Join(userID.Validate(), notificationID.Validate()); err != nil {
		return MarkNotificationSeenCommand{}, err
	}

	return MarkNotificationSeenCommand{
		userID:         userID,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationSeenCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationSeenCommandIsNotConstructed)
}

func (c MarkNotificationSeenCommand) UserID() kernel.UUID {
	return c.userID
}

func (c MarkNotificationSeenCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
