package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrMarkAllNotificationsSeenCommandIsNotConstructed = errors.New(
	"MarkAllNotificationsSeenCommand must be created via NewMarkAllNotificationsSeenCommand constructor",
)

type MarkAllNotificationsSeenCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsSeenCommand(userID kernel.UUID) (MarkAllNotificationsSeenCommand, error) {
	if err := userID.Validate(); err != nil {
		return MarkAllNotificationsSeenCommand{}, err
	}

	return MarkAllNotificationsSeenCommand{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c MarkAllNotificationsSeenCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsSeenCommandIsNotConstructed)
}

func (c MarkAllNotificationsSeenCommand) UserID() kernel.UUID {
	return c.userID
}
