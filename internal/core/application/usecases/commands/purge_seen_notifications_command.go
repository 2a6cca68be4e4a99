package commands

import (
	"errors"
	"time"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrPurgeSeenNotificationsCommandIsNotConstructed = errors.New(
	"PurgeSeenNotificationsCommand must be created via NewPurgeSeenNotificationsCommand constructor",
)

// PurgeSeenNotificationsCommand deletes seen notifications older than the
// retention period.
type PurgeSeenNotificationsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeSeenNotificationsCommand(retention time.Duration) (PurgeSeenNotificationsCommand, error) {
	if retention <= 0 {
		return PurgeSeenNotificationsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, time.Nanosecond, "unbounded")
	}

	return PurgeSeenNotificationsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeSeenNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeSeenNotificationsCommandIsNotConstructed)
}

func (c PurgeSeenNotificationsCommand) Retention() time.Duration {
	return c.retention
}
