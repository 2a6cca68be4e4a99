package commands

import (
	"context"
	"time"
)

type PurgeSeenNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewPurgeSeenNotificationsCommandHandler(uowFactory NotificationUoWFactory) PurgeSeenNotificationsCommandHandler {
	return PurgeSeenNotificationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of deleted notifications.
func (h *PurgeSeenNotificationsCommandHandler) Handle(ctx context.Context, cmd PurgeSeenNotificationsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.Retention())
	n, err := uow.NotificationRepository().DeleteSeenBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return n, nil
}
