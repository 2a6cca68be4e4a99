package commands

import (
	"context"
)

type MarkAllNotificationsSeenCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkAllNotificationsSeenCommandHandler(uowFactory NotificationUoWFactory) MarkAllNotificationsSeenCommandHandler {
	return MarkAllNotificationsSeenCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns how many notifications changed.
func (h *MarkAllNotificationsSeenCommandHandler) Handle(ctx context.Context, cmd MarkAllNotificationsSeenCommand) (int64, error) {
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

	n, err := uow.NotificationRepository().MarkAllSeen(ctx, cmd.UserID())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return n, nil
}
