package commands

import (
	"context"

	"courierhub/internal/pkg/errs"
)

// MarkNotificationSeenCommandHandler marks a notification as seen. Another
// user's notification is reported as not found.
type MarkNotificationSeenCommandHandler struct {
	uowFactory NotificationUoWFactory
}

func NewMarkNotificationSeenCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationSeenCommandHandler {
	return MarkNotificationSeenCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *MarkNotificationSeenCommandHandler) Handle(ctx context.Context, cmd MarkNotificationSeenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	n, err := uow.NotificationRepository().Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}
	if !n.UserID().IsEqual(cmd.UserID()) {
		return errs.NewObjectNotFoundError("notification", cmd.NotificationID().String())
	}
	if n.IsSeen() {
		return uow.Commit(ctx)
	}

	n.MarkSeen()
	if err = uow.NotificationRepository().Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
