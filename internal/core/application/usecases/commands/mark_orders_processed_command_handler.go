package commands

import (
	"context"
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// ErrOrdersNotSettled is the cause reported when a payout period still holds
// open orders.
var ErrOrdersNotSettled = errors.New("every order must be delivered or canceled")

// MarkOrdersProcessedCommandHandler marks the delivered orders of a scope as
// processed. It refuses to run while any order of the scope is still open.
type MarkOrdersProcessedCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewMarkOrdersProcessedCommandHandler(uowFactory OrderUoWFactory) MarkOrdersProcessedCommandHandler {
	return MarkOrdersProcessedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of orders that became processed.
func (h *MarkOrdersProcessedCommandHandler) Handle(ctx context.Context, cmd MarkOrdersProcessedCommand) (int, error) {
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

	scope, err := companyScope(ctx, uow.AgentRepository(), cmd.Caller())
	if err != nil {
		return 0, err
	}

	filter := ports.OrderFilter{
		CompanyID:  cmd.CompanyID(),
		DeliveryID: cmd.DeliveryID(),
		From:       cmd.From(),
		To:         cmd.To(),
	}
	if scope != nil {
		if filter.CompanyID != nil && !filter.CompanyID.IsEqual(*scope) {
			return 0, errs.NewObjectNotFoundError("company", filter.CompanyID.String())
		}
		filter.CompanyID = scope
	}

	orders, err := uow.OrderRepository().ListForUpdate(ctx, filter)
	if err != nil {
		return 0, err
	}

	open := 0
	for _, o := range orders {
		if !o.Status().IsSettled() {
			open++
		}
	}
	if open > 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("orders", fmt.Errorf("%d open: %w", open, ErrOrdersNotSettled))
	}

	processed := 0
	for _, o := range orders {
		if o.Status() != order.Delivered || o.IsProcessed() {
			continue
		}
		if err = o.MarkProcessed(); err != nil {
			return 0, err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return 0, err
		}
		processed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return processed, nil
}
