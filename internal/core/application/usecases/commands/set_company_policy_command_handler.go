package commands

import (
	"context"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// PolicyEvent is the realtime payload sent when company settings change.
type PolicyEvent struct {
	CompanyID       string  `json:"companyId"`
	ConfirmOrders   bool    `json:"confirmOrders"`
	DeliveryPercent float64 `json:"deliveryPercent"`
}

// SetCompanyPolicyCommandHandler updates company settings and tells the
// company room about it.
type SetCompanyPolicyCommandHandler struct {
	uowFactory CompanyUoWFactory
	effects    SideEffects
}

func NewSetCompanyPolicyCommandHandler(uowFactory CompanyUoWFactory, effects SideEffects) SetCompanyPolicyCommandHandler {
	return SetCompanyPolicyCommandHandler{
		uowFactory: uowFactory,
		effects:    effects,
	}
}

func (h *SetCompanyPolicyCommandHandler) Handle(ctx context.Context, cmd SetCompanyPolicyCommand) (*company.Company, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	caller := cmd.Caller()
	if caller.Role() != actor.RoleAdmin {
		if own, ok := caller.CompanyID(); !ok || !own.IsEqual(cmd.CompanyID()) {
			return nil, errs.NewObjectNotFoundError("company", cmd.CompanyID().String())
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CompanyRepository().Get(ctx, cmd.CompanyID())
	if err != nil {
		return nil, err
	}

	if v := cmd.DeliveryPercent(); v != nil {
		if err = c.SetDeliveryPercent(*v); err != nil {
			return nil, err
		}
	}
	if v := cmd.ConfirmOrders(); v != nil {
		c.SetConfirmOrders(*v)
	}

	if err = uow.CompanyRepository().Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.effects.broadcast(ctx, c.ID(), ports.EventGeneral, PolicyEvent{
		CompanyID:       c.ID().String(),
		ConfirmOrders:   c.ConfirmOrders(),
		DeliveryPercent: c.DeliveryPercent().Value(),
	})

	return c, nil
}
