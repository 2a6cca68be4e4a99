package commands

import (
	"context"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// companyScope returns the company the caller is restricted to, or nil for
// platform admins. Agents are scoped through their agent record.
func companyScope(ctx context.Context, agents ports.AgentRepository, caller actor.Actor) (*kernel.UUID, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	switch {
	case caller.IsAgent():
		a, err := agents.GetByUserID(ctx, caller.UserID())
		if err != nil {
			return nil, err
		}
		id := a.CompanyID()
		return &id, nil
	case caller.Role() == actor.RoleAdmin:
		return nil, nil
	default:
		id, ok := caller.CompanyID()
		if !ok {
			return nil, errs.NewValueIsRequiredError("companyId")
		}
		return &id, nil
	}
}

// ensureInScope hides orders of other companies.
func ensureInScope(scope *kernel.UUID, o *order.Order) error {
	if scope != nil && !scope.IsEqual(o.CompanyID()) {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	return nil
}
