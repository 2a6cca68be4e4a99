package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrSetCompanyPolicyCommandIsNotConstructed = errors.New(
	"SetCompanyPolicyCommand must be created via NewSetCompanyPolicyCommand constructor",
)

// SetCompanyPolicyCommand changes how a company confirms and prices orders.
// Nil fields are left untouched.
type SetCompanyPolicyCommand struct { //nolint:recvcheck //using for validation
	caller          actor.Actor
	companyID       kernel.UUID
	confirmOrders   *bool
	deliveryPercent *float64

	guard guard.ConstructorGuard
}

func NewSetCompanyPolicyCommand(
	caller actor.Actor,
	companyID kernel.UUID,
	confirmOrders *bool,
	deliveryPercent *float64,
) (SetCompanyPolicyCommand, error) {
	if err := errors.Join(caller.Validate(), companyID.Validate()); err != nil {
		return SetCompanyPolicyCommand{}, err
	}
	if confirmOrders == nil && deliveryPercent == nil {
		return SetCompanyPolicyCommand{}, errs.NewValueIsRequiredError("confirmOrders or deliveryPercent")
	}
	if caller.IsAgent() {
		return SetCompanyPolicyCommand{}, errs.NewValueIsInvalidError("role")
	}

	return SetCompanyPolicyCommand{
		caller:          caller,
		companyID:       companyID,
		confirmOrders:   confirmOrders,
		deliveryPercent: deliveryPercent,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c SetCompanyPolicyCommand) Validate() error {
	return c.guard.Validate(ErrSetCompanyPolicyCommandIsNotConstructed)
}

func (c SetCompanyPolicyCommand) Caller() actor.Actor       { return c.caller }
func (c SetCompanyPolicyCommand) CompanyID() kernel.UUID    { return c.companyID }
func (c SetCompanyPolicyCommand) ConfirmOrders() *bool      { return c.confirmOrders }
func (c SetCompanyPolicyCommand) DeliveryPercent() *float64 { return c.deliveryPercent }
