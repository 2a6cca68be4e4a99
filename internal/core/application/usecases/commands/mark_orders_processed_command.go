package commands

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrMarkOrdersProcessedCommandIsNotConstructed = errors.New(
	"MarkOrdersProcessedCommand must be created via NewMarkOrdersProcessedCommand constructor",
)

// MarkOrdersProcessedCommand reconciles the payouts of a company or agent.
// The optional period bounds the creation date of the orders.
type MarkOrdersProcessedCommand struct { //nolint:recvcheck //using for validation
	caller     actor.Actor
	companyID  *kernel.UUID
	deliveryID *kernel.UUID
	from       *time.Time
	to         *time.Time

	guard guard.ConstructorGuard
}

func NewMarkOrdersProcessedCommand(
	caller actor.Actor,
	companyID, deliveryID *kernel.UUID,
	from, to *time.Time,
) (MarkOrdersProcessedCommand, error) {
	var err error
	err = errors.Join(err, caller.Validate())
	if companyID != nil {
		err = errors.Join(err, companyID.Validate())
	}
	if deliveryID != nil {
		err = errors.Join(err, deliveryID.Validate())
	}
	if err != nil {
		return MarkOrdersProcessedCommand{}, err
	}

	return MarkOrdersProcessedCommand{
		caller:     caller,
		companyID:  companyID,
		deliveryID: deliveryID,
		from:       from,
		to:         to,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrdersProcessedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrdersProcessedCommandIsNotConstructed)
}

func (c MarkOrdersProcessedCommand) Caller() actor.Actor      { return c.caller }
func (c MarkOrdersProcessedCommand) CompanyID() *kernel.UUID  { return c.companyID }
func (c MarkOrdersProcessedCommand) DeliveryID() *kernel.UUID { return c.deliveryID }
func (c MarkOrdersProcessedCommand) From() *time.Time         { return c.from }
func (c MarkOrdersProcessedCommand) To() *time.Time           { return c.to }
