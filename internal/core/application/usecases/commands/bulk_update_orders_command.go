package commands

import (
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var (
	ErrBulkUpdateOrdersCommandIsNotConstructed = errors.New(
		"BulkUpdateOrdersCommand must be created via NewBulkUpdateOrdersCommand constructor",
	)
	ErrNoOrderIDs = errors.New("at least one order id is required")
)

// BulkPatch is the settlement applied to a batch of orders.
//
// With DeliveryConfirm the agent side confirms the batch and the amounts are
// ignored. Otherwise the company settles the batch, optionally rewriting the
// total and shipping of every order.
type BulkPatch struct {
	DeliveryConfirm bool
	Total           *float64
	Shipping        *float64
}

func (p BulkPatch) validate() error {
	var err error
	if p.Total != nil && *p.Total < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%v is negative", *p.Total)))
	}
	if p.Shipping != nil && *p.Shipping < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("shipping", fmt.Errorf("%v is negative", *p.Shipping)))
	}
	return err
}

// BulkUpdateOrdersCommand settles several orders at once. Duplicate ids are
// collapsed.
type BulkUpdateOrdersCommand struct { //nolint:recvcheck //using for validation
	caller actor.Actor
	ids    []kernel.UUID
	patch  BulkPatch

	guard guard.ConstructorGuard
}

func NewBulkUpdateOrdersCommand(caller actor.Actor, ids []kernel.UUID, patch BulkPatch) (BulkUpdateOrdersCommand, error) {
	cmd := BulkUpdateOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	distinct, idsErr := validIDs(ids)
	if err := errors.Join(caller.Validate(), idsErr, patch.validate()); err != nil {
		return BulkUpdateOrdersCommand{}, err
	}

	cmd.caller = caller
	cmd.ids = distinct
	cmd.patch = patch
	return cmd, nil
}

func (c BulkUpdateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateOrdersCommandIsNotConstructed)
}

func (c BulkUpdateOrdersCommand) Caller() actor.Actor {
	return c.caller
}

// IDs returns the distinct order ids in first-seen order.
func (c BulkUpdateOrdersCommand) IDs() []kernel.UUID {
	return c.ids
}

func (c BulkUpdateOrdersCommand) Patch() BulkPatch {
	return c.patch
}

// validIDs rejects an empty or malformed id list and removes duplicates.
func validIDs(ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, ErrNoOrderIDs
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
	}
	return kernel.DistinctUUIDs(ids), nil
}
