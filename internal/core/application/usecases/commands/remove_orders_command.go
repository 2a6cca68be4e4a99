package commands

import (
	"errors"

	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrRemoveOrdersCommandIsNotConstructed = errors.New(
	"RemoveOrdersCommand must be created via NewRemoveOrderCommand or NewRemoveOrdersCommand constructor",
)

// RemoveOrdersCommand soft-deletes one or more orders. Financial records stay
// in storage but disappear from every read and write path.
type RemoveOrdersCommand struct { //nolint:recvcheck //using for validation
	caller actor.Actor
	ids    []kernel.UUID
	single bool

	guard guard.ConstructorGuard
}

// NewRemoveOrderCommand removes a single order.
func NewRemoveOrderCommand(caller actor.Actor, id kernel.UUID) (RemoveOrdersCommand, error) {
	cmd, err := NewRemoveOrdersCommand(caller, []kernel.UUID{id})
	if err != nil {
		return RemoveOrdersCommand{}, err
	}
	cmd.single = true
	return cmd, nil
}

func NewRemoveOrdersCommand(caller actor.Actor, ids []kernel.UUID) (RemoveOrdersCommand, error) {
	distinct, idsErr := validIDs(ids)
	if err := errors.Join(caller.Validate(), idsErr); err != nil {
		return RemoveOrdersCommand{}, err
	}

	return RemoveOrdersCommand{
		caller: caller,
		ids:    distinct,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemoveOrdersCommandIsNotConstructed)
}

func (c RemoveOrdersCommand) Caller() actor.Actor {
	return c.caller
}

func (c RemoveOrdersCommand) IDs() []kernel.UUID {
	return c.ids
}
