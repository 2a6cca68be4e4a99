package commands

import (
	"errors"
	"strings"

	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrCreateOrderByClientKeyCommandIsNotConstructed = errors.New(
	"CreateOrderByClientKeyCommand must be created via NewCreateOrderByClientKeyCommand constructor",
)

// CreateOrderByClientKeyCommand represents an order submitted through a
// client's self-service link. Pricing is never taken from the submitter: the
// order carries no total and its shipping comes from the client's terms.
type CreateOrderByClientKeyCommand struct { //nolint:recvcheck //using for validation
	key   string
	notes string
	from  string
	to    string

	guard guard.ConstructorGuard
}

func NewCreateOrderByClientKeyCommand(key, notes, from, to string) (CreateOrderByClientKeyCommand, error) {
	cmd := CreateOrderByClientKeyCommand{
		notes: notes,
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setKey(key); err != nil {
		return CreateOrderByClientKeyCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderByClientKeyCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderByClientKeyCommandIsNotConstructed)
}

func (c CreateOrderByClientKeyCommand) Key() string   { return c.key }
func (c CreateOrderByClientKeyCommand) Notes() string { return c.notes }
func (c CreateOrderByClientKeyCommand) From() string  { return c.from }
func (c CreateOrderByClientKeyCommand) To() string    { return c.to }

func (c *CreateOrderByClientKeyCommand) setKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}
	c.key = key
	return nil
}
