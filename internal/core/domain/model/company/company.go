// Package company holds the tenant aggregate that owns orders, agents and
// clients, together with the two policies the order lifecycle reads:
// the delivery fee split and whether new orders need company confirmation.
package company

import (
	"errors"
	"strings"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrCompanyIsNotConstructed = errors.New("Company must be created via NewCompany or RestoreCompany")

// Company is a tenant of the platform.
type Company struct {
	id              kernel.UUID
	name            string
	deliveryPercent kernel.Percent
	confirmOrders   bool

	guard guard.ConstructorGuard
}

// NewCompany creates a company with the given fee split and confirmation policy.
func NewCompany(id kernel.UUID, name string, deliveryPercent float64, confirmOrders bool) (*Company, error) {
	c := &Company{
		confirmOrders: confirmOrders,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.SetDeliveryPercent(deliveryPercent),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCompany rebuilds a company from persistence.
func RestoreCompany(id kernel.UUID, name string, deliveryPercent float64, confirmOrders bool) (*Company, error) {
	return NewCompany(id, name, deliveryPercent, confirmOrders)
}

func (c *Company) Validate() error {
	if c == nil {
		return ErrCompanyIsNotConstructed
	}
	return c.guard.Validate(ErrCompanyIsNotConstructed)
}

func (c *Company) ID() kernel.UUID {
	return c.id
}

func (c *Company) Name() string {
	return c.name
}

// DeliveryPercent is the share of shipping paid out to the delivering agent.
func (c *Company) DeliveryPercent() kernel.Percent {
	return c.deliveryPercent
}

// ConfirmOrders reports whether orders created by the company side start
// confirmed and are announced to agents.
func (c *Company) ConfirmOrders() bool {
	return c.confirmOrders
}

// DeliveryFee computes the agent share for a shipping amount.
func (c *Company) DeliveryFee(shipping float64) float64 {
	return c.deliveryPercent.Of(shipping)
}

// SetDeliveryPercent changes the fee split. Existing orders keep their fee.
func (c *Company) SetDeliveryPercent(v float64) error {
	p, err := kernel.NewPercent(v)
	if err != nil {
		return err
	}
	c.deliveryPercent = p
	return nil
}

// SetConfirmOrders changes the confirmation policy.
func (c *Company) SetConfirmOrders(v bool) {
	c.confirmOrders = v
}

func (c *Company) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Company) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
