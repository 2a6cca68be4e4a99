// Package client holds the customer aggregate of a company, including the
// opaque key that authorizes self-service order creation.
package client

import (
	"errors"
	"fmt"
	"strings"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via NewClient or RestoreClient")

// Client is a customer of a company.
type Client struct {
	id             kernel.UUID
	companyID      kernel.UUID
	name           string
	key            string
	activeShipping bool
	shippingValue  float64

	guard guard.ConstructorGuard
}

// NewClient creates a client. key may be empty when self-service is disabled.
func NewClient(
	id, companyID kernel.UUID,
	name, key string,
	activeShipping bool,
	shippingValue float64,
) (*Client, error) {
	c := &Client{
		key:            strings.TrimSpace(key),
		activeShipping: activeShipping,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setCompanyID(companyID),
		c.setName(name),
		c.setShippingValue(shippingValue),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.guard.Validate(ErrClientIsNotConstructed)
}

func (c *Client) ID() kernel.UUID { return c.id }
func (c *Client) CompanyID() kernel.UUID { return c.companyID }
func (c *Client) Name() string { return c.name }
func (c *Client) ActiveShipping() bool { return c.activeShipping }
func (c *Client) ShippingValue() float64 { return c.shippingValue }

// Key returns the self-service key and whether the client has one.
func (c *Client) Key() (string, bool) {
	return c.key, c.key != ""
}

// SelfServicePricing is the pricing applied to orders the client creates
// through its self-service link.
type SelfServicePricing struct {
	Confirmed   bool
	Shipping    float64
	DeliveryFee float64
}

// SelfServicePricing derives the pricing of a self-service order. Caller
// supplied amounts are never used: with activeShipping the client's own
// shipping value applies, otherwise shipping is zero and the order waits
// for company confirmation.
func (c *Client) SelfServicePricing(rate kernel.Percent) SelfServicePricing {
	if !c.activeShipping {
		return SelfServicePricing{}
	}
	return SelfServicePricing{
		Confirmed:   true,
		Shipping:    c.shippingValue,
		DeliveryFee: rate.Of(c.shippingValue),
	}
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	c.companyID = id
	return nil
}

func (c *Client) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Client) setShippingValue(v float64) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause("shippingValue", fmt.Errorf("%v is negative", v))
	}
	c.shippingValue = v
	return nil
}
