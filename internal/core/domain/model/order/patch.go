package order

import (
	"errors"
	"fmt"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

// Patch is a partial update of an order. Nil fields are left untouched.
type Patch struct {
	Status         *Status
	Total          *float64
	Shipping       *float64
	Notes          *string
	From           *string
	To             *string
	ClientID       *kernel.UUID
	DeliveryID     *kernel.UUID
	CompanyConfirm *bool
}

// Validate rejects malformed patches before any state is touched.
func (p Patch) Validate() error {
	var err error
	if p.Status != nil {
		err = errors.Join(err, p.Status.Validate())
	}
	if p.Total != nil && *p.Total < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%v is negative", *p.Total)))
	}
	if p.Shipping != nil && *p.Shipping < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("shipping", fmt.Errorf("%v is negative", *p.Shipping)))
	}
	if p.ClientID != nil {
		err = errors.Join(err, p.ClientID.Validate())
	}
	if p.DeliveryID != nil {
		err = errors.Join(err, p.DeliveryID.Validate())
	}
	return err
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// pricesShipment reports whether the patch supplies a billable shipping value.
func (p Patch) pricesShipment() bool {
	return p.Shipping != nil && *p.Shipping > 0
}
