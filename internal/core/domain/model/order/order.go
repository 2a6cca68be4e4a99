package order

import (
	"errors"
	"fmt"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsProcessed is the cause attached to transitions attempted on an
	// order whose payout was already reconciled.
	ErrOrderIsProcessed = errors.New("order payout is already processed")
)

// Order is the aggregate root of the delivery lifecycle. It owns the status,
// the financial fields and the confirmation flags of one parcel.
//
// Order follows these invariants:
//   - deliveryFee always equals shipping × company delivery percent / 100, rounded
//     to two decimals, whenever shipping is set
//   - a CANCELED order accepts no status change
//   - DELIVERED requires a priced shipment (shipping > 0)
//   - processed requires DELIVERED, and a processed order keeps its status
//   - a deleted order is invisible to every operation
//
// The timeline of an order is a separate ledger (see Timeline) that Apply
// updates alongside the aggregate.
type Order struct {
	id         kernel.UUID
	companyID  kernel.UUID
	clientID   *kernel.UUID
	deliveryID *kernel.UUID

	status Status

	total       float64
	shipping    float64
	deliveryFee float64

	// confirmed means the financial terms are accepted and agents may act.
	confirmed bool

	// companyConfirm and deliveryConfirm record which side confirmed the
	// latest bulk settlement.
	companyConfirm  bool
	deliveryConfirm bool

	processed bool
	deleted   bool

	notes string
	from  string
	to    string

	createdAt time.Time

	// version is the optimistic lock counter maintained by persistence.
	version int

	guard guard.ConstructorGuard
}

// Draft carries the caller supplied attributes of a new order.
type Draft struct {
	ClientID       *kernel.UUID
	DeliveryID     *kernel.UUID
	Total          float64
	Shipping       float64
	Notes          string
	From           string
	To             string
	Confirmed      bool
	CompanyConfirm bool
}

// NewOrder creates a new order for companyID in the Started status. The delivery
// fee is derived from draft.Shipping and rate.
//
// Example:
//
//	rate, _ := kernel.NewPercent(10)
//	o, err := order.NewOrder(kernel.NewUUID(), companyID, order.Draft{
//	    ClientID:  &clientID,
//	    Total:     120,
//	    Shipping:  20,
//	    Confirmed: true,
//	}, rate, time.Now())
//	// o.DeliveryFee() == 2
func NewOrder(id, companyID kernel.UUID, draft Draft, rate kernel.Percent, createdAt time.Time) (*Order, error) {
	return RestoreOrder(Snapshot{
		ID:             id,
		CompanyID:      companyID,
		ClientID:       draft.ClientID,
		DeliveryID:     draft.DeliveryID,
		Status:         Started,
		Total:          draft.Total,
		Shipping:       draft.Shipping,
		DeliveryFee:    rate.Of(draft.Shipping),
		Confirmed:      draft.Confirmed,
		CompanyConfirm: draft.CompanyConfirm,
		Notes:          draft.Notes,
		From:           draft.From,
		To:             draft.To,
		CreatedAt:      createdAt,
	})
}

// Snapshot is the full persisted state of an order.
type Snapshot struct {
	ID              kernel.UUID
	CompanyID       kernel.UUID
	ClientID        *kernel.UUID
	DeliveryID      *kernel.UUID
	Status          Status
	Total           float64
	Shipping        float64
	DeliveryFee     float64
	Confirmed       bool
	CompanyConfirm  bool
	DeliveryConfirm bool
	Processed       bool
	Deleted         bool
	Notes           string
	From            string
	To              string
	CreatedAt       time.Time
	Version         int
}

// RestoreOrder rebuilds an order from persistence, validating every field.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		confirmed:       s.Confirmed,
		companyConfirm:  s.CompanyConfirm,
		deliveryConfirm: s.DeliveryConfirm,
		processed:       s.Processed,
		deleted:         s.Deleted,
		notes:           s.Notes,
		from:            s.From,
		to:              s.To,
		version:         s.Version,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCompanyID(s.CompanyID),
		o.setClientID(s.ClientID),
		o.setDeliveryID(s.DeliveryID),
		o.setStatus(s.Status),
		o.setAmount("total", &o.total, s.Total),
		o.setAmount("shipping", &o.shipping, s.Shipping),
		o.setAmount("deliveryFee", &o.deliveryFee, s.DeliveryFee),
		o.setCreatedAt(s.CreatedAt),
	); err != nil {
		return nil, err
	}

	if o.processed && o.status != Delivered {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"processed",
			fmt.Errorf("%s orders cannot be processed", o.status),
		)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CompanyID() kernel.UUID {
	return o.companyID
}

// ClientID returns the ordering client, nil when the order has none.
func (o *Order) ClientID() *kernel.UUID {
	return o.clientID
}

// DeliveryID returns the assigned agent, nil while unassigned.
func (o *Order) DeliveryID() *kernel.UUID {
	return o.deliveryID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() float64 {
	return o.total
}

func (o *Order) Shipping() float64 {
	return o.shipping
}

func (o *Order) DeliveryFee() float64 {
	return o.deliveryFee
}

func (o *Order) IsConfirmed() bool {
	return o.confirmed
}

func (o *Order) IsCompanyConfirmed() bool {
	return o.companyConfirm
}

func (o *Order) IsDeliveryConfirmed() bool {
	return o.deliveryConfirm
}

func (o *Order) IsProcessed() bool {
	return o.processed
}

func (o *Order) IsDeleted() bool {
	return o.deleted
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) From() string {
	return o.from
}

func (o *Order) To() string {
	return o.to
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic lock counter the order was loaded with.
func (o *Order) Version() int {
	return o.version
}

// Update describes the outcome of Apply.
type Update struct {
	// From and To are the statuses before and after the patch.
	From Status
	To   Status

	// Timeline is the ledger change to persist; empty when the status did not change.
	Timeline TimelineChange

	// Reassigned is set when the patch named an agent on an order that was
	// already confirmed, meaning the agent must be told about it.
	Reassigned bool
}

// StatusChanged reports whether Apply moved the order to another status.
func (u Update) StatusChanged() bool {
	return u.From != u.To
}

// Apply runs the state machine for one patch.
//
// Checks, in order:
//   - deleted orders fail with ObjectNotFoundError
//   - any status on a CANCELED order fails with InvalidTransitionError
//   - DELIVERED without a positive shipping in either the order or the patch
//     fails with MissingBillingInfoError
//   - a status change on a processed order fails with InvalidTransitionError
//
// On success the fields of the patch are copied, the delivery fee is recomputed
// with rate when shipping is present, and a status change is recorded in timeline
// with actor and at.
//
// Example:
//
//	status := order.Delivered
//	shipping := 25.0
//	upd, err := o.Apply(order.Patch{Status: &status, Shipping: &shipping}, rate, timeline, &actorID, time.Now())
//	if err != nil {
//	    return err
//	}
//	// upd.Timeline.Added holds the backfilled ACCEPTED/RECEIVED events and DELIVERED
func (o *Order) Apply(
	patch Patch,
	rate kernel.Percent,
	timeline *Timeline,
	actor *kernel.UUID,
	at time.Time,
) (Update, error) {
	if err := patch.Validate(); err != nil {
		return Update{}, err
	}
	if o.deleted {
		return Update{}, errs.NewObjectNotFoundError("order", o.id.String())
	}

	upd := Update{From: o.status, To: o.status}

	if patch.Status != nil {
		target := *patch.Status
		if _, err := o.status.TransitionTo(target); err != nil {
			return Update{}, err
		}
		if target == Delivered && o.shipping == 0 && !patch.pricesShipment() {
			return Update{}, errs.NewMissingBillingInfoError(o.id.String())
		}
		if target != o.status && o.processed {
			return Update{}, errs.NewInvalidTransitionErrorWithCause(o.status.String(), target.String(), ErrOrderIsProcessed)
		}
		upd.To = target
	}

	upd.Reassigned = patch.DeliveryID != nil && o.confirmed

	o.applyFields(patch)
	if patch.Shipping != nil {
		o.shipping = *patch.Shipping
		o.deliveryFee = rate.Of(o.shipping)
	}

	if upd.StatusChanged() {
		change, err := timeline.RecordTransition(upd.From, upd.To, actor, at)
		if err != nil {
			return Update{}, err
		}
		upd.Timeline = change
		o.status = upd.To
	}

	return upd, nil
}

// ConfirmByDelivery applies the agent side of a bulk settlement.
func (o *Order) ConfirmByDelivery() {
	o.confirmed = true
	o.deliveryConfirm = true
	o.companyConfirm = false
}

// SettleByCompany applies the company side of a bulk settlement. total and
// shipping are optional; fee is the shared fee computed for the whole batch and
// is only stored together with a shipping value.
func (o *Order) SettleByCompany(total, shipping *float64, fee float64) error {
	if total != nil {
		if err := o.setAmount("total", &o.total, *total); err != nil {
			return err
		}
	}
	if shipping != nil {
		if err := errors.Join(
			o.setAmount("shipping", &o.shipping, *shipping),
			o.setAmount("deliveryFee", &o.deliveryFee, fee),
		); err != nil {
			return err
		}
	}
	o.confirmed = true
	o.companyConfirm = true
	o.deliveryConfirm = false
	return nil
}

// MarkProcessed records that the payout of a delivered order was reconciled.
func (o *Order) MarkProcessed() error {
	if o.status != Delivered {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(),
			Delivered.String(),
			errors.New("only delivered orders can be processed"),
		)
	}
	o.processed = true
	return nil
}

// MarkDeleted soft-deletes the order. Financial records are never removed.
func (o *Order) MarkDeleted() {
	o.deleted = true
}

func (o *Order) applyFields(p Patch) {
	if p.Total != nil {
		o.total = *p.Total
	}
	if p.Notes != nil {
		o.notes = *p.Notes
	}
	if p.From != nil {
		o.from = *p.From
	}
	if p.To != nil {
		o.to = *p.To
	}
	if p.ClientID != nil {
		o.clientID = p.ClientID
	}
	if p.DeliveryID != nil {
		o.deliveryID = p.DeliveryID
	}
	if p.CompanyConfirm != nil {
		o.companyConfirm = *p.CompanyConfirm
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("companyId", err)
	}
	o.companyID = id
	return nil
}

func (o *Order) setClientID(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("clientId", err)
		}
	}
	o.clientID = id
	return nil
}

func (o *Order) setDeliveryID(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("deliveryId", err)
		}
	}
	o.deliveryID = id
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setAmount(name string, field *float64, v float64) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is negative", v))
	}
	*field = v
	return nil
}

func (o *Order) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = at
	return nil
}
