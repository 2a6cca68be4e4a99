package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order with its timeline. A non-nil companyID hides
// orders of other companies.
type GetOrderQuery struct {
	orderID   kernel.UUID
	companyID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, companyID *kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if companyID != nil {
		if err := companyID.Validate(); err != nil {
			return GetOrderQuery{}, err
		}
	}

	return GetOrderQuery{
		orderID:   orderID,
		companyID: companyID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) CompanyID() *kernel.UUID {
	return q.companyID
}

// TimelineEntry is one status event of an order.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	ChangedBy *string   `json:"changedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetOrderQueryResponse is the read model of an order. Timeline is sorted by
// creation time.
type GetOrderQueryResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"companyId"`
	ClientID        *string         `json:"clientId,omitempty"`
	ClientName      string          `json:"clientName,omitempty"`
	DeliveryID      *string         `json:"deliveryId,omitempty"`
	Status          string          `json:"status"`
	Total           float64         `json:"total"`
	Shipping        float64         `json:"shipping"`
	DeliveryFee     float64         `json:"deliveryFee"`
	Confirmed       bool            `json:"confirmed"`
	CompanyConfirm  bool            `json:"companyConfirm"`
	DeliveryConfirm bool            `json:"deliveryConfirm"`
	Processed       bool            `json:"processed"`
	Notes           string          `json:"notes"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	CreatedAt       time.Time       `json:"createdAt"`
	Timeline        []TimelineEntry `json:"timeline"`
}
