package http

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"
)

// Flag is a boolean that clients may send either as a JSON boolean or as the
// text "true"/"false". It is the only place such text is interpreted.
type Flag struct {
	set   bool
	value bool
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Flag{}
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	v, err := parseFlag(raw)
	if err != nil {
		return err
	}
	*f = Flag{set: true, value: v}
	return nil
}

// Ptr returns nil when the flag was not sent.
func (f Flag) Ptr() *bool {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// Bool returns false when the flag was not sent.
func (f Flag) Bool() bool {
	return f.set && f.value
}

func parseFlag(raw string) (bool, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, errs.NewValueIsInvalidErrorWithCause("flag", err)
	}
	return v, nil
}

type OrderItemRequest struct {
	ClientID   *string  `json:"clientId"   validate:"omitempty,uuid"`
	DeliveryID *string  `json:"deliveryId" validate:"omitempty,uuid"`
	Status     *string  `json:"status"`
	Total      float64  `json:"total"      validate:"gte=0"`
	Shipping   *float64 `json:"shipping"   validate:"omitempty,gte=0"`
	Notes      string   `json:"notes"`
	From       string   `json:"from"`
	To         string   `json:"to"`
}

type CreateOrdersRequest struct {
	CompanyID *string            `json:"companyId" validate:"omitempty,uuid"`
	Orders    []OrderItemRequest `json:"orders"    validate:"required,min=1,dive"`
}

func (r CreateOrdersRequest) items() ([]commands.OrderItem, error) {
	items := make([]commands.OrderItem, 0, len(r.Orders))
	for _, o := range r.Orders {
		clientID, err := optionalUUID(o.ClientID)
		if err != nil {
			return nil, err
		}
		deliveryID, err := optionalUUID(o.DeliveryID)
		if err != nil {
			return nil, err
		}
		status := order.Unknown
		if o.Status != nil {
			if status, err = order.ParseStatus(*o.Status); err != nil {
				return nil, err
			}
		}
		var shipping float64
		if o.Shipping != nil {
			shipping = *o.Shipping
		}
		items = append(items, commands.OrderItem{
			ClientID:   clientID,
			DeliveryID: deliveryID,
			Status:     status,
			Total:      o.Total,
			Shipping:   shipping,
			Notes:      o.Notes,
			From:       o.From,
			To:         o.To,
		})
	}
	return items, nil
}

// ClientOrderRequest carries no pricing; the client's terms decide it.
type ClientOrderRequest struct {
	Key   string `json:"key" validate:"required"`
	Notes string `json:"notes"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type UpdateOrderRequest struct {
	Status         *string  `json:"status"`
	Total          *float64 `json:"total"      validate:"omitempty,gte=0"`
	Shipping       *float64 `json:"shipping"   validate:"omitempty,gte=0"`
	Notes          *string  `json:"notes"`
	From           *string  `json:"from"`
	To             *string  `json:"to"`
	ClientID       *string  `json:"clientId"   validate:"omitempty,uuid"`
	DeliveryID     *string  `json:"deliveryId" validate:"omitempty,uuid"`
	CompanyConfirm Flag     `json:"companyConfirm"`
}

func (r UpdateOrderRequest) patch() (order.Patch, error) {
	p := order.Patch{
		Total:          r.Total,
		Shipping:       r.Shipping,
		Notes:          r.Notes,
		From:           r.From,
		To:             r.To,
		CompanyConfirm: r.CompanyConfirm.Ptr(),
	}
	if r.Status != nil {
		s, err := order.ParseStatus(*r.Status)
		if err != nil {
			return order.Patch{}, err
		}
		p.Status = &s
	}

	var err error
	if p.ClientID, err = optionalUUID(r.ClientID); err != nil {
		return order.Patch{}, err
	}
	if p.DeliveryID, err = optionalUUID(r.DeliveryID); err != nil {
		return order.Patch{}, err
	}
	return p, nil
}

type BulkUpdateRequest struct {
	IDs             []string `json:"ids"      validate:"required,min=1,dive,uuid"`
	DeliveryConfirm Flag     `json:"deliveryConfirm"`
	Total           *float64 `json:"total"    validate:"omitempty,gte=0"`
	Shipping        *float64 `json:"shipping" validate:"omitempty,gte=0"`
}

type IDsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

type ProcessedRequest struct {
	CompanyID  *string    `json:"companyId"  validate:"omitempty,uuid"`
	DeliveryID *string    `json:"deliveryId" validate:"omitempty,uuid"`
	From       *time.Time `json:"from"`
	To         *time.Time `json:"to"`
}

type PolicyRequest struct {
	ConfirmOrders   Flag     `json:"confirmOrders"`
	DeliveryPercent *float64 `json:"deliveryPercent" validate:"omitempty,gte=0,lte=100"`
}

type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type OrderResponse struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"companyId"`
	ClientID        *string   `json:"clientId,omitempty"`
	DeliveryID      *string   `json:"deliveryId,omitempty"`
	Status          string    `json:"status"`
	Total           float64   `json:"total"`
	Shipping        float64   `json:"shipping"`
	DeliveryFee     float64   `json:"deliveryFee"`
	Confirmed       bool      `json:"confirmed"`
	CompanyConfirm  bool      `json:"companyConfirm"`
	DeliveryConfirm bool      `json:"deliveryConfirm"`
	Processed       bool      `json:"processed"`
	Notes           string    `json:"notes"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID().String(),
		CompanyID:       o.CompanyID().String(),
		ClientID:        idString(o.ClientID()),
		DeliveryID:      idString(o.DeliveryID()),
		Status:          o.Status().String(),
		Total:           o.Total(),
		Shipping:        o.Shipping(),
		DeliveryFee:     o.DeliveryFee(),
		Confirmed:       o.IsConfirmed(),
		CompanyConfirm:  o.IsCompanyConfirmed(),
		DeliveryConfirm: o.IsDeliveryConfirmed(),
		Processed:       o.IsProcessed(),
		Notes:           o.Notes(),
		From:            o.From(),
		To:              o.To(),
		CreatedAt:       o.CreatedAt(),
	}
}

type PolicyResponse struct {
	CompanyID       string  `json:"companyId"`
	ConfirmOrders   bool    `json:"confirmOrders"`
	DeliveryPercent float64 `json:"deliveryPercent"`
}

func toPolicyResponse(c *company.Company) PolicyResponse {
	return PolicyResponse{
		CompanyID:       c.ID().String(),
		ConfirmOrders:   c.ConfirmOrders(),
		DeliveryPercent: c.DeliveryPercent().Value(),
	}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return &id, nil
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids, err := kernel.UUIDsFromStrings(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("ids", err)
	}
	return ids, nil
}
