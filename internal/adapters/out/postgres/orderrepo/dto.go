// Package orderrepo persists order aggregates and their timelines in postgres.
package orderrepo

import (
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its wire name so reporting queries read it verbatim.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID        *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryID      *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"type:varchar(16);not null;index"`
	Total           float64    `gorm:"type:numeric(12,2);not null;default:0"`
	Shipping        float64    `gorm:"type:numeric(12,2);not null;default:0"`
	DeliveryFee     float64    `gorm:"type:numeric(12,2);not null;default:0"`
	Confirmed       bool       `gorm:"not null;default:false"`
	CompanyConfirm  bool       `gorm:"not null;default:false"`
	DeliveryConfirm bool       `gorm:"not null;default:false"`
	Processed       bool       `gorm:"not null;default:false"`
	Deleted         bool       `gorm:"not null;default:false;index"`
	Notes           string     `gorm:"type:text"`
	From            string     `gorm:"column:from_address"`
	To              string     `gorm:"column:to_address"`
	CreatedAt       time.Time  `gorm:"not null;index"`
	Version         int        `gorm:"not null;default:0"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// TimelineEventDTO is one row of an order timeline.
type TimelineEventDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_timeline_order_status,priority:1"`
	Status    string     `gorm:"type:varchar(16);not null;index:idx_timeline_order_status,priority:2"`
	Note      string     `gorm:"type:text"`
	ChangedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (TimelineEventDTO) TableName() string {
	return "order_timeline"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:              o.ID().Bytes(),
		CompanyID:       o.CompanyID().Bytes(),
		ClientID:        optionalID(o.ClientID()),
		DeliveryID:      optionalID(o.DeliveryID()),
		Status:          o.Status().String(),
		Total:           o.Total(),
		Shipping:        o.Shipping(),
		DeliveryFee:     o.DeliveryFee(),
		Confirmed:       o.IsConfirmed(),
		CompanyConfirm:  o.IsCompanyConfirmed(),
		DeliveryConfirm: o.IsDeliveryConfirmed(),
		Processed:       o.IsProcessed(),
		Deleted:         o.IsDeleted(),
		Notes:           o.Notes(),
		From:            o.From(),
		To:              o.To(),
		CreatedAt:       o.CreatedAt(),
		Version:         o.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := restoreID(dto.ClientID)
	if err != nil {
		return nil, err
	}
	deliveryID, err := restoreID(dto.DeliveryID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		CompanyID:       companyID,
		ClientID:        clientID,
		DeliveryID:      deliveryID,
		Status:          status,
		Total:           dto.Total,
		Shipping:        dto.Shipping,
		DeliveryFee:     dto.DeliveryFee,
		Confirmed:       dto.Confirmed,
		CompanyConfirm:  dto.CompanyConfirm,
		DeliveryConfirm: dto.DeliveryConfirm,
		Processed:       dto.Processed,
		Deleted:         dto.Deleted,
		Notes:           dto.Notes,
		From:            dto.From,
		To:              dto.To,
		CreatedAt:       dto.CreatedAt,
		Version:         dto.Version,
	})
}

func eventFromDomain(e *order.TimelineEvent) TimelineEventDTO {
	return TimelineEventDTO{
		ID:        e.ID().Bytes(),
		OrderID:   e.OrderID().Bytes(),
		Status:    e.Status().String(),
		Note:      e.Note(),
		ChangedBy: optionalID(e.ChangedBy()),
		CreatedAt: e.CreatedAt(),
	}
}

func eventToDomain(dto TimelineEventDTO) (*order.TimelineEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	changedBy, err := restoreID(dto.ChangedBy)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return order.RestoreTimelineEvent(id, orderID, status, dto.Note, changedBy, dto.CreatedAt)
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
