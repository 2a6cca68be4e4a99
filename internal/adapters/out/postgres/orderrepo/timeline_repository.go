package orderrepo

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormTimelineRepository implements TimelineRepository using GORM.
type GormTimelineRepository struct {
	db *gorm.DB
}

func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Get loads every event of an order.
func (r *GormTimelineRepository) Get(ctx context.Context, orderID kernel.UUID) (*order.Timeline, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TimelineEventDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*order.TimelineEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return order.NewTimeline(orderID, events)
}

// Add stores one event.
func (r *GormTimelineRepository) Add(ctx context.Context, event *order.TimelineEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	dto := eventFromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Apply deletes the replaced events and inserts the new ones.
func (r *GormTimelineRepository) Apply(ctx context.Context, orderID kernel.UUID, change order.TimelineChange) error {
	if change.IsEmpty() {
		return nil
	}

	db := r.db.WithContext(ctx)
	if change.Removed != order.Unknown {
		if err := db.
			Where("order_id = ? AND status = ?", orderID.Bytes(), change.Removed.String()).
			Delete(&TimelineEventDTO{}).Error; err != nil {
			return err
		}
	}

	if len(change.Added) == 0 {
		return nil
	}

	dtos := make([]TimelineEventDTO, 0, len(change.Added))
	for _, e := range change.Added {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, eventFromDomain(e))
	}
	return db.Create(&dtos).Error
}
