package companyrepo

import (
	"context"
	"errors"
	"strings"

	"courierhub/internal/core/domain/model/client"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM.
type GormCompanyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCompanyRepository(db *gorm.DB, tracker aggregateTracker) *GormCompanyRepository {
	return &GormCompanyRepository{db: db, tracker: tracker}
}

// Add saves a new company.
func (r *GormCompanyRepository) Add(ctx context.Context, c *company.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dto := companyFromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

// Update saves the policy fields of a company.
func (r *GormCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := companyFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CompanyDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "delivery_percent", "confirm_orders").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("company", c.ID().String())
	}

	r.tracker.TrackAggregate(c.ID(), c)
	return nil
}

func (r *GormCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*company.Company, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CompanyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("company", id.String())
		}
		return nil, err
	}
	return companyToDomain(dto)
}

// GormClientRepository implements ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Add saves a new client.
func (r *GormClientRepository) Add(ctx context.Context, c *client.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dto := clientFromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client", id.String())
		}
		return nil, err
	}
	return clientToDomain(dto)
}

// GetByKey resolves a self-service key.
func (r *GormClientRepository) GetByKey(ctx context.Context, key string) (*client.Client, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}

	var dto ClientDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client", "by key")
		}
		return nil, err
	}
	return clientToDomain(dto)
}
