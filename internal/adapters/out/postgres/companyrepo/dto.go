// Package companyrepo persists companies and their clients.
package companyrepo

import (
	"courierhub/internal/core/domain/model/client"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CompanyDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null"`
	DeliveryPercent float64   `gorm:"type:numeric(5,2);not null;default:0"`
	ConfirmOrders   bool      `gorm:"not null;default:false"`
}

func (CompanyDTO) TableName() string {
	return "companies"
}

// ClientDTO stores the self-service key as NULL when the client has none so
// the unique index only covers issued keys.
type ClientDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"not null"`
	Key            *string   `gorm:"uniqueIndex"`
	ActiveShipping bool      `gorm:"not null;default:false"`
	ShippingValue  float64   `gorm:"type:numeric(12,2);not null;default:0"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

func companyFromDomain(c *company.Company) CompanyDTO {
	return CompanyDTO{
		ID:              c.ID().Bytes(),
		Name:            c.Name(),
		DeliveryPercent: c.DeliveryPercent().Value(),
		ConfirmOrders:   c.ConfirmOrders(),
	}
}

func companyToDomain(dto CompanyDTO) (*company.Company, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return company.RestoreCompany(id, dto.Name, dto.DeliveryPercent, dto.ConfirmOrders)
}

func clientFromDomain(c *client.Client) ClientDTO {
	dto := ClientDTO{
		ID:             c.ID().Bytes(),
		CompanyID:      c.CompanyID().Bytes(),
		Name:           c.Name(),
		ActiveShipping: c.ActiveShipping(),
		ShippingValue:  c.ShippingValue(),
	}
	if key, ok := c.Key(); ok {
		dto.Key = &key
	}
	return dto
}

func clientToDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	var key string
	if dto.Key != nil {
		key = *dto.Key
	}
	return client.NewClient(id, companyID, dto.Name, key, dto.ActiveShipping, dto.ShippingValue)
}
