// Package agentrepo reads delivery agents from postgres.
package agentrepo

import (
	"context"
	"errors"

	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_deliveries_company_online,priority:1"`
	Online    bool      `gorm:"not null;default:false;index:idx_deliveries_company_online,priority:2"`
	// Deleted mirrors the soft delete of the agent's user account. Deleted
	// agents are invisible to every read.
	Deleted   bool      `gorm:"not null;default:false"`
}

func (AgentDTO) TableName() string {
	return "deliveries"
}

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Add saves a new agent.
func (r *GormAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}
	dto := fromDomain(a)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "delivery", id, "id = ?")
}

func (r *GormAgentRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "delivery of user", userID, "user_id = ?")
}

// ListOnline returns the online agents of a company.
func (r *GormAgentRepository) ListOnline(ctx context.Context, companyID kernel.UUID) ([]*agent.Agent, error) {
	if err := companyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AgentDTO
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND online = ? AND deleted = ?", companyID.Bytes(), true, false).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func (r *GormAgentRepository) first(ctx context.Context, param string, id kernel.UUID, where string) (*agent.Agent, error) {
	var dto AgentDTO
	if err := r.db.WithContext(ctx).Where("deleted = ?", false).First(&dto, where, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func fromDomain(a *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:        a.ID().Bytes(),
		UserID:    a.UserID().Bytes(),
		CompanyID: a.CompanyID().Bytes(),
		Online:    a.IsOnline(),
	}
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}
	return agent.NewAgent(id, userID, companyID, dto.Online)
}
