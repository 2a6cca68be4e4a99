package ports

import (
	"context"

	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/kernel"
)

// AgentRepository reads delivery agents.
type AgentRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetByUserID finds the agent record of a user account.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error)

	// ListOnline returns the online agents of a company.
	ListOnline(ctx context.Context, companyID kernel.UUID) ([]*agent.Agent, error)
}
