package ports

import (
	"context"

	"courierhub/internal/core/domain/model/client"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
)

type CompanyRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*company.Company, error)
	Update(ctx context.Context, c *company.Company) error
}

type ClientRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)

	// GetByKey resolves a self-service key. Unknown keys return
	// ObjectNotFoundError.
	GetByKey(ctx context.Context, key string) (*client.Client, error)
}
