package postgres

import (
	"courierhub/internal/adapters/out/postgres/agentrepo"
	"courierhub/internal/adapters/out/postgres/companyrepo"
	"courierhub/internal/adapters/out/postgres/notificationrepo"
	"courierhub/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Tables lists the truncatable tables in dependency-free order.
var Tables = []string{
	"orders",
	"order_timeline",
	"companies",
	"clients",
	"deliveries",
	"notifications",
	"push_tokens",
}

// Models returns every persisted DTO.
func Models() []any {
	return []any{
		&companyrepo.CompanyDTO{},
		&companyrepo.ClientDTO{},
		&agentrepo.AgentDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.TimelineEventDTO{},
		&notificationrepo.NotificationDTO{},
		&notificationrepo.PushTokenDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
