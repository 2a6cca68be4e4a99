// Package agent holds the delivery agent entity: a user that fulfils orders
// for exactly one company and is eligible for order announcements while online.
package agent

import (
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent")

// Agent is a delivery person of a company.
type Agent struct {
	id        kernel.UUID
	userID    kernel.UUID
	companyID kernel.UUID
	online    bool

	guard guard.ConstructorGuard
}

// NewAgent creates an agent bound to a user account and a company.
func NewAgent(id, userID, companyID kernel.UUID, online bool) (*Agent, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), companyID.Validate()); err != nil {
		return nil, err
	}
	return &Agent{
		id:        id,
		userID:    userID,
		companyID: companyID,
		online:    online,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *Agent) ID() kernel.UUID {
	return a.id
}

// UserID is the account notifications are addressed to.
func (a *Agent) UserID() kernel.UUID {
	return a.userID
}

func (a *Agent) CompanyID() kernel.UUID {
	return a.companyID
}

// IsOnline reports the presence flag that gates company-wide announcements.
func (a *Agent) IsOnline() bool {
	return a.online
}

// SetOnline updates the presence flag.
func (a *Agent) SetOnline(online bool) {
	a.online = online
}
