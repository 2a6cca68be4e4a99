// Package actor describes the authenticated caller of a mutation.
package actor

import (
	"fmt"
	"strings"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
)

// Role is the caller's role in the platform.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleCompanyAdmin
	RoleDelivery
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleCompanyAdmin:
		return "COMPANY_ADMIN"
	case RoleDelivery:
		return "DELIVERY"
	default:
		return "UNKNOWN"
	}
}

// ParseRole converts the token claim value into a Role.
func ParseRole(value string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "ADMIN":
		return RoleAdmin, nil
	case "COMPANY_ADMIN":
		return RoleCompanyAdmin, nil
	case "DELIVERY":
		return RoleDelivery, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", value))
	}
}

// Actor is the user performing a mutation. CompanyID is the company the caller
// acts for; agents leave it empty and are resolved through their agent record.
type Actor struct {
	userID    kernel.UUID
	role      Role
	companyID *kernel.UUID
}

// New validates and builds an Actor.
func New(userID kernel.UUID, role Role, companyID *kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if role == RoleUnknown {
		return Actor{}, errs.NewValueIsRequiredError("role")
	}
	if companyID != nil {
		if err := companyID.Validate(); err != nil {
			return Actor{}, err
		}
	}
	return Actor{userID: userID, role: role, companyID: companyID}, nil
}

func (a Actor) UserID() kernel.UUID {
	return a.userID
}

func (a Actor) Role() Role {
	return a.role
}

// CompanyID returns the company the actor is scoped to, if any.
func (a Actor) CompanyID() (kernel.UUID, bool) {
	if a.companyID == nil {
		return kernel.UUID{}, false
	}
	return *a.companyID, true
}

// IsAgent reports whether the actor is a delivery agent.
func (a Actor) IsAgent() bool {
	return a.role == RoleDelivery
}

// Ref returns a pointer to the actor's user id for timeline stamps.
func (a Actor) Ref() *kernel.UUID {
	id := a.userID
	return &id
}

func (a Actor) Validate() error {
	if err := a.userID.Validate(); err != nil {
		return err
	}
	if a.role == RoleUnknown {
		return errs.NewValueIsRequiredError("role")
	}
	return nil
}
