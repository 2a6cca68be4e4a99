package services

import (
	"courierhub/internal/core/domain/model/actor"
	"courierhub/internal/core/domain/model/agent"
	"courierhub/internal/core/domain/model/client"
	"courierhub/internal/core/domain/model/company"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
)

// RecipientResolver computes the users that must be notified about an order
// event. It holds no state and performs no I/O: callers load the agents and
// pass them in.
//
// Rules:
//   - an order with an assigned agent notifies that agent only
//   - an unassigned order notifies every online agent of its company,
//     optionally narrowed to one pre-targeted agent
//   - staff-created orders are announced only when the creator is not an
//     agent and the company confirms orders on creation
//   - self-service orders are announced only when the client has active
//     shipping
//
// Results are ordered by first appearance and never contain duplicates. An
// empty result is valid and means nothing is sent.
//
// Example:
//
//	resolver := services.NewRecipientResolver()
//	if resolver.AnnounceStaffCreation(caller, company) {
//	    recipients := resolver.ForCompany(company.ID(), onlineAgents, draft.DeliveryID)
//	    dispatcher.Go(ctx, recipients, services.NewOrderFromClient(clientName))
//	}
type RecipientResolver struct{}

// NewRecipientResolver creates a RecipientResolver.
func NewRecipientResolver() RecipientResolver {
	return RecipientResolver{}
}

// ForAssigned returns the user of the assigned agent, or nothing when the
// agent is unknown.
func (RecipientResolver) ForAssigned(assigned *agent.Agent) []kernel.UUID {
	if assigned.Validate() != nil {
		return nil
	}
	return []kernel.UUID{assigned.UserID()}
}

// ForCompany returns the users of the online agents of companyID. When
// narrowTo is set only the agent with that id qualifies.
func (RecipientResolver) ForCompany(companyID kernel.UUID, agents []*agent.Agent, narrowTo *kernel.UUID) []kernel.UUID {
	candidates := make([]kernel.UUID, 0, len(agents))
	for _, a := range agents {
		if a.Validate() != nil || !a.IsOnline() || !a.CompanyID().IsEqual(companyID) {
			continue
		}
		if narrowTo != nil && !a.ID().IsEqual(*narrowTo) {
			continue
		}
		candidates = append(candidates, a.UserID())
	}
	return kernel.DistinctUUIDs(candidates)
}

// ForOrder applies the assignment rule to an existing order: the assigned
// agent when the order has one, otherwise the company's online agents.
// assigned is ignored unless it is the agent named by the order.
func (r RecipientResolver) ForOrder(o *order.Order, assigned *agent.Agent, agents []*agent.Agent) []kernel.UUID {
	if deliveryID := o.DeliveryID(); deliveryID != nil {
		if assigned.Validate() != nil || !assigned.ID().IsEqual(*deliveryID) {
			return nil
		}
		return r.ForAssigned(assigned)
	}
	return r.ForCompany(o.CompanyID(), agents, nil)
}

// AnnounceStaffCreation reports whether orders created by caller for c are
// announced to agents.
func (RecipientResolver) AnnounceStaffCreation(caller actor.Actor, c *company.Company) bool {
	if caller.IsAgent() || c.Validate() != nil {
		return false
	}
	return c.ConfirmOrders()
}

// AnnounceSelfServiceCreation reports whether an order created through the
// self-service link of cl is announced to agents.
func (RecipientResolver) AnnounceSelfServiceCreation(cl *client.Client) bool {
	if cl.Validate() != nil {
		return false
	}
	return cl.ActiveShipping()
}

// AnnounceReassignment reports whether the agent named by a patch must be told
// about the order.
func (RecipientResolver) AnnounceReassignment(caller actor.Actor, upd order.Update) bool {
	return upd.Reassigned && !caller.IsAgent()
}
