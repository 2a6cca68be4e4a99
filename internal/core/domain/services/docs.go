// Package services provides domain services that decide across several
// aggregates without owning state of their own.
//
// The package includes:
//   - RecipientResolver: decides which users are told about an order event
//   - Announcement builders: the title and body of each order announcement
package services
