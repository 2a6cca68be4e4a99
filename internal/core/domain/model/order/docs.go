// Package order provides the delivery order aggregate, its status state machine
// and the timeline ledger that audits every status change.
//
// The package includes:
//   - Order: the aggregate root holding status, money fields and confirmation flags
//   - Status: the lifecycle states STARTED, ACCEPTED, RECEIVED, DELIVERED,
//     CANCELED and POSTPOND
//   - Patch: a partial update applied through Order.Apply
//   - Timeline and TimelineEvent: the append-only per-order audit log
//
// Key business rules:
//   - CANCELED is terminal; any later status request fails with InvalidTransition
//   - DELIVERED needs a priced shipment, otherwise MissingBillingInfo
//   - the delivery fee follows shipping at the company's delivery percent
//   - a jump to RECEIVED or DELIVERED backfills the skipped ACCEPTED and RECEIVED
//     events, and re-entering a status replaces its previous event
package order
