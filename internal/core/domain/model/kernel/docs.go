// Package kernel provides the shared domain primitives of courierhub.
//
// The package includes:
//   - UUID: the opaque identifier used by every aggregate (orders, companies,
//     clients, agents, users, notifications)
//   - Percent: a validated share in [0, 100] used for delivery fee splits
//   - RoundAmount: the two-decimal rounding applied to every derived money amount
//
// All values are immutable and safe for concurrent use.
package kernel
