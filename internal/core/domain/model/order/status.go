package order

import (
	"fmt"
	"strings"

	"courierhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	STARTED ──> ACCEPTED ──> RECEIVED ──> DELIVERED
//	   │            │            │
//	   └────────────┴────────────┴──> CANCELED (terminal)
//	                                  POSTPOND
//
// The forward path is the expected one, but operators may move a non-canceled
// order to any other status; skipped intermediate steps are backfilled into the
// timeline (see Timeline.RecordTransition). CANCELED is terminal.
//
// The string forms are part of the wire contract and are transmitted verbatim.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Started is the initial status of every new order.
	Started

	// Accepted means an agent took the order.
	Accepted

	// Received means the agent picked the parcel up.
	Received

	// Delivered means the parcel reached the recipient. It requires a priced shipment.
	Delivered

	// Canceled is terminal: no further status changes are accepted.
	Canceled

	// Postponed parks a non-terminal order. Its wire form is "POSTPOND".
	Postponed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Started:   "STARTED",
		Accepted:  "ACCEPTED",
		Received:  "RECEIVED",
		Delivered: "DELIVERED",
		Canceled:  "CANCELED",
		Postponed: "POSTPOND",
	}
}

// AllStatuses lists every valid status in lifecycle order. Statistics use it to
// zero-fill the status histogram.
func AllStatuses() []Status {
	return []Status{Started, Accepted, Received, Delivered, Canceled, Postponed}
}

// ParseStatus converts a wire value such as "DELIVERED" into a Status.
// Matching is case-insensitive; unknown values yield a ValueIsInvalidError.
//
// Example:
//
//	s, err := order.ParseStatus("received")
//	// s == order.Received
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, s := range AllStatuses() {
		if s.String() == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", value),
	)
}

// Validate reports whether s is one of the known lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Postponed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Canceled
}

// IsSettled reports whether the order reached an end state that payouts can
// be reconciled against (DELIVERED or CANCELED).
func (s Status) IsSettled() bool {
	return s == Delivered || s == Canceled
}

// TransitionTo validates a status change from s to target.
//
// Returns:
//   - (target, nil) when the change is allowed
//   - an InvalidTransitionError when s is terminal
//   - a ValueIsInvalidError when target is not a valid status
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}

// Prerequisites returns the intermediate statuses that must appear in a timeline
// before target, in the order they are backfilled.
//
//	RECEIVED  -> [ACCEPTED]
//	DELIVERED -> [ACCEPTED, RECEIVED]
func (s Status) Prerequisites() []Status {
	switch s {
	case Received:
		return []Status{Accepted}
	case Delivered:
		return []Status{Accepted, Received}
	default:
		return nil
	}
}
