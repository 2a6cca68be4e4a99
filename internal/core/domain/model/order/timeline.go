package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

const (
	// CreatedNote is the note of the first event of every order.
	CreatedNote = "Order created"

	// backfillStep separates consecutive events written by one transition so
	// that ascending createdAt order equals insertion order.
	backfillStep = time.Millisecond
)

var ErrTimelineEventIsNotConstructed = errors.New(
	"TimelineEvent must be created via NewTimelineEvent or RestoreTimelineEvent",
)

// TransitionNote renders the note stamped on every event written by a status change.
func TransitionNote(from, to Status) string {
	return fmt.Sprintf("Status changed from %s → %s", from, to)
}

// TimelineEvent is one immutable entry of an order's audit log.
type TimelineEvent struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	note      string
	changedBy *kernel.UUID
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewTimelineEvent creates a fresh event. changedBy is nil for system-written
// events such as self-service creation.
func NewTimelineEvent(
	orderID kernel.UUID,
	status Status,
	note string,
	changedBy *kernel.UUID,
	createdAt time.Time,
) (*TimelineEvent, error) {
	return RestoreTimelineEvent(kernel.NewUUID(), orderID, status, note, changedBy, createdAt)
}

// RestoreTimelineEvent rebuilds an event from persistence.
func RestoreTimelineEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	status Status,
	note string,
	changedBy *kernel.UUID,
	createdAt time.Time,
) (*TimelineEvent, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if changedBy != nil {
		if err := changedBy.Validate(); err != nil {
			return nil, err
		}
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &TimelineEvent{
		id:        id,
		orderID:   orderID,
		status:    status,
		note:      note,
		changedBy: changedBy,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (e *TimelineEvent) Validate() error {
	if e == nil {
		return ErrTimelineEventIsNotConstructed
	}
	return e.guard.Validate(ErrTimelineEventIsNotConstructed)
}

// ID returns the event identifier.
func (e *TimelineEvent) ID() kernel.UUID {
	return e.id
}

// OrderID returns the owning order.
func (e *TimelineEvent) OrderID() kernel.UUID {
	return e.orderID
}

// Status returns the status the event records.
func (e *TimelineEvent) Status() Status {
	return e.status
}

// Note returns the free-text note.
func (e *TimelineEvent) Note() string {
	return e.note
}

// ChangedBy returns the acting user, nil for system-written events.
func (e *TimelineEvent) ChangedBy() *kernel.UUID {
	return e.changedBy
}

// CreatedAt returns when the event was recorded.
func (e *TimelineEvent) CreatedAt() time.Time {
	return e.createdAt
}

// TimelineChange is what a transition did to the ledger. Persistence applies it
// by deleting every stored event with status Removed and inserting Added.
type TimelineChange struct {
	Removed Status
	Added   []*TimelineEvent
}

// IsEmpty reports whether the change has nothing to persist.
func (c TimelineChange) IsEmpty() bool {
	return c.Removed == Unknown && len(c.Added) == 0
}

// Timeline is the append-only event log of one order, kept in ascending
// createdAt order.
//
// Invariants:
//   - every event belongs to the timeline's order
//   - after RecordTransition at most one event exists for the target status
//   - events added by one transition have strictly increasing createdAt values,
//     all later than any event already present
type Timeline struct {
	orderID kernel.UUID
	events  []*TimelineEvent
}

// NewTimeline wraps the stored events of an order.
func NewTimeline(orderID kernel.UUID, events []*TimelineEvent) (*Timeline, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	sorted := make([]*TimelineEvent, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if !e.orderID.IsEqual(orderID) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"timeline event",
				fmt.Errorf("event %s belongs to order %s", e.id, e.orderID),
			)
		}
		sorted = append(sorted, e)
	}
	slices.SortStableFunc(sorted, func(a, b *TimelineEvent) int {
		return a.createdAt.Compare(b.createdAt)
	})

	return &Timeline{orderID: orderID, events: sorted}, nil
}

// Events returns the events in ascending createdAt order.
func (t *Timeline) Events() []*TimelineEvent {
	return slices.Clone(t.events)
}

// Has reports whether at least one event with status s exists.
func (t *Timeline) Has(s Status) bool {
	return slices.ContainsFunc(t.events, func(e *TimelineEvent) bool { return e.status == s })
}

// RecordCreation appends the first event of a new order.
func (t *Timeline) RecordCreation(status Status, actor *kernel.UUID, at time.Time) (*TimelineEvent, error) {
	event, err := NewTimelineEvent(t.orderID, status, CreatedNote, actor, at)
	if err != nil {
		return nil, err
	}
	t.events = append(t.events, event)
	return event, nil
}

// RecordTransition applies the ledger rules of a status change from -> to:
//
//  1. every existing event for to is removed
//  2. missing prerequisites of to are appended (ACCEPTED, then RECEIVED)
//  3. the event for to is appended
//
// Each appended event is stamped with actor and TransitionNote(from, to).
//
// Example:
//
//	// timeline holds [STARTED, RECEIVED]
//	change, _ := timeline.RecordTransition(order.Received, order.Delivered, &actorID, now)
//	// change.Removed == order.Delivered
//	// change.Added   == [ACCEPTED, DELIVERED]
//	// timeline now   == [STARTED, RECEIVED, ACCEPTED, DELIVERED]
func (t *Timeline) RecordTransition(from, to Status, actor *kernel.UUID, at time.Time) (TimelineChange, error) {
	if err := to.Validate(); err != nil {
		return TimelineChange{}, err
	}

	t.events = slices.DeleteFunc(t.events, func(e *TimelineEvent) bool { return e.status == to })

	steps := make([]Status, 0, 3)
	for _, p := range to.Prerequisites() {
		if !t.Has(p) {
			steps = append(steps, p)
		}
	}
	steps = append(steps, to)

	stamp := t.nextStamp(at)
	note := TransitionNote(from, to)
	change := TimelineChange{Removed: to, Added: make([]*TimelineEvent, 0, len(steps))}
	for _, s := range steps {
		event, err := NewTimelineEvent(t.orderID, s, note, actor, stamp)
		if err != nil {
			return TimelineChange{}, err
		}
		change.Added = append(change.Added, event)
		t.events = append(t.events, event)
		stamp = stamp.Add(backfillStep)
	}

	return change, nil
}

// nextStamp returns at, or the instant right after the newest event when the
// clock is behind it.
func (t *Timeline) nextStamp(at time.Time) time.Time {
	if n := len(t.events); n > 0 {
		if last := t.events[n-1].createdAt; !at.After(last) {
			return last.Add(backfillStep)
		}
	}
	return at
}
