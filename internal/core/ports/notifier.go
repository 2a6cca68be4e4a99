package ports

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
)

// Notifier delivers a push message to the devices of a user. A user without
// registered devices is not an error. Failures are reported as
// TransportFailureError.
type Notifier interface {
	Send(ctx context.Context, userID kernel.UUID, title, body string) error
}

// EventKind names a realtime event published to a company room.
type EventKind string

const (
	EventNewOrder    EventKind = "newOrder"
	EventUpdateOrder EventKind = "updateOrder"
	EventGeneral     EventKind = "general"
)

// Broadcaster publishes events to the live viewers of a company. Publishing
// to a room without subscribers succeeds.
type Broadcaster interface {
	Publish(ctx context.Context, companyID kernel.UUID, kind EventKind, payload any) error
}
