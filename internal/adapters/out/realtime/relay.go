package realtime

import (
	"context"
	"strings"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/metrics"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const channelPrefix = "orders:"

// RedisRelay publishes events through Redis so that viewers connected to any
// instance receive them. Run delivers the relayed events to the local hub.
type RedisRelay struct {
	client *redis.Client
	local  *Hub
	log    *zap.Logger
}

func NewRedisRelay(client *redis.Client, local *Hub, log *zap.Logger) *RedisRelay {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisRelay{
		client: client,
		local:  local,
		log:    log.With(zap.String("component", "realtime-relay")),
	}
}

// Publish sends the event to every instance, this one included.
func (r *RedisRelay) Publish(ctx context.Context, companyID kernel.UUID, kind ports.EventKind, payload any) error {
	room := RoomName(companyID)
	data, err := encode(room, kind, payload)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, channelPrefix+room, data).Err(); err != nil {
		return errs.NewTransportFailureError("redis", room, err)
	}
	metrics.RealtimeEventsTotal.WithLabelValues(string(kind)).Inc()
	return nil
}

// Run forwards relayed events to the local hub until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.PSubscribe(ctx, channelPrefix+roomPrefix+"*")
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			room := strings.TrimPrefix(msg.Channel, channelPrefix)
			n := r.local.Deliver(room, []byte(msg.Payload))
			r.log.Debug("relayed event delivered", zap.String("room", room), zap.Int("connections", n))
		}
	}
}
