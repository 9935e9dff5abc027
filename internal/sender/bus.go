package sender

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/transport"
	"github.com/groupwarden/groupwarden/internal/types"
)

// OutboundTopic is the single topic outbound chat messages flow through.
const OutboundTopic = "outbound.messages"

// OutboundMessage is one message queued for delivery to a tenant's group.
type OutboundMessage struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Text       string    `json:"text"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Bus decouples notification producers from the chat transport with an
// in-process pub/sub channel. Producers publish and move on; the worker
// drains the topic and pushes through the transport.
type Bus struct {
	pubSub *gochannel.GoChannel
	log    *logger.Logger
}

// NewBus creates the in-process message bus.
func NewBus(log *logger.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NopLogger{},
	)
	return &Bus{pubSub: pubSub, log: log}
}

// Publish enqueues an outbound message.
func (b *Bus) Publish(ctx context.Context, msg *OutboundMessage) error {
	if msg.ID == "" {
		msg.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MESSAGE)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode outbound message").
			Mark(ierr.ErrInternal)
	}

	if err := b.pubSub.Publish(OutboundTopic, message.NewMessage(msg.ID, payload)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to publish outbound message").
			Mark(ierr.ErrInternal)
	}
	return nil
}

// Run consumes the outbound topic and delivers messages through the chat
// transport until ctx is cancelled. Delivery failures are logged and acked;
// the bus gives at-most-once delivery, matching the best-effort nature of
// chat notifications.
func (b *Bus) Run(ctx context.Context, chat transport.ChatTransport) error {
	messages, err := b.pubSub.Subscribe(ctx, OutboundTopic)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to subscribe to outbound topic").
			Mark(ierr.ErrInternal)
	}

	for msg := range messages {
		var outbound OutboundMessage
		if err := json.Unmarshal(msg.Payload, &outbound); err != nil {
			b.log.Errorw("dropping malformed outbound message", "message_id", msg.UUID, "error", err)
			msg.Ack()
			continue
		}

		if err := chat.SendMessage(ctx, outbound.TenantID, outbound.Text); err != nil {
			b.log.Errorw("failed to deliver outbound message",
				"message_id", outbound.ID,
				"tenant_id", outbound.TenantID,
				"error", err)
		}
		msg.Ack()
	}
	return nil
}

// Close shuts down the bus, closing subscriber channels.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
