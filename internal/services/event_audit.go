package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/SAP-F-2025/academic-records-service/internal/events"
)

// EventAuditor consumes the account event stream and writes an audit line
// for every lifecycle change. It runs on its own goroutine for the life of
// the process.
type EventAuditor struct {
	subscriber message.Subscriber
	logger     *slog.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewEventAuditor(subscriber message.Subscriber, logger *slog.Logger) *EventAuditor {
	return &EventAuditor{
		subscriber: subscriber,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Start subscribes to the account event topic and begins auditing.
func (a *EventAuditor) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	messages, err := a.subscriber.Subscribe(ctx, events.TopicAccountEvents)
	if err != nil {
		return err
	}

	go a.run(messages)
	return nil
}

func (a *EventAuditor) run(messages <-chan *message.Message) {
	defer close(a.done)

	for msg := range messages {
		var event events.Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			a.logger.Warn("discarding malformed account event", "message_id", msg.UUID, "error", err)
			msg.Ack()
			continue
		}

		a.logger.Info("account event",
			"event_id", event.ID,
			"type", event.Type,
			"source", event.Source,
			"timestamp", event.Timestamp)
		msg.Ack()
	}
}

// Stop cancels the subscription and waits for the worker to drain.
func (a *EventAuditor) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
