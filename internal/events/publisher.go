package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	// TopicAccountEvents carries every account lifecycle event
	TopicAccountEvents = "account.events"

	EventAccountProvisioned = "account.provisioned"
	EventAccountActivated   = "account.activated"
	EventPasswordChanged    = "account.password_changed"

	eventSource  = "academic-records-service"
	eventVersion = "1.0"
)

// Event is the envelope published for every account lifecycle change
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with identity and timing filled in
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// AccountProvisionedEvent is emitted after an admin provisions a student
// account. The temporary password travels only over the notifier boundary.
type AccountProvisionedEvent struct {
	UserID            uint   `json:"user_id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	TemporaryPassword string `json:"-"`
}

// AccountActivatedEvent is emitted when a provisioned account is activated
type AccountActivatedEvent struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// PasswordChangedEvent is emitted after a successful password rotation
type PasswordChangedEvent struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// EventPublisher publishes account lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// ===== GOCHANNEL PUBLISHER =====

// GoChannelEventPublisher is the default in-process bus. Subscribers (the
// audit worker) run on their own goroutines, off the request path.
type GoChannelEventPublisher struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

func NewGoChannelEventPublisher(logger *slog.Logger) *GoChannelEventPublisher {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)

	return &GoChannelEventPublisher{
		pubSub: pubSub,
		logger: logger,
	}
}

func (p *GoChannelEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	if err := p.pubSub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

// Subscribe returns the message stream for a topic
func (p *GoChannelEventPublisher) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, topic)
}

func (p *GoChannelEventPublisher) Close() error {
	return p.pubSub.Close()
}

// ===== KAFKA PUBLISHER =====

// KafkaEventPublisher mirrors account events onto Kafka for downstream
// services. Enabled only when brokers are configured.
type KafkaEventPublisher struct {
	publisher *kafka.Publisher
	logger    *slog.Logger
}

func NewKafkaEventPublisher(brokers []string, logger *slog.Logger) (*KafkaEventPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish event to kafka: %w", err)
	}

	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// ===== FANOUT PUBLISHER =====

// FanoutEventPublisher publishes to every configured publisher; the first
// error is returned after all publishers were attempted.
type FanoutEventPublisher struct {
	publishers []EventPublisher
}

func NewFanoutEventPublisher(publishers ...EventPublisher) *FanoutEventPublisher {
	return &FanoutEventPublisher{publishers: publishers}
}

func (p *FanoutEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	var firstErr error
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, topic, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *FanoutEventPublisher) Close() error {
	var firstErr error
	for _, pub := range p.publishers {
		if err := pub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ===== MOCK PUBLISHER =====

// MockEventPublisher records published events for tests
type MockEventPublisher struct {
	mu     sync.Mutex
	events []*Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) Publish(ctx context.Context, topic string, event *Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	p.logger.Debug("mock event published", "topic", topic, "type", event.Type)
	return nil
}

func (p *MockEventPublisher) GetPublishedEvents() []*Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := make([]*Event, len(p.events))
	copy(result, p.events)
	return result
}

func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = nil
}

func (p *MockEventPublisher) Close() error {
	return nil
}
