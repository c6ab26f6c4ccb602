package events

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/draftea/feature-showcase/shared/models"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic")
	ErrInvalidReceiver = errors.New("receiver should be a pointer")
)

// Topic is a dot separated event name. Patterns may use "*" for one segment,
// a lone "#" for everything, or a leading/trailing "#" for suffix/prefix matches.
type Topic string

func NewTopic(topic string) (Topic, error) {
	if strings.TrimSpace(topic) == "" {
		return "", ErrInvalidTopic
	}
	return Topic(topic), nil
}

func (t Topic) String() string {
	return string(t)
}

// Matches reports whether t satisfies pattern
func (t Topic) Matches(pattern Topic) bool {
	p := pattern.String()
	switch {
	case p == "" || p == "#":
		return true
	case len(p) > 1 && strings.HasPrefix(p, "#") && strings.HasSuffix(p, "#"):
		return strings.Contains(t.String(), strings.Trim(p, "#"))
	case strings.HasPrefix(p, "#"):
		return strings.HasSuffix(t.String(), strings.TrimPrefix(p, "#"))
	case strings.HasSuffix(p, "#"):
		return strings.HasPrefix(t.String(), strings.TrimSuffix(p, "#"))
	}

	patternParts := strings.Split(p, ".")
	topicParts := strings.Split(t.String(), ".")
	if len(patternParts) != len(topicParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != topicParts[i] {
			return false
		}
	}
	return true
}

// Metadata represents event metadata
type Metadata map[string]string

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores a value. The receiver must be non-nil.
func (m Metadata) Set(key string, value string) {
	m[key] = value
}

// Matches reports whether every entry of o is present in m
func (m Metadata) Matches(o Metadata) bool {
	for k, v := range o {
		if m[k] != v {
			return false
		}
	}
	return true
}

func (m Metadata) Clone() Metadata {
	clone := make(Metadata, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Event represents a domain event
type Event struct {
	ID            models.ID   `json:"id"`
	AggregateID   models.ID   `json:"aggregate_id"`
	Topic         Topic       `json:"topic"`
	EventType     string      `json:"event_type"`
	Version       string      `json:"version"`
	Data          interface{} `json:"data"`
	Metadata      Metadata    `json:"metadata"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID models.ID   `json:"correlation_id,omitempty"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// Subscriber subscribes to events
type Subscriber interface {
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error
}

// EventHandler handles domain events
type EventHandler interface {
	Handle(ctx context.Context, event *Event) error
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc func(ctx context.Context, event *Event) error

func (f EventHandlerFunc) Handle(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// NewEvent creates a new domain event
func NewEvent(aggregateID models.ID, eventType string, data interface{}) *Event {
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       Topic(eventType),
		EventType:   eventType,
		Version:     "1.0",
		Data:        data,
		Metadata:    make(Metadata),
		Timestamp:   time.Now().UTC(),
	}
}

// WithCorrelationID sets correlation ID
func (e *Event) WithCorrelationID(correlationID models.ID) *Event {
	e.CorrelationID = correlationID
	return e
}

type correlationKey struct{}

// ContextWithCorrelationID returns a context carrying the correlation ID that
// events produced under it should be stamped with.
func ContextWithCorrelationID(ctx context.Context, correlationID models.ID) context.Context {
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// CorrelationIDFromContext returns the correlation ID stored in ctx, if any
func CorrelationIDFromContext(ctx context.Context) (models.ID, bool) {
	id, ok := ctx.Value(correlationKey{}).(models.ID)
	return id, ok && id != ""
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	switch data := e.Data.(type) {
	case json.RawMessage:
		return data, nil
	case []byte:
		return data, nil
	}
	return json.Marshal(e.Data)
}

// UnmarshalPayload decodes the payload into v. Payloads that already have
// v's type are assigned directly; anything else goes through JSON.
func (e *Event) UnmarshalPayload(v interface{}) error {
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return ErrInvalidReceiver
	}

	if e.Data != nil {
		payload := reflect.ValueOf(e.Data)
		if payload.Type() == target.Elem().Type() {
			target.Elem().Set(payload)
			return nil
		}
	}

	raw, err := e.MarshalPayload()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Matches checks if the event matches the given topic pattern and metadata
func (e *Event) Matches(topicPattern Topic, metadata Metadata) bool {
	return e.Topic.Matches(topicPattern) && e.Metadata.Matches(metadata)
}

// Clone creates a copy of the event
func (e *Event) Clone() *Event {
	clone := *e
	clone.Metadata = e.Metadata.Clone()
	return &clone
}

// Event types
const (
	PaymentRecordedEvent = "payment.recorded"
)
