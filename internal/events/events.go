package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventSource identifies this service in published events.
const EventSource = "educative-platform"

// Event types emitted by the enrollment domain.
const (
	TypeUserRegistered  = "user.registered"
	TypeApprovalUpdated = "user.approval_updated"
	TypeCourseCreated   = "course.created"
	TypeCourseJoined    = "course.joined"
	TypeCourseLeft      = "course.left"
)

// Event is the envelope every published domain event travels in.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope around a payload.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher abstracts the outbound event transport. Implementations:
// Kafka (production), in-process go channel (development), mock (tests).
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
