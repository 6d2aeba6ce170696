package events

import (
	"context"
	"log"
	"time"
)

type Type string

const (
	ApplicationSubmitted    Type = "application.submitted"
	ApplicationStageChanged Type = "application.stage_changed"
	ApplicationWithdrawn    Type = "application.withdrawn"
)

// Event is the JSON message published for every application lifecycle change.
type Event struct {
	Type          Type      `json:"type"`
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	FromStage     string    `json:"from_stage,omitempty"`
	ToStage       string    `json:"to_stage,omitempty"`
	Source        string    `json:"source,omitempty"`
	ActorID       string    `json:"actor_id,omitempty"`
	Score         *int      `json:"score,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Emit publishes e and logs a failure instead of returning it. Publishing
// never fails the operation that triggered it.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(ctx, e); err != nil {
		log.Printf("events: publish %s for application %s failed: %v", e.Type, e.ApplicationID, err)
	}
}

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, e Event) error {
	log.Printf("events: %s application=%s job=%s %s->%s", e.Type, e.ApplicationID, e.JobID, e.FromStage, e.ToStage)
	return nil
}

func (LogPublisher) Close() error { return nil }
