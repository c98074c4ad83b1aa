package service

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// HomeroomAssignedEvent is published after a homeroom placement commits.
type HomeroomAssignedEvent struct {
	StudentID     uint      `json:"student_id"`
	ClassroomID   uint      `json:"classroom_id"`
	TeacherID     uint      `json:"teacher_id"`
	SchoolID      uint      `json:"school_id"`
	SchoolYearID  *uint     `json:"school_year_id,omitempty"`
	ReplacedCount int64     `json:"replaced_count"`
	AssignedAt    time.Time `json:"assigned_at"`
}

// EventPublisher fans enrollment events out to interested consumers.
type EventPublisher interface {
	PublishHomeroomAssigned(event HomeroomAssignedEvent)
}

type natsPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewEventPublisher wraps a NATS connection. A nil connection yields a
// publisher that drops events, so messaging stays optional.
func NewEventPublisher(conn *nats.Conn, subject string, logger zerolog.Logger) EventPublisher {
	return &natsPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsPublisher) PublishHomeroomAssigned(event HomeroomAssignedEvent) {
	if p.conn == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to encode homeroom event")
		return
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		// Publishing is fire-and-forget; the enrollment already committed.
		p.logger.Warn().Err(err).Str("subject", p.subject).Msg("failed to publish homeroom event")
		return
	}

	p.logger.Debug().
		Uint("student_id", event.StudentID).
		Uint("classroom_id", event.ClassroomID).
		Msg("homeroom event published")
}
