package authz

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventType classifies where a denied attempt was intercepted.
type EventType string

const (
	EventRouteAccess EventType = "ROUTE_ACCESS"
	EventAPIAccess   EventType = "API_ACCESS"
)

// Severity grades a denied attempt for the audit trail.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// SeverityFor derives the severity of a denial from where it happened and
// what was attempted: route/view denials are LOW, read API denials MEDIUM,
// write API denials HIGH.
func SeverityFor(eventType EventType, action Action) Severity {
	if eventType == EventRouteAccess {
		return SeverityLow
	}
	if action == ActionView {
		return SeverityMedium
	}
	return SeverityHigh
}

// Event is one denied-attempt record handed to the audit sink.
type Event struct {
	ID        string
	Type      EventType
	Role      RoleID
	SubjectID uint64
	Resource  Resource
	Action    Action
	Severity  Severity
	Detail    string
	CreatedAt time.Time
}

// NewEvent builds a populated event for a denial.
func NewEvent(eventType EventType, actor *Actor, action Action, res Resource, detail string) Event {
	ev := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Resource:  res,
		Action:    action,
		Severity:  SeverityFor(eventType, action),
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if actor != nil {
		ev.Role = actor.RoleID
		ev.SubjectID = actor.SubjectID
	}
	return ev
}

// Sink receives denied-attempt events. Implementations must be
// fire-and-forget: Record must never block or fail a policy decision.
type Sink interface {
	Record(Event)
}

// LogSink writes events to the application log.
type LogSink struct {
	log *zap.SugaredLogger
}

// NewLogSink returns a sink logging every event at info level.
func NewLogSink(log *zap.SugaredLogger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(ev Event) {
	if s.log == nil {
		return
	}
	s.log.Infow("access denied",
		"event_id", ev.ID,
		"type", ev.Type,
		"role", ev.Role,
		"subject_id", ev.SubjectID,
		"resource", ev.Resource,
		"action", ev.Action,
		"severity", ev.Severity,
		"detail", ev.Detail,
	)
}

// AuditRecord is the persisted shape of an Event.
type AuditRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Type      string `gorm:"size:32;not null"`
	Role      string `gorm:"size:64;index"`
	SubjectID uint64 `gorm:"index"`
	Resource  string `gorm:"size:64;not null"`
	Action    string `gorm:"size:16;not null"`
	Severity  string `gorm:"size:8;not null"`
	Detail    string
	CreatedAt time.Time `gorm:"index"`
}

// TableName keeps the table name stable regardless of gorm naming strategy.
func (AuditRecord) TableName() string { return "authz_audit_events" }

// DBSink persists events through a buffered channel and a single writer
// goroutine. When the buffer is full the event is dropped and counted; the
// caller never waits on the database.
type DBSink struct {
	db      *gorm.DB
	log     *zap.SugaredLogger
	events  chan Event
	done    chan struct{}
	dropped atomic.Int64
}

// NewDBSink starts the writer goroutine. buffer <= 0 falls back to 256.
func NewDBSink(db *gorm.DB, log *zap.SugaredLogger, buffer int) *DBSink {
	if buffer <= 0 {
		buffer = 256
	}
	s := &DBSink{
		db:     db,
		log:    log,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *DBSink) Record(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.dropped.Add(1)
		if s.log != nil {
			s.log.Warnw("audit buffer full, event dropped", "event_id", ev.ID)
		}
	}
}

// Dropped returns the number of events discarded because the buffer was full.
func (s *DBSink) Dropped() int64 { return s.dropped.Load() }

// Close drains pending events and stops the writer.
func (s *DBSink) Close() {
	close(s.events)
	<-s.done
}

func (s *DBSink) run() {
	defer close(s.done)
	for ev := range s.events {
		rec := AuditRecord{
			ID:        ev.ID,
			Type:      string(ev.Type),
			Role:      string(ev.Role),
			SubjectID: ev.SubjectID,
			Resource:  string(ev.Resource),
			Action:    string(ev.Action),
			Severity:  string(ev.Severity),
			Detail:    ev.Detail,
			CreatedAt: ev.CreatedAt,
		}
		if err := s.db.Create(&rec).Error; err != nil && s.log != nil {
			s.log.Errorw("failed to persist audit event", "event_id", ev.ID, "error", err)
		}
	}
}
