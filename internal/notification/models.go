// Package notification delivers booking and session events to the club's
// webhook endpoint, with a durable log of every delivery outcome.
package notification

import (
	"time"

	id "turnero/pkg/domain"
)

// EventType identifies what happened. The wire values are part of the
// webhook contract and must not change.
type EventType string

const (
	EventBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventBookingCancelled EventType = "BOOKING_CANCELLED"
	EventSessionCancelled EventType = "SESSION_CANCELLED"
	EventSessionModified  EventType = "SESSION_MODIFIED"
	EventReminder24h      EventType = "REMINDER_24H"
)

func (t EventType) Valid() bool {
	switch t {
	case EventBookingConfirmed, EventBookingCancelled, EventSessionCancelled, EventSessionModified, EventReminder24h:
		return true
	}
	return false
}

// UserInfo is the recipient block of the webhook payload.
type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TrainingInfo is the session block of the webhook payload. Date and Time
// are preformatted strings so the consumer never parses our internal types.
type TrainingInfo struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

// Event is one notification to be delivered. UserID and SessionID key the
// durable log; User and Training carry the payload details and may be nil
// when the source had nothing to attach.
type Event struct {
	Type      EventType     `json:"type"`
	UserID    id.UserID     `json:"user_id"`
	SessionID id.SessionID  `json:"session_id"`
	User      *UserInfo     `json:"user,omitempty"`
	Training  *TrainingInfo `json:"training,omitempty"`
}

// payload is the JSON body POSTed to the webhook.
type payload struct {
	EventType EventType     `json:"eventType"`
	User      *UserInfo     `json:"user,omitempty"`
	Training  *TrainingInfo `json:"training,omitempty"`
}

// LogStatus is the delivery state of a logged notification.
//
// Pending marks an accepted, not yet delivered event. Sent and Failed are
// terminal; a log row transitions out of Pending exactly once.
type LogStatus string

const (
	StatusPending LogStatus = "pending"
	StatusSent    LogStatus = "sent"
	StatusFailed  LogStatus = "failed"
)

// Log is one row of the durable notification log.
type Log struct {
	ID        id.NotificationID
	EventType EventType
	UserID    id.UserID
	SessionID id.SessionID
	Status    LogStatus
	Detail    string
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLog opens a pending log row for an accepted event.
func NewLog(logID id.NotificationID, event Event, now time.Time) *Log {
	return &Log{
		ID:        logID,
		EventType: event.Type,
		UserID:    event.UserID,
		SessionID: event.SessionID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkSent records a successful delivery.
func (l *Log) MarkSent(attempts int, now time.Time) {
	l.Status = StatusSent
	l.Detail = ""
	l.Attempts = attempts
	l.UpdatedAt = now
}

// MarkFailed records a delivery given up on, keeping the last error for
// operators.
func (l *Log) MarkFailed(attempts int, detail string, now time.Time) {
	l.Status = StatusFailed
	l.Detail = detail
	l.Attempts = attempts
	l.UpdatedAt = now
}
