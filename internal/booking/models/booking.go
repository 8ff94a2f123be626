package models

import (
	"time"

	id "turnero/pkg/domain"
	dErrors "turnero/pkg/domain-errors"
)

// CancellationNotice is the minimum time before session start at which a
// member may still cancel their booking.
const CancellationNotice = 2 * time.Hour

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking ties a member to a session.
//
// Invariants:
//   - a user holds at most one confirmed booking per session
//   - a cancelled booking never returns to confirmed; rebooking creates a
//     new booking
type Booking struct {
	ID          id.BookingID `json:"id"`
	UserID      id.UserID    `json:"user_id"`
	SessionID   id.SessionID `json:"session_id"`
	Status      Status       `json:"status"`
	Deleted     bool         `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CancelledAt *time.Time   `json:"cancelled_at,omitempty"`
}

// NewBooking builds a confirmed booking.
func NewBooking(bookingID id.BookingID, userID id.UserID, sessionID id.SessionID, now time.Time) *Booking {
	return &Booking{
		ID:        bookingID,
		UserID:    userID,
		SessionID: sessionID,
		Status:    StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanCancel checks the cancel transition against the session start time.
// sessionStart is absolute; the notice window is measured from now.
func (b *Booking) CanCancel(sessionStart, now time.Time) error {
	if b.Status != StatusConfirmed {
		return dErrors.New(dErrors.CodeInvariantViolation, "booking is not confirmed")
	}
	if now.After(sessionStart.Add(-CancellationNotice)) {
		return dErrors.New(dErrors.CodeConflict, "bookings can only be cancelled up to two hours before start")
	}
	return nil
}

// ApplyCancellation transitions the booking to cancelled.
func (b *Booking) ApplyCancellation(now time.Time) {
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
}
