// Package domain defines the typed identifiers shared across turnero.
//
// Every entity ID is a distinct UUID-backed type so the compiler rejects
// a BookingID where a SessionID is expected. Parse helpers enforce the
// trust-boundary invariant: IDs must be valid, non-empty, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "turnero/pkg/domain-errors"
)

type (
	// UserID identifies a club member, trainer, or admin.
	UserID uuid.UUID
	// SessionID identifies a training session.
	SessionID uuid.UUID
	// BookingID identifies a reservation on a training session.
	BookingID uuid.UUID
	// SlotConfigID identifies a recurrence configuration.
	SlotConfigID uuid.UUID
	// NotificationID identifies a notification log row.
	NotificationID uuid.UUID
)

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id BookingID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id SlotConfigID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id NotificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id SessionID) String() string      { return uuid.UUID(id).String() }
func (id BookingID) String() string      { return uuid.UUID(id).String() }
func (id SlotConfigID) String() string   { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

// Text marshaling keeps the canonical string form in JSON payloads and
// map keys; without it a defined UUID type encodes as a byte array.

func (id UserID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id SessionID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id BookingID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id SlotConfigID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id NotificationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "user id")
	if err != nil {
		return err
	}
	*id = UserID(u)
	return nil
}

func (id *SessionID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "session id")
	if err != nil {
		return err
	}
	*id = SessionID(u)
	return nil
}

func (id *BookingID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "booking id")
	if err != nil {
		return err
	}
	*id = BookingID(u)
	return nil
}

func (id *SlotConfigID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "slot config id")
	if err != nil {
		return err
	}
	*id = SlotConfigID(u)
	return nil
}

func (id *NotificationID) UnmarshalText(b []byte) error {
	u, err := parseUUID(string(b), "notification id")
	if err != nil {
		return err
	}
	*id = NotificationID(u)
	return nil
}

// ParseUserID parses and validates a user ID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

// ParseSessionID parses and validates a training session ID.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session id")
	return SessionID(u), err
}

// ParseBookingID parses and validates a booking ID.
func ParseBookingID(s string) (BookingID, error) {
	u, err := parseUUID(s, "booking id")
	return BookingID(u), err
}

// ParseSlotConfigID parses and validates a slot configuration ID.
func ParseSlotConfigID(s string) (SlotConfigID, error) {
	u, err := parseUUID(s, "slot config id")
	return SlotConfigID(u), err
}

// ParseNotificationID parses and validates a notification log ID.
func ParseNotificationID(s string) (NotificationID, error) {
	u, err := parseUUID(s, "notification id")
	return NotificationID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be the nil UUID")
	}
	return u, nil
}
