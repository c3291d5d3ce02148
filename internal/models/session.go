package models

import "strings"

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionArchived SessionStatus = "archived"
)

// UnknownContactName is shown for participant IDs that are not in a session's contacts.
const UnknownContactName = "Unknown"

// SessionContact is a participant as they were named when the session was created.
type SessionContact struct {
	// ContactID is MeID for the app user, a UUID otherwise.
	ContactID ParticipantID

	// Name is a frozen snapshot; renaming the user later does not change it.
	Name string
}

// Session is a bounded group of participants and the expenses split among them.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Name is the display name (e.g., "Ski trip", "Flat March").
	Name string

	Status SessionStatus

	// Contacts is the participant snapshot. The first entry is always the app user.
	Contacts []SessionContact

	// Expenses are ordered by creation time, oldest first.
	Expenses []Expense

	// CreatedAt is the Unix timestamp in milliseconds when the session was created.
	CreatedAt int64

	// ArchivedAt is set once the session is archived, zero otherwise.
	ArchivedAt int64
}

// IsArchived reports whether the session no longer accepts changes to its expenses.
func (s *Session) IsArchived() bool {
	return s.Status == SessionArchived
}

// HasContact reports whether id is one of the session's participants.
func (s *Session) HasContact(id ParticipantID) bool {
	for _, c := range s.Contacts {
		if c.ContactID == id {
			return true
		}
	}
	return false
}

// ContactName returns the display name for id, or UnknownContactName.
func (s *Session) ContactName(id ParticipantID) string {
	for _, c := range s.Contacts {
		if c.ContactID == id {
			return c.Name
		}
	}
	return UnknownContactName
}

// ContactIDs returns the participant IDs in contact order.
func (s *Session) ContactIDs() []ParticipantID {
	ids := make([]ParticipantID, len(s.Contacts))
	for i, c := range s.Contacts {
		ids[i] = c.ContactID
	}
	return ids
}

// FindExpense returns the expense with the given ID, or nil.
func (s *Session) FindExpense(id string) *Expense {
	for i := range s.Expenses {
		if s.Expenses[i].ID == id {
			return &s.Expenses[i]
		}
	}
	return nil
}

// Settings holds the local user's preferences.
type Settings struct {
	// MeName is the display name used for MeID in new sessions.
	MeName string

	// Currency is the symbol used when formatting amounts.
	Currency string

	// ActiveSessionID is the session currently being edited, empty if none.
	ActiveSessionID string
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{MeName: "Me", Currency: "$"}
}

// SameName compares contact names the way duplicate detection does: trimmed, case-insensitive.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
