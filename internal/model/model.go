package model

import "time"

type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor is the authenticated caller, resolved once from the access token.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Slot is a bookable [Start, End) interval on a provider's calendar.
type Slot struct {
	ID         string
	ProviderID string
	Start      time.Time
	End        time.Time
	Available  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Date is the calendar day the slot starts on in loc.
func (s *Slot) Date(loc *time.Location) time.Time {
	y, m, d := s.Start.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Active statuses count toward the one-claim-per-slot invariant.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID          string
	RequesterID string
	ProviderID  string
	SlotID      string
	Status      Status
	Notes       string
	CancelledBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// joined from the slot, read-only
	SlotStart time.Time
	SlotEnd   time.Time
}

// Party reports whether userID is the requester or the provider.
func (a *Appointment) Party(userID string) bool {
	return a.RequesterID == userID || a.ProviderID == userID
}

type Notification struct {
	ID            string
	UserID        string
	AppointmentID string
	Kind          string
	Title         string
	Message       string
	Read          bool
	CreatedAt     time.Time
}
