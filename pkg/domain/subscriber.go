package domain

import "time"

// SubscriberStatus is the lifecycle state of a subscriber
type SubscriberStatus string

// subscriber lifecycle states
const (
	StatusPending  SubscriberStatus = "pendiente"
	StatusActive   SubscriberStatus = "activo"
	StatusInactive SubscriberStatus = "inactivo"
)

// Subscriber represents a registered recipient keyed by phone number.
// Departments and Topics hold canonical vocabulary labels.
type Subscriber struct {
	ID           int64
	Phone        string // digits only
	Name         string
	Departments  []string
	Topics       []string
	Status       SubscriberStatus
	SubscribedAt time.Time
}

// FirstName returns the first name token for personalized greetings
func (s *Subscriber) FirstName() string {
	for i, r := range s.Name {
		if r == ' ' {
			return s.Name[:i]
		}
	}
	return s.Name
}
