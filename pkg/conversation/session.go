package conversation

import (
	"sync"
	"time"
)

// Step is the current position in the onboarding/update dialogue
type Step int

// dialogue steps
const (
	StepName Step = iota
	StepDepartments
	StepTopics
)

// Session holds the in-flight state of one phone's dialogue. Sessions
// live in process memory only and do not survive a restart.
type Session struct {
	Step        Step
	Name        string
	Departments []string
	Updating    bool // reactivation/update of an existing subscriber
	StartedAt   time.Time
}

// SessionStore keeps at most one live session per phone. Expiry of 0
// means sessions never expire, which is the v1 policy.
type SessionStore struct {
	expiry   time.Duration
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates a session store with the given expiry (0 = never)
func NewSessionStore(expiry time.Duration) *SessionStore {
	return &SessionStore{
		expiry:   expiry,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session for a phone, or nil when none exists or
// it has expired
func (s *SessionStore) Get(phone string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[phone]
	if !ok {
		return nil
	}
	if s.expiry > 0 && time.Since(sess.StartedAt) > s.expiry {
		delete(s.sessions, phone)
		return nil
	}
	return sess
}

// Set stores the session for a phone, replacing any previous one
func (s *SessionStore) Set(phone string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}
	s.sessions[phone] = sess
}

// Delete removes the session for a phone, if any
func (s *SessionStore) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, phone)
}

// Len reports the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
