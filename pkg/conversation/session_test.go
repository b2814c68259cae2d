package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Basic(t *testing.T) {
	s := NewSessionStore(0)

	assert.Nil(t, s.Get("1"))

	s.Set("1", &Session{Step: StepName})
	sess := s.Get("1")
	require.NotNil(t, sess)
	assert.Equal(t, StepName, sess.Step)
	assert.Equal(t, 1, s.Len())

	sess.Step = StepDepartments
	sess.Name = "Ana"
	s.Set("1", sess)
	assert.Equal(t, StepDepartments, s.Get("1").Step)

	s.Delete("1")
	assert.Nil(t, s.Get("1"))
	assert.Equal(t, 0, s.Len())
}

func TestSessionStore_NoExpiryKeepsOldSessions(t *testing.T) {
	s := NewSessionStore(0)
	s.Set("1", &Session{Step: StepTopics, StartedAt: time.Now().Add(-24 * time.Hour)})
	assert.NotNil(t, s.Get("1"))
}

func TestSessionStore_Expiry(t *testing.T) {
	s := NewSessionStore(time.Hour)

	s.Set("fresh", &Session{Step: StepName})
	s.Set("stale", &Session{Step: StepName})
	s.sessions["stale"].StartedAt = time.Now().Add(-2 * time.Hour)

	assert.NotNil(t, s.Get("fresh"))
	assert.Nil(t, s.Get("stale"))
	assert.Equal(t, 1, s.Len(), "expired session discarded on read")
}

func TestSessionStore_IndependentPhones(t *testing.T) {
	s := NewSessionStore(0)
	s.Set("1", &Session{Step: StepName, Name: "Ana"})
	s.Set("2", &Session{Step: StepTopics, Name: "Luis"})

	assert.Equal(t, "Ana", s.Get("1").Name)
	assert.Equal(t, "Luis", s.Get("2").Name)
}
