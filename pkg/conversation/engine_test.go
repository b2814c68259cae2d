package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojoconmipisto/superbot/pkg/conversation/mocks"
	"github.com/ojoconmipisto/superbot/pkg/domain"
)

type engineFixture struct {
	engine   *Engine
	store    *mocks.SubscriberStoreMock
	sender   *mocks.SenderMock
	audit    *mocks.AuditLogMock
	sessions *SessionStore
}

// newFixture builds an engine around an in-memory map of subscribers
func newFixture(subscribers map[string]*domain.Subscriber) *engineFixture {
	store := &mocks.SubscriberStoreMock{
		GetByPhoneFunc: func(ctx context.Context, phone string) (*domain.Subscriber, error) {
			if sub, ok := subscribers[phone]; ok {
				copied := *sub
				return &copied, nil
			}
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, sub *domain.Subscriber) error {
			if _, ok := subscribers[sub.Phone]; ok {
				return fmt.Errorf("duplicate phone %s", sub.Phone)
			}
			subscribers[sub.Phone] = sub
			return nil
		},
		UpdateFunc: func(ctx context.Context, sub *domain.Subscriber) error {
			if _, ok := subscribers[sub.Phone]; !ok {
				return domain.ErrNotFound
			}
			subscribers[sub.Phone] = sub
			return nil
		},
		SetStatusFunc: func(ctx context.Context, phone string, status domain.SubscriberStatus) error {
			sub, ok := subscribers[phone]
			if !ok {
				return domain.ErrNotFound
			}
			sub.Status = status
			return nil
		},
	}
	sender := &mocks.SenderMock{
		SendFunc: func(ctx context.Context, phone, text string) error { return nil },
	}
	audit := &mocks.AuditLogMock{
		RecordFunc: func(ctx context.Context, phone, message string, outcome domain.DeliveryOutcome) error {
			return nil
		},
	}
	sessions := NewSessionStore(0)

	return &engineFixture{
		engine:   New(store, sender, audit, sessions),
		store:    store,
		sender:   sender,
		audit:    audit,
		sessions: sessions,
	}
}

func (f *engineFixture) handle(t *testing.T, from, body string) {
	t.Helper()
	require.NoError(t, f.engine.Handle(context.Background(), domain.InboundMessage{From: from, Body: body}))
}

func (f *engineFixture) lastSent(t *testing.T) string {
	t.Helper()
	calls := f.sender.SendCalls()
	require.NotEmpty(t, calls)
	return calls[len(calls)-1].Text
}

func TestEngine_FullOnboarding(t *testing.T) {
	subs := map[string]*domain.Subscriber{}
	f := newFixture(subs)

	f.handle(t, "50255501234@c.us", "hola")
	assert.Contains(t, f.lastSent(t), "¿Cuál es tu nombre?")
	assert.Equal(t, 1, f.sessions.Len())

	f.handle(t, "50255501234@c.us", "María López")
	assert.Contains(t, f.lastSent(t), "*María López*")
	assert.Contains(t, f.lastSent(t), "departamento")

	f.handle(t, "50255501234@c.us", "Escuintla y Chimaltenango")
	assert.Contains(t, f.lastSent(t), "temas")

	f.handle(t, "50255501234@c.us", "Movilidad, Ambiente e Congreso")
	assert.Contains(t, f.lastSent(t), "¡Gracias *María López*!")

	// session discarded, subscriber created active
	assert.Equal(t, 0, f.sessions.Len())
	sub, ok := subs["50255501234"]
	require.True(t, ok)
	assert.Equal(t, "María López", sub.Name)
	assert.Equal(t, []string{"escuintla", "chimaltenango"}, sub.Departments)
	assert.Equal(t, []string{"movilidad", "ambiente", "congreso"}, sub.Topics)
	assert.Equal(t, domain.StatusActive, sub.Status)
}

func TestEngine_InvalidTopicsReprompts(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{})

	f.handle(t, "1", "hola")
	f.handle(t, "1", "Ana")
	f.handle(t, "1", "Jalapa")

	// one bad entry rejects the whole submission
	f.handle(t, "1", "movilidad y deportes")
	assert.Contains(t, f.lastSent(t), "no son válidos")
	assert.Equal(t, 1, f.sessions.Len())
	assert.Empty(t, f.store.CreateCalls())

	// a corrected submission completes the flow
	f.handle(t, "1", "movilidad")
	assert.Contains(t, f.lastSent(t), "¡Gracias *Ana*!")
	assert.Equal(t, 0, f.sessions.Len())
}

func TestEngine_TodosExpandsTopics(t *testing.T) {
	subs := map[string]*domain.Subscriber{}
	f := newFixture(subs)

	f.handle(t, "1", "hola")
	f.handle(t, "1", "Ana")
	f.handle(t, "1", "Petén")
	f.handle(t, "1", "Todos")

	require.Contains(t, subs, "1")
	assert.Len(t, subs["1"].Topics, 7)
}

func TestEngine_EmptyDepartmentsReprompts(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{})

	f.handle(t, "1", "hola")
	f.handle(t, "1", "Ana")
	f.handle(t, "1", " , , ")
	assert.Contains(t, f.lastSent(t), "al menos un departamento")

	f.handle(t, "1", "Izabal")
	assert.Contains(t, f.lastSent(t), "temas")
}

func TestEngine_RaceUpdatesInsteadOfDuplicate(t *testing.T) {
	subs := map[string]*domain.Subscriber{}
	f := newFixture(subs)

	f.handle(t, "1", "hola")
	f.handle(t, "1", "Ana")
	f.handle(t, "1", "Zacapa")

	// another write created the record mid-flow
	subs["1"] = &domain.Subscriber{Phone: "1", Name: "Ana", Status: domain.StatusActive}

	f.handle(t, "1", "congreso")

	assert.Contains(t, f.lastSent(t), "Bienvenido de nuevo")
	assert.Empty(t, f.store.CreateCalls())
	require.Len(t, f.store.UpdateCalls(), 1)
	assert.Equal(t, []string{"congreso"}, subs["1"].Topics)
}

func TestEngine_Unsubscribe(t *testing.T) {
	subs := map[string]*domain.Subscriber{
		"1": {Phone: "1", Name: "Ana", Status: domain.StatusActive},
	}
	f := newFixture(subs)

	f.handle(t, "1", "Parar")
	assert.Contains(t, f.lastSent(t), "Te has desuscrito")
	assert.Equal(t, domain.StatusInactive, subs["1"].Status)
}

func TestEngine_UnsubscribeVariants(t *testing.T) {
	for _, cmd := range []string{"parar", "detener", "baja", "dar de baja", "darme de baja", "  PARAR  "} {
		t.Run(cmd, func(t *testing.T) {
			subs := map[string]*domain.Subscriber{
				"1": {Phone: "1", Name: "Ana", Status: domain.StatusActive},
			}
			f := newFixture(subs)
			f.handle(t, "1", cmd)
			assert.Equal(t, domain.StatusInactive, subs["1"].Status)
		})
	}
}

func TestEngine_BajaVerapazIsNotUnsubscribe(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{})

	f.handle(t, "1", "hola")
	f.handle(t, "1", "Ana")

	// "Baja Verapaz" contains the word "baja" but must be taken as a
	// department list, not an unsubscribe command
	f.handle(t, "1", "Baja Verapaz")
	assert.Contains(t, f.lastSent(t), "temas")
	assert.Empty(t, f.store.SetStatusCalls())
}

func TestEngine_UnsubscribeUnknownPhone(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{})

	f.handle(t, "1", "baja")
	assert.Contains(t, f.lastSent(t), "No estabas suscrito")
	assert.Empty(t, f.store.SetStatusCalls())
	assert.Equal(t, 0, f.sessions.Len())
}

func TestEngine_UnsubscribeClearsStraySession(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{})

	f.handle(t, "1", "hola")
	require.Equal(t, 1, f.sessions.Len())

	f.handle(t, "1", "parar")
	assert.Equal(t, 0, f.sessions.Len())
}

func TestEngine_ActiveGreetingGetsReminder(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{
		"1": {Phone: "1", Name: "Ana", Status: domain.StatusActive},
	})

	for _, greeting := range []string{"hola", "Buenas tardes", "hi"} {
		f.handle(t, "1", greeting)
		assert.Contains(t, f.lastSent(t), "Ya estás suscrito")
	}
	assert.Equal(t, 0, f.sessions.Len())
}

func TestEngine_ActiveOtherMessageGetsReminder(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{
		"1": {Phone: "1", Name: "Ana", Status: domain.StatusActive},
	})

	f.handle(t, "1", "¿me mandas las noticias de ayer?")
	assert.Contains(t, f.lastSent(t), "Ya estás suscrito")

	// audit records the inbound text
	calls := f.audit.RecordCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, domain.OutcomeReceived, calls[len(calls)-1].Outcome)
}

func TestEngine_UpdateFlow(t *testing.T) {
	subs := map[string]*domain.Subscriber{
		"1": {Phone: "1", Name: "Ana", Departments: []string{"Jalapa"}, Topics: []string{"congreso"}, Status: domain.StatusActive},
	}
	f := newFixture(subs)

	f.handle(t, "1", "cambiar")
	assert.Contains(t, f.lastSent(t), "actualizar tus datos")

	f.handle(t, "1", "Ana María")
	f.handle(t, "1", "Sololá")
	f.handle(t, "1", "ambiente")

	assert.Contains(t, f.lastSent(t), "Bienvenido de nuevo")
	assert.Equal(t, "Ana María", subs["1"].Name)
	assert.Equal(t, []string{"sololá"}, subs["1"].Departments)
	assert.Equal(t, []string{"ambiente"}, subs["1"].Topics)
}

func TestEngine_InactiveReactivates(t *testing.T) {
	subs := map[string]*domain.Subscriber{
		"1": {Phone: "1", Name: "Ana", Status: domain.StatusInactive},
	}
	f := newFixture(subs)

	f.handle(t, "1", "hola de nuevo")
	assert.Contains(t, f.lastSent(t), "¿Cuál es tu nombre?")

	f.handle(t, "1", "Ana")
	f.handle(t, "1", "Quiché")
	f.handle(t, "1", "todos")

	assert.Contains(t, f.lastSent(t), "Bienvenido de nuevo")
	assert.Equal(t, domain.StatusActive, subs["1"].Status)
}

func TestEngine_SendFailureStillAudited(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{
		"1": {Phone: "1", Name: "Ana", Status: domain.StatusActive},
	})
	f.sender.SendFunc = func(ctx context.Context, phone, text string) error {
		return fmt.Errorf("transport down")
	}

	err := f.engine.Handle(context.Background(), domain.InboundMessage{From: "1", Body: "hola"})
	require.Error(t, err)

	calls := f.audit.RecordCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.OutcomeError, calls[0].Outcome)
	assert.Contains(t, calls[0].Message, "transport down")
}

func TestEngine_EmptyBodyOnlyAudited(t *testing.T) {
	f := newFixture(map[string]*domain.Subscriber{})

	f.handle(t, "1", "   ")
	assert.Empty(t, f.sender.SendCalls())
	assert.Len(t, f.audit.RecordCalls(), 1)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "50255501234", NormalizePhone("50255501234@c.us"))
	assert.Equal(t, "50255501234", NormalizePhone("+502 5550-1234"))
	assert.Equal(t, "", NormalizePhone("nobody@example"))
	assert.Equal(t, "", NormalizePhone(strings.Repeat("x", 5)))
}
