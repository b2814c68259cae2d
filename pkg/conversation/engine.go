// Package conversation drives the per-phone onboarding and preference
// update dialogue.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/ojoconmipisto/superbot/pkg/domain"
	"github.com/ojoconmipisto/superbot/pkg/vocab"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . SubscriberStore
//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender
//go:generate moq -out mocks/audit.go -pkg mocks -skip-ensure -fmt goimports . AuditLog

// SubscriberStore is the persistence the engine needs, keyed by phone
type SubscriberStore interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Subscriber, error)
	Create(ctx context.Context, sub *domain.Subscriber) error
	Update(ctx context.Context, sub *domain.Subscriber) error
	SetStatus(ctx context.Context, phone string, status domain.SubscriberStatus) error
}

// Sender delivers outbound replies
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}

// AuditLog is the append-only record of handled events
type AuditLog interface {
	Record(ctx context.Context, phone, message string, outcome domain.DeliveryOutcome) error
}

// Engine is the conversation state machine. Handling is keyed by phone:
// messages from the same phone are serialized, different phones proceed
// independently.
type Engine struct {
	store    SubscriberStore
	sender   Sender
	audit    AuditLog
	sessions *SessionStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a conversation engine
func New(store SubscriberStore, sender Sender, audit AuditLog, sessions *SessionStore) *Engine {
	return &Engine{
		store:    store,
		sender:   sender,
		audit:    audit,
		sessions: sessions,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Handle processes one inbound message and sends whatever replies the
// state machine calls for
func (e *Engine) Handle(ctx context.Context, msg domain.InboundMessage) error {
	phone := NormalizePhone(msg.From)
	if phone == "" {
		return fmt.Errorf("message without usable phone: %q", msg.From)
	}

	lock := e.phoneLock(phone)
	lock.Lock()
	defer lock.Unlock()

	text := strings.TrimSpace(msg.Body)
	if text == "" {
		return e.record(ctx, phone, "", domain.OutcomeReceived)
	}
	lower := strings.ToLower(text)

	sub, err := e.store.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load subscriber %s: %w", phone, err)
	}
	sess := e.sessions.Get(phone)

	active := sub != nil && sub.Status == domain.StatusActive

	switch {
	case active && sess == nil && isGreeting(lower):
		return e.reply(ctx, phone, msgAlreadySubscribed, domain.OutcomeReplied)

	case isUnsubscribe(text):
		return e.handleUnsubscribe(ctx, phone, sub)

	case isUpdateCommand(lower):
		e.sessions.Set(phone, &Session{Step: StepName, Updating: sub != nil})
		return e.reply(ctx, phone, msgUpdateStart, domain.OutcomeUpdated)

	case sess == nil && (sub == nil || sub.Status == domain.StatusInactive):
		e.sessions.Set(phone, &Session{Step: StepName, Updating: sub != nil})
		if err := e.send(ctx, phone, msgWelcome); err != nil {
			return e.recordSendError(ctx, phone, msgWelcome, err)
		}
		return e.reply(ctx, phone, msgAskName, domain.OutcomeSubscribed)

	case sess != nil:
		return e.handleStep(ctx, phone, text, sess)

	case active:
		if err := e.send(ctx, phone, msgAlreadySubscribed); err != nil {
			return e.recordSendError(ctx, phone, msgAlreadySubscribed, err)
		}
		return e.record(ctx, phone, text, domain.OutcomeReceived)
	}

	// unreachable: every state combination is covered above
	return e.record(ctx, phone, text, domain.OutcomeReceived)
}

// handleUnsubscribe deactivates an existing subscriber or tells an
// unknown phone it was never subscribed. Either way any stray session
// is discarded.
func (e *Engine) handleUnsubscribe(ctx context.Context, phone string, sub *domain.Subscriber) error {
	e.sessions.Delete(phone)

	if sub == nil {
		return e.reply(ctx, phone, msgNotSubscribed, domain.OutcomeReplied)
	}

	if err := e.store.SetStatus(ctx, phone, domain.StatusInactive); err != nil {
		return fmt.Errorf("deactivate subscriber %s: %w", phone, err)
	}
	return e.reply(ctx, phone, msgUnsubscribed, domain.OutcomeUnsubscribed)
}

// handleStep advances an in-flight dialogue session
func (e *Engine) handleStep(ctx context.Context, phone, text string, sess *Session) error {
	switch sess.Step {
	case StepName:
		sess.Name = vocab.CollapseSpaces(text)
		sess.Step = StepDepartments
		e.sessions.Set(phone, sess)
		return e.reply(ctx, phone, msgAskDepartments(sess.Name), domain.OutcomeReplied)

	case StepDepartments:
		departments := vocab.SplitList(text)
		if len(departments) == 0 {
			return e.reply(ctx, phone, msgNeedDepartment, domain.OutcomeReplied)
		}
		sess.Departments = departments
		sess.Step = StepTopics
		e.sessions.Set(phone, sess)
		return e.reply(ctx, phone, msgAskTopics(sess.Name), domain.OutcomeReplied)

	case StepTopics:
		return e.finishFlow(ctx, phone, text, sess)
	}

	return fmt.Errorf("unknown dialogue step %d for %s", sess.Step, phone)
}

// finishFlow validates topics and persists the subscriber, re-checking
// for a record created since the flow started so a race updates instead
// of inserting a duplicate
func (e *Engine) finishFlow(ctx context.Context, phone, text string, sess *Session) error {
	valid, invalid := vocab.NormalizeTopics(vocab.SplitList(text))
	if len(valid) == 0 || len(invalid) > 0 {
		// all-or-nothing: one bad topic rejects the submission
		return e.reply(ctx, phone, msgInvalidTopics(), domain.OutcomeReplied)
	}

	sub := &domain.Subscriber{
		Phone:       phone,
		Name:        sess.Name,
		Departments: sess.Departments,
		Topics:      valid,
		Status:      domain.StatusActive,
	}

	existing, err := e.store.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("re-check subscriber %s: %w", phone, err)
	}

	if existing != nil {
		if err := e.store.Update(ctx, sub); err != nil {
			return fmt.Errorf("update subscriber %s: %w", phone, err)
		}
		e.sessions.Delete(phone)
		return e.reply(ctx, phone, msgReactivated(sess.Name), domain.OutcomeReactivated)
	}

	if err := e.store.Create(ctx, sub); err != nil {
		return fmt.Errorf("create subscriber %s: %w", phone, err)
	}
	e.sessions.Delete(phone)
	return e.reply(ctx, phone, msgSubscribed(sess.Name), domain.OutcomeSubscribed)
}

// reply sends a message and records the branch in the audit log
func (e *Engine) reply(ctx context.Context, phone, text string, outcome domain.DeliveryOutcome) error {
	if err := e.send(ctx, phone, text); err != nil {
		return e.recordSendError(ctx, phone, text, err)
	}
	return e.record(ctx, phone, text, outcome)
}

func (e *Engine) send(ctx context.Context, phone, text string) error {
	return e.sender.Send(ctx, phone, text)
}

// recordSendError logs a failed delivery in the audit trail; the failure
// is not surfaced to the end user
func (e *Engine) recordSendError(ctx context.Context, phone, text string, sendErr error) error {
	lgr.Printf("[WARN] send to %s failed: %v", phone, sendErr)
	if err := e.record(ctx, phone, fmt.Sprintf("%s\n[ERROR] %v", text, sendErr), domain.OutcomeError); err != nil {
		return err
	}
	return fmt.Errorf("send to %s: %w", phone, sendErr)
}

func (e *Engine) record(ctx context.Context, phone, message string, outcome domain.DeliveryOutcome) error {
	if err := e.audit.Record(ctx, phone, message, outcome); err != nil {
		lgr.Printf("[WARN] audit record for %s failed: %v", phone, err)
	}
	return nil
}

// phoneLock returns the serialization lock for one phone
func (e *Engine) phoneLock(phone string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[phone]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[phone] = lock
	}
	return lock
}

// NormalizePhone reduces a transport identifier like "502555@c.us" to
// digits only
func NormalizePhone(from string) string {
	if i := strings.IndexByte(from, '@'); i >= 0 {
		from = from[:i]
	}
	var b strings.Builder
	for _, r := range from {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
