// Package digest runs the daily and weekly notification fan-out: it
// matches feed content to subscriber preferences, renders one
// consolidated message per recipient and delivers it with failure
// isolation and an operator summary at the end.
package digest

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/ojoconmipisto/superbot/pkg/config"
	"github.com/ojoconmipisto/superbot/pkg/domain"
	"github.com/ojoconmipisto/superbot/pkg/vocab"
)

//go:generate moq -out mocks/content_source.go -pkg mocks -skip-ensure -fmt goimports . ContentSource
//go:generate moq -out mocks/fact_source.go -pkg mocks -skip-ensure -fmt goimports . FactSource
//go:generate moq -out mocks/rewriter.go -pkg mocks -skip-ensure -fmt goimports . Rewriter
//go:generate moq -out mocks/subscriber_store.go -pkg mocks -skip-ensure -fmt goimports . SubscriberStore
//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender
//go:generate moq -out mocks/audit.go -pkg mocks -skip-ensure -fmt goimports . AuditLog
//go:generate moq -out mocks/special_store.go -pkg mocks -skip-ensure -fmt goimports . SpecialStore

// Mode selects which fan-out run to execute
type Mode string

// fan-out run modes
const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

// ContentSource provides published notes grouped by department (daily)
// or topic (weekly)
type ContentSource interface {
	Daily(ctx context.Context) (domain.ContentFeed, error)
	Weekly(ctx context.Context) (domain.ContentFeed, error)
}

// FactSource provides the optional fact of the day
type FactSource interface {
	FactForDate(ctx context.Context, date string) (*domain.FactOfDay, error)
}

// Rewriter turns a headline into a conversational phrase
type Rewriter interface {
	Rewrite(ctx context.Context, title string) string
}

// SubscriberStore lists the recipients of a run
type SubscriberStore interface {
	GetActiveWithDepartments(ctx context.Context) ([]domain.Subscriber, error)
	GetActiveWithTopics(ctx context.Context) ([]domain.Subscriber, error)
}

// Sender delivers one outbound message
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}

// AuditLog records delivery attempts
type AuditLog interface {
	Record(ctx context.Context, phone, message string, outcome domain.DeliveryOutcome) error
}

// SpecialStore provides the operator override scheduled for a date
type SpecialStore interface {
	GetForDate(ctx context.Context, date string) (*domain.SpecialMessage, error)
}

// Params collects the dependencies of a Digest
type Params struct {
	Config config.DigestConfig

	Feed     ContentSource
	Store    SubscriberStore
	Sender   Sender
	Audit    AuditLog
	Facts    FactSource      // optional, nil disables the fact block
	Rewriter Rewriter        // optional, nil keeps original titles
	Specials SpecialStore    // optional, nil disables operator overrides

	Rand *rand.Rand       // optional, defaults to a time-seeded source
	Now  func() time.Time // optional, defaults to time.Now
}

// Digest executes fan-out runs
type Digest struct {
	Params
}

// Result reports the outcome of one run
type Result struct {
	Sent    int
	Errors  int
	Skipped int
}

// New creates a Digest, filling in the optional defaults
func New(p Params) *Digest {
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // phrase selection only
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Digest{Params: p}
}

// Run executes one fan-out in the given mode. A failed send to one
// recipient is audited and does not stop the run; a recipient with no
// matching content, no matching fact and no special message is skipped
// without a send or an audit row.
func (d *Digest) Run(ctx context.Context, mode Mode) (Result, error) {
	var res Result

	if mode != ModeDaily && mode != ModeWeekly {
		return res, fmt.Errorf("unknown digest mode %q", mode)
	}

	date := d.Now().Format("2006-01-02")
	lgr.Printf("[INFO] starting %s digest run for %s", mode, date)

	feed, err := d.loadFeed(ctx, mode)
	if err != nil {
		return res, fmt.Errorf("load %s feed: %w", mode, err)
	}
	lgr.Printf("[INFO] feed keys with notes: %d", len(feed))

	subscribers, err := d.loadSubscribers(ctx, mode)
	if err != nil {
		return res, fmt.Errorf("load subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		lgr.Printf("[WARN] no active subscribers, nothing to send")
		return res, nil
	}

	fact := d.loadFact(ctx, date)
	special := d.loadSpecial(ctx, date)
	titles := d.rewriteTitles(ctx, mode, feed)

	for i := range subscribers {
		sub := &subscribers[i]

		items := collectItems(feed, keysFor(sub, mode), titles)
		subFact := matchFact(fact, sub)

		if len(items) == 0 && subFact == nil && special == nil {
			res.Skipped++
			continue
		}

		msg := renderMessage(mode, sub.FirstName(), items, subFact, special, d.pickPhrase(mode))

		if res.Sent+res.Errors > 0 {
			if err := d.pause(ctx); err != nil {
				return res, err
			}
		}

		if err := d.Sender.Send(ctx, sub.Phone, msg); err != nil {
			lgr.Printf("[WARN] send to %s failed: %v", sub.Phone, err)
			d.record(ctx, sub.Phone, fmt.Sprintf("%s\n[ERROR] %v", msg, err), domain.OutcomeError)
			res.Errors++
			continue
		}
		d.record(ctx, sub.Phone, msg, sentOutcome(mode))
		res.Sent++
	}

	d.sendSummary(ctx, mode, res)

	lgr.Printf("[INFO] %s digest run done: sent=%d errors=%d skipped=%d", mode, res.Sent, res.Errors, res.Skipped)
	return res, nil
}

func (d *Digest) loadFeed(ctx context.Context, mode Mode) (domain.ContentFeed, error) {
	if mode == ModeWeekly {
		return d.Feed.Weekly(ctx)
	}
	return d.Feed.Daily(ctx)
}

func (d *Digest) loadSubscribers(ctx context.Context, mode Mode) ([]domain.Subscriber, error) {
	if mode == ModeWeekly {
		return d.Store.GetActiveWithTopics(ctx)
	}
	return d.Store.GetActiveWithDepartments(ctx)
}

// loadFact fetches the fact of the day; a failure degrades the run
// rather than aborting it
func (d *Digest) loadFact(ctx context.Context, date string) *domain.FactOfDay {
	if d.Facts == nil {
		return nil
	}
	fact, err := d.Facts.FactForDate(ctx, date)
	if err != nil {
		lgr.Printf("[WARN] fact of day unavailable: %v", err)
		return nil
	}
	return fact
}

func (d *Digest) loadSpecial(ctx context.Context, date string) *domain.SpecialMessage {
	if d.Specials == nil {
		return nil
	}
	special, err := d.Specials.GetForDate(ctx, date)
	if err != nil {
		lgr.Printf("[WARN] special message unavailable: %v", err)
		return nil
	}
	return special
}

// rewriteTitles pre-generates conversational titles for the weekly run,
// memoized per normalized link so repeated notes cost one call
func (d *Digest) rewriteTitles(ctx context.Context, mode Mode, feed domain.ContentFeed) map[string]string {
	if mode != ModeWeekly || d.Rewriter == nil {
		return nil
	}
	titles := make(map[string]string)
	for _, items := range feed {
		for _, item := range items {
			key := vocab.NormalizeLink(item.Link)
			if _, ok := titles[key]; ok {
				continue
			}
			titles[key] = d.Rewriter.Rewrite(ctx, item.Title)
		}
	}
	return titles
}

// keysFor returns the subscriber preference list the mode matches on
func keysFor(sub *domain.Subscriber, mode Mode) []string {
	if mode == ModeWeekly {
		return sub.Topics
	}
	return sub.Departments
}

// collectItems gathers the notes of every feed key matching one of the
// subscriber's preferences, deduplicated by normalized link with the
// first occurrence winning. Titles are swapped for their rewritten form
// when one exists.
func collectItems(feed domain.ContentFeed, prefs []string, titles map[string]string) []domain.ContentItem {
	var items []domain.ContentItem
	seen := make(map[string]bool)

	for _, pref := range prefs {
		for key, notes := range feed {
			if !vocab.Match(key, pref) {
				continue
			}
			for _, note := range notes {
				link := vocab.NormalizeLink(note.Link)
				if seen[link] {
					continue
				}
				seen[link] = true
				if rewritten, ok := titles[link]; ok && rewritten != "" {
					note.Title = rewritten
				}
				items = append(items, note)
			}
		}
	}
	return items
}

// matchFact returns the fact when it is scoped to one of the
// subscriber's departments, nil otherwise
func matchFact(fact *domain.FactOfDay, sub *domain.Subscriber) *domain.FactOfDay {
	if fact == nil {
		return nil
	}
	for _, dep := range sub.Departments {
		if vocab.Match(dep, fact.Department) {
			return fact
		}
	}
	return nil
}

// pause waits the configured inter-send delay, honoring cancellation
func (d *Digest) pause(ctx context.Context) error {
	if d.Config.SendDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(d.Config.SendDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// record writes an audit row; a failure is logged and swallowed so the
// run keeps going
func (d *Digest) record(ctx context.Context, phone, message string, outcome domain.DeliveryOutcome) {
	if err := d.Audit.Record(ctx, phone, message, outcome); err != nil {
		lgr.Printf("[WARN] audit record for %s failed: %v", phone, err)
	}
}

// sendSummary reports run counters to the operator; a failure here is
// logged, never fatal
func (d *Digest) sendSummary(ctx context.Context, mode Mode, res Result) {
	if d.Config.AdminPhone == "" {
		return
	}
	summary := renderSummary(mode, res, d.Now())
	if err := d.Sender.Send(ctx, d.Config.AdminPhone, summary); err != nil {
		lgr.Printf("[WARN] admin summary to %s failed: %v", d.Config.AdminPhone, err)
		return
	}
	d.record(ctx, d.Config.AdminPhone, summary, domain.OutcomeRunSummary)
}

func sentOutcome(mode Mode) domain.DeliveryOutcome {
	if mode == ModeWeekly {
		return domain.OutcomeWeeklySent
	}
	return domain.OutcomeDailySent
}

// pickPhrase returns a phrase selector bound to the mode's intro pool
func (d *Digest) pickPhrase(mode Mode) func() string {
	pool := dailyIntroPhrases
	if mode == ModeWeekly {
		pool = weeklyIntroPhrases
	}
	return func() string {
		return pool[d.Rand.Intn(len(pool))]
	}
}
