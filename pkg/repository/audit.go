package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/ojoconmipisto/superbot/pkg/domain"
)

// AuditRepository is the append-only delivery audit log. The core never
// reads it back; List exists for tests and operational queries.
type AuditRepository struct {
	db *sqlx.DB
}

type auditSQL struct {
	ID        int64     `db:"id"`
	Phone     string    `db:"telefono"`
	Message   string    `db:"mensaje"`
	Outcome   string    `db:"estado"`
	CreatedAt time.Time `db:"fecha"`
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(database *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: database}
}

// Record appends one audit entry
func (r *AuditRepository) Record(ctx context.Context, phone, message string, outcome domain.DeliveryOutcome) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO logs (telefono, mensaje, estado) VALUES (?, ?, ?)",
			phone, message, string(outcome))
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("record audit entry: %w", err)}
		}
		return nil
	})
}

// List returns the most recent entries for a phone, newest first
func (r *AuditRepository) List(ctx context.Context, phone string, limit int) ([]domain.DeliveryAttempt, error) {
	var rows []auditSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM logs WHERE telefono = ? ORDER BY id DESC LIMIT ?", phone, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	attempts := make([]domain.DeliveryAttempt, len(rows))
	for i, row := range rows {
		attempts[i] = domain.DeliveryAttempt{
			ID:        row.ID,
			Phone:     row.Phone,
			Message:   row.Message,
			Outcome:   domain.DeliveryOutcome(row.Outcome),
			CreatedAt: row.CreatedAt,
		}
	}
	return attempts, nil
}
