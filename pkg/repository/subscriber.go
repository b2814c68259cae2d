package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/ojoconmipisto/superbot/pkg/domain"
)

// ErrNotFound is returned when a subscriber does not exist
var ErrNotFound = fmt.Errorf("subscriber: %w", domain.ErrNotFound)

// SubscriberRepository handles subscriber persistence keyed by phone
type SubscriberRepository struct {
	db *sqlx.DB
}

// subscriberSQL represents a subscriber row for SQL operations
type subscriberSQL struct {
	ID           int64     `db:"id"`
	Phone        string    `db:"telefono"`
	Name         string    `db:"nombre"`
	Departments  labelsSQL `db:"departamentos"`
	Topics       labelsSQL `db:"temas"`
	Status       string    `db:"estado"`
	SubscribedAt time.Time `db:"fecha_suscripcion"`
}

// labelsSQL is a JSON array of label strings for SQL operations
type labelsSQL []string

// Value implements driver.Valuer for database storage
func (l labelsSQL) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for database retrieval. Malformed stored
// lists scan as empty rather than failing, matching the degraded-data
// policy of the fan-out runs.
func (l *labelsSQL) Scan(value interface{}) error {
	if value == nil {
		*l = labelsSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*l = labelsSQL{}
		return nil
	}

	if err := json.Unmarshal(data, l); err != nil {
		*l = labelsSQL{}
	}
	return nil
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(database *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: database}
}

// GetByPhone retrieves a subscriber by phone number
func (r *SubscriberRepository) GetByPhone(ctx context.Context, phone string) (*domain.Subscriber, error) {
	var row subscriberSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM suscriptores WHERE telefono = ?", phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subscriber: %w", err)
	}
	return r.toDomain(&row), nil
}

// Create inserts a new subscriber
func (r *SubscriberRepository) Create(ctx context.Context, sub *domain.Subscriber) error {
	row := &subscriberSQL{
		Phone:       sub.Phone,
		Name:        sub.Name,
		Departments: labelsSQL(sub.Departments),
		Topics:      labelsSQL(sub.Topics),
		Status:      string(sub.Status),
	}

	query := `
		INSERT INTO suscriptores (telefono, nombre, departamentos, temas, estado, fecha_suscripcion)
		VALUES (:telefono, :nombre, :departamentos, :temas, :estado, datetime('now'))
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("create subscriber: %w", err)}
		}

		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get insert id: %w", err)}
		}
		sub.ID = id
		return nil
	})
}

// Update replaces name, departments, topics and status of an existing
// subscriber and refreshes the subscription timestamp
func (r *SubscriberRepository) Update(ctx context.Context, sub *domain.Subscriber) error {
	query := `
		UPDATE suscriptores
		SET nombre = ?, departamentos = ?, temas = ?, estado = ?, fecha_suscripcion = datetime('now')
		WHERE telefono = ?
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query,
			sub.Name, labelsSQL(sub.Departments), labelsSQL(sub.Topics), string(sub.Status), sub.Phone)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("update subscriber: %w", err)}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("rows affected: %w", err)}
		}
		if affected == 0 {
			return &criticalError{err: ErrNotFound}
		}
		return nil
	})
}

// SetStatus updates only the lifecycle status of a subscriber
func (r *SubscriberRepository) SetStatus(ctx context.Context, phone string, status domain.SubscriberStatus) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			"UPDATE suscriptores SET estado = ? WHERE telefono = ?", string(status), phone)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("set status: %w", err)}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("rows affected: %w", err)}
		}
		if affected == 0 {
			return &criticalError{err: ErrNotFound}
		}
		return nil
	})
}

// GetActiveWithDepartments retrieves active subscribers that hold at
// least one department, for the daily run
func (r *SubscriberRepository) GetActiveWithDepartments(ctx context.Context) ([]domain.Subscriber, error) {
	return r.getActive(ctx, "departamentos")
}

// GetActiveWithTopics retrieves active subscribers that hold at least
// one topic, for the weekly run
func (r *SubscriberRepository) GetActiveWithTopics(ctx context.Context) ([]domain.Subscriber, error) {
	return r.getActive(ctx, "temas")
}

func (r *SubscriberRepository) getActive(ctx context.Context, column string) ([]domain.Subscriber, error) {
	// column is one of two fixed names, never user input
	query := fmt.Sprintf(`
		SELECT * FROM suscriptores
		WHERE estado = 'activo' AND %s != '[]' AND %s != ''
		ORDER BY id
	`, column, column)

	var rows []subscriberSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get active subscribers: %w", err)
	}

	subs := make([]domain.Subscriber, len(rows))
	for i, row := range rows {
		subs[i] = *r.toDomain(&row)
	}
	return subs, nil
}

func (r *SubscriberRepository) toDomain(row *subscriberSQL) *domain.Subscriber {
	return &domain.Subscriber{
		ID:           row.ID,
		Phone:        row.Phone,
		Name:         row.Name,
		Departments:  row.Departments,
		Topics:       row.Topics,
		Status:       domain.SubscriberStatus(row.Status),
		SubscribedAt: row.SubscribedAt,
	}
}
