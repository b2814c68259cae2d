package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ojoconmipisto/superbot/pkg/domain"
)

// SpecialMessageRepository handles operator-scheduled digest overrides
type SpecialMessageRepository struct {
	db *sqlx.DB
}

type specialSQL struct {
	ID       int64  `db:"id"`
	Date     string `db:"fecha"`
	Message  string `db:"mensaje"`
	Position string `db:"posicion"`
	Active   bool   `db:"activo"`
}

// NewSpecialMessageRepository creates a new special message repository
func NewSpecialMessageRepository(database *sqlx.DB) *SpecialMessageRepository {
	return &SpecialMessageRepository{db: database}
}

// GetForDate returns the active special message scheduled for a date
// (YYYY-MM-DD), or nil when none is scheduled
func (r *SpecialMessageRepository) GetForDate(ctx context.Context, date string) (*domain.SpecialMessage, error) {
	var row specialSQL
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM mensajes_especiales WHERE fecha = ? AND activo = 1 LIMIT 1", date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get special message: %w", err)
	}

	return &domain.SpecialMessage{
		ID:       row.ID,
		Date:     row.Date,
		Text:     row.Message,
		Position: domain.SpecialMessagePosition(row.Position),
		Active:   row.Active,
	}, nil
}

// Create inserts a scheduled special message
func (r *SpecialMessageRepository) Create(ctx context.Context, msg *domain.SpecialMessage) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO mensajes_especiales (fecha, mensaje, posicion, activo) VALUES (?, ?, ?, ?)",
		msg.Date, msg.Text, string(msg.Position), msg.Active)
	if err != nil {
		return fmt.Errorf("create special message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	msg.ID = id
	return nil
}
