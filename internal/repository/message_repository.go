package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/trialvo/trialvo-backend/internal/model"
)

const messageColumns = "id, name, email, subject, message, is_read, created_at, updated_at"

type MessageRepo struct{ db DBTX }

func NewMessageRepo(db DBTX) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (id, name, email, subject, message) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.Name, m.Email, m.Subject, m.Message)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.db.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM contact_messages WHERE id = ?", id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns every message, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+messageColumns+" FROM contact_messages ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update flips the read flag through the patch mapper.
func (r *MessageRepo) Update(ctx context.Context, id string, p model.MessagePatch) error {
	return execPatch(ctx, r.db, "contact_messages", id, p.Fields())
}

func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "contact_messages", id)
}

func (r *MessageRepo) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages WHERE is_read = 0").Scan(&n)
	return n, err
}
