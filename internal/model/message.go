package model

import (
	"time"

	"github.com/trialvo/trialvo-backend/internal/patch"
)

// ContactMessage mirrors a row of the `contact_messages` table.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactRequest is the public contact form body.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// MessagePatch flips the read flag; it is the only mutable column.
type MessagePatch struct {
	IsRead *patch.Flag `json:"is_read"`
}

func (p MessagePatch) Fields() []patch.Field {
	return patch.Set(nil, "is_read", patch.Boolean, p.IsRead)
}
