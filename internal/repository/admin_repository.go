package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/trialvo/trialvo-backend/internal/model"
)

const adminColumns = "id, email, password_hash, full_name, avatar_url, role, created_at, updated_at"

type AdminRepo struct{ db DBTX }

func NewAdminRepo(db DBTX) *AdminRepo { return &AdminRepo{db: db} }

// Create inserts a profile, assigning an ID when empty.  Emails are stored
// lower-cased.
func (r *AdminRepo) Create(ctx context.Context, a *model.AdminProfile) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Role == "" {
		a.Role = model.RoleAdmin
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO admin_profiles (id, email, password_hash, full_name, avatar_url, role) VALUES (?, ?, ?, ?, ?, ?)",
		a.ID, a.Email, a.PasswordHash, a.FullName, a.AvatarURL, a.Role)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// GetByEmail fetches a profile by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.get(ctx, "SELECT "+adminColumns+" FROM admin_profiles WHERE email = ? LIMIT 1", email)
}

// GetByID fetches a profile by id.
func (r *AdminRepo) GetByID(ctx context.Context, id string) (*model.AdminProfile, error) {
	return r.get(ctx, "SELECT "+adminColumns+" FROM admin_profiles WHERE id = ? LIMIT 1", id)
}

// Lookup resolves the principal for an authenticated request.
func (r *AdminRepo) Lookup(ctx context.Context, id string) (model.Admin, error) {
	var (
		a      model.Admin
		avatar sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, full_name, avatar_url, role FROM admin_profiles WHERE id = ?", id).
		Scan(&a.ID, &a.Email, &a.FullName, &avatar, &a.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Admin{}, ErrNotFound
		}
		return model.Admin{}, err
	}
	a.AvatarURL = avatar.String
	return a, nil
}

// Update applies a profile patch.
func (r *AdminRepo) Update(ctx context.Context, id string, p model.AdminProfilePatch) error {
	return execPatch(ctx, r.db, "admin_profiles", id, p.Fields())
}

func (r *AdminRepo) get(ctx context.Context, q string, arg any) (*model.AdminProfile, error) {
	var (
		a      model.AdminProfile
		avatar sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &avatar, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.AvatarURL = avatar.String
	return &a, nil
}
