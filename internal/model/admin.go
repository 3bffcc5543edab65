package model

import (
	"time"

	"github.com/trialvo/trialvo-backend/internal/patch"
)

// Admin roles.  The column is an ENUM of exactly these values.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
)

// Roles lists every known admin role.
var Roles = []string{RoleSuperAdmin, RoleAdmin, RoleEditor}

// AdminProfile mirrors a row of the `admin_profiles` table.  PasswordHash
// never leaves the process.
type AdminProfile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Admin is the authenticated principal attached to a request.
type Admin struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

// Principal strips the profile down to what a request may see.
func (a AdminProfile) Principal() Admin {
	return Admin{ID: a.ID, Email: a.Email, FullName: a.FullName, AvatarURL: a.AvatarURL, Role: a.Role}
}

// AdminProfilePatch covers the self-service profile and password changes.
type AdminProfilePatch struct {
	FullName     *string
	PasswordHash *string
}

func (p AdminProfilePatch) Fields() []patch.Field {
	var f []patch.Field
	f = patch.Set(f, "full_name", patch.Scalar, p.FullName)
	f = patch.Set(f, "password_hash", patch.Scalar, p.PasswordHash)
	return f
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest is the body of PUT /api/auth/profile.
type ProfileRequest struct {
	FullName *string `json:"full_name"`
}

// PasswordRequest is the body of PUT /api/auth/password.
type PasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
