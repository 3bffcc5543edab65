package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialvo/trialvo-backend/internal/model"
)

func TestAdminRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepo(db)

	mock.ExpectQuery(`FROM admin_profiles WHERE email = \?`).
		WithArgs("admin@trialvo.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "avatar_url", "role", "created_at", "updated_at"}).
			AddRow("a1", "admin@trialvo.com", "$2a$12$hash", "Super Admin", nil, "super_admin", testTime, testTime))

	a, err := repo.GetByEmail(context.Background(), "  Admin@Trialvo.com ")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "", a.AvatarURL)
	assert.Equal(t, model.RoleSuperAdmin, a.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepo_Lookup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepo(db)

	mock.ExpectQuery(`SELECT id, email, full_name, avatar_url, role FROM admin_profiles WHERE id = \?`).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "role"}))

	_, err := repo.Lookup(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepo_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepo(db)

	hash := "$2a$12$new"
	mock.ExpectExec(`UPDATE admin_profiles SET password_hash = \? WHERE id = \?`).
		WithArgs(hash, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), "a1", model.AdminProfilePatch{PasswordHash: &hash}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepo(db)

	mock.ExpectExec(`INSERT INTO admin_profiles`).
		WithArgs(sqlmock.AnyArg(), "admin@trialvo.com", "hash", "Super Admin", "", "super_admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := model.AdminProfile{Email: "Admin@Trialvo.com", PasswordHash: "hash", FullName: "Super Admin", Role: model.RoleSuperAdmin}
	require.NoError(t, repo.Create(context.Background(), &a))
	assert.NotEmpty(t, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
