package seed

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialvo/trialvo-backend/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectCount(mock sqlmock.Sqlmock, table string, n int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ` + table).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
}

func TestRun_SkipsPopulatedTables(t *testing.T) {
	db, mock := newMockDB(t)
	called := false
	unit := Unit{Table: "products", Run: func(context.Context, *sql.Tx) (int, error) {
		called = true
		return 0, nil
	}}

	expectCount(mock, "products", 3)

	res, err := Run(context.Background(), db, []Unit{unit}, nil)
	require.NoError(t, err)
	assert.False(t, called)
	require.Len(t, res, 1)
	assert.True(t, res[0].Skipped)
	assert.Equal(t, 3, res[0].Existing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_EmptyTableCommits(t *testing.T) {
	db, mock := newMockDB(t)
	unit := Unit{Table: "contact_messages", Run: func(ctx context.Context, tx *sql.Tx) (int, error) {
		_, err := tx.ExecContext(ctx, "INSERT INTO contact_messages (id) VALUES ('m1')")
		return 1, err
	}}

	expectCount(mock, "contact_messages", 0)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO contact_messages").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := Run(context.Background(), db, []Unit{unit}, nil)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Table: "contact_messages", Inserted: 1}}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_FailureRollsBackAndStops(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")
	second := false
	units := []Unit{
		{Table: "products", Run: func(context.Context, *sql.Tx) (int, error) { return 0, boom }},
		{Table: "testimonials", Run: func(context.Context, *sql.Tx) (int, error) { second = true; return 0, nil }},
	}

	expectCount(mock, "products", 0)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := Run(context.Background(), db, units, nil)
	require.ErrorIs(t, err, boom)
	assert.False(t, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RejectsBadTableName(t *testing.T) {
	db, _ := newMockDB(t)
	_, err := Run(context.Background(), db, []Unit{{Table: "products; --", Run: func(context.Context, *sql.Tx) (int, error) { return 0, nil }}}, nil)
	assert.Error(t, err)
}

func TestProductsUnit_InsertsCatalog(t *testing.T) {
	db, mock := newMockDB(t)

	expectCount(mock, "products", 0)
	mock.ExpectBegin()
	for i := 0; i < 5; i++ {
		mock.ExpectExec("INSERT INTO products").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	res, err := Run(context.Background(), db, []Unit{ProductsUnit()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, res[0].Inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedData_Decodes(t *testing.T) {
	var products []model.ProductInput
	require.NoError(t, load("data/products.json", &products))
	require.Len(t, products, 5)

	featured := 0
	for _, in := range products {
		p := in.ToProduct()
		assert.NotEmpty(t, p.Slug)
		assert.NotEmpty(t, p.Name.BN)
		assert.True(t, p.IsActive)
		if p.IsFeatured {
			featured++
		}
	}
	assert.Equal(t, 4, featured)

	first := products[0].ToProduct()
	assert.Equal(t, "complete-ecommerce-solution", first.Slug)
	assert.Equal(t, "15000", first.PriceBDT.String())
	require.NotNil(t, first.VideoURL)
	assert.Len(t, first.Demo, 2)

	var testimonials []model.TestimonialInput
	require.NoError(t, load("data/testimonials.json", &testimonials))
	require.Len(t, testimonials, 3)
	assert.Equal(t, "Rakib Hasan", testimonials[0].Name.EN)
	assert.Equal(t, 5, testimonials[0].ToTestimonial().Rating)
}

func TestAdminUnit_CreatesSuperAdmin(t *testing.T) {
	db, mock := newMockDB(t)

	expectCount(mock, "admin_profiles", 0)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO admin_profiles").
		WithArgs(sqlmock.AnyArg(), "admin@trialvo.com", sqlmock.AnyArg(), "Super Admin", "", model.RoleSuperAdmin).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := Run(context.Background(), db, []Unit{AdminUnit("Admin@Trialvo.com", "admin123", 4)}, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
