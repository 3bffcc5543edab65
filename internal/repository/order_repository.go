package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/trialvo/trialvo-backend/internal/codec"
	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/order"
)

const orderColumns = `id, order_id, product_id, customer_name, customer_email, customer_phone, company,
	needs_hosting, notes, payment_method, status, total_bdt, created_at, updated_at`

// createAttempts bounds how often Create draws a fresh order code after a
// unique-key collision.
const createAttempts = 3

// OrderRepo stores orders.  Codes come from a process-wide generator; the
// UNIQUE key on order_id catches collisions between processes.
type OrderRepo struct {
	db    DBTX
	codes *order.CodeGenerator
}

func NewOrderRepo(db DBTX, codes *order.CodeGenerator) *OrderRepo {
	if codes == nil {
		codes = order.NewCodeGenerator()
	}
	return &OrderRepo{db: db, codes: codes}
}

// Create inserts o with status pending, assigning ID and OrderID.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = order.Pending
	}
	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		o.OrderID = r.codes.Next()
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO orders (id, order_id, product_id, customer_name, customer_email, customer_phone,
				company, needs_hosting, notes, payment_method, total_bdt, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.OrderID, o.ProductID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
			o.Company, o.NeedsHosting, o.Notes, o.PaymentMethod, o.TotalBDT, string(o.Status))
		if !isDuplicate(err) {
			return err
		}
	}
	return fmt.Errorf("%w: order code still taken after %d attempts", ErrConflict, createAttempts)
}

// GetByCode looks an order up by its human-facing code.
func (r *OrderRepo) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	return r.get(ctx, "SELECT "+orderColumns+" FROM orders WHERE order_id = ?", code)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return r.get(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", id)
}

// ListWithProducts returns every order, newest first, with a summary of the
// product it references.  Orders whose product was deleted carry no
// summary.
func (r *OrderRepo) ListWithProducts(ctx context.Context) ([]model.AdminOrder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT o.id, o.order_id, o.product_id, o.customer_name, o.customer_email,
		o.customer_phone, o.company, o.needs_hosting, o.notes, o.payment_method, o.status, o.total_bdt,
		o.created_at, o.updated_at, p.id, p.name, p.thumbnail, p.slug
		FROM orders o
		LEFT JOIN products p ON o.product_id = p.id
		ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AdminOrder{}
	for rows.Next() {
		var (
			pid       sql.NullString
			pname     codec.JSON[model.Bilingual]
			thumbnail sql.NullString
			slug      sql.NullString
		)
		o, err := scanOrder(rows, &pid, &pname, &thumbnail, &slug)
		if err != nil {
			return nil, err
		}
		ao := model.AdminOrder{Order: *o}
		if pid.Valid {
			ao.Products = &model.OrderProduct{Name: pname.V, Thumbnail: thumbnail.String, Slug: slug.String}
		}
		out = append(out, ao)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus overwrites the status.  Any valid status may replace any
// other.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, st order.Status) error {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET status = ? WHERE id = ?", string(st), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Summaries returns the status and total of every order for the dashboard.
func (r *OrderRepo) Summaries(ctx context.Context) ([]order.Summary, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, total_bdt FROM orders")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Summary
	for rows.Next() {
		var (
			s      order.Summary
			status string
		)
		if err := rows.Scan(&status, &s.TotalBDT); err != nil {
			return nil, err
		}
		s.Status = order.Status(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *OrderRepo) get(ctx context.Context, q string, arg any) (*model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// scanOrder reads the order columns followed by any extra destinations.
func scanOrder(s scanner, extra ...any) (*model.Order, error) {
	var (
		o         model.Order
		productID sql.NullString
		company   sql.NullString
		notes     sql.NullString
		status    string
	)
	dest := append([]any{&o.ID, &o.OrderID, &productID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&company, &o.NeedsHosting, &notes, &o.PaymentMethod, &status, &o.TotalBDT, &o.CreatedAt, &o.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if productID.Valid {
		o.ProductID = &productID.String
	}
	o.Company = company.String
	o.Notes = notes.String
	o.Status = order.Status(status)
	return &o, nil
}
