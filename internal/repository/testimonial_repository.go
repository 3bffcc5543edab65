package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/trialvo/trialvo-backend/internal/codec"
	"github.com/trialvo/trialvo-backend/internal/model"
)

const testimonialColumns = "id, name, role, content, rating, avatar, is_active, created_at, updated_at"

type TestimonialRepo struct{ db DBTX }

func NewTestimonialRepo(db DBTX) *TestimonialRepo { return &TestimonialRepo{db: db} }

func (r *TestimonialRepo) ListActive(ctx context.Context) ([]model.Testimonial, error) {
	return r.list(ctx, "SELECT "+testimonialColumns+" FROM testimonials WHERE is_active = 1 ORDER BY created_at DESC")
}

func (r *TestimonialRepo) ListAll(ctx context.Context) ([]model.Testimonial, error) {
	return r.list(ctx, "SELECT "+testimonialColumns+" FROM testimonials ORDER BY created_at DESC")
}

func (r *TestimonialRepo) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	t, err := scanTestimonial(r.db.QueryRowContext(ctx, "SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO testimonials (id, name, role, content, rating, avatar, is_active) VALUES (?, ?, ?, ?, ?, ?, ?)",
		t.ID, codec.Wrap(t.Name), codec.Wrap(t.Role), codec.Wrap(t.Content), t.Rating, t.Avatar, t.IsActive)
	return err
}

func (r *TestimonialRepo) Update(ctx context.Context, id string, p model.TestimonialPatch) error {
	return execPatch(ctx, r.db, "testimonials", id, p.Fields())
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "testimonials", id)
}

func (r *TestimonialRepo) list(ctx context.Context, q string) ([]model.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTestimonial(s scanner) (*model.Testimonial, error) {
	var (
		t       model.Testimonial
		name    codec.JSON[model.Bilingual]
		role    codec.JSON[model.Bilingual]
		content codec.JSON[model.Bilingual]
		avatar  sql.NullString
	)
	if err := s.Scan(&t.ID, &name, &role, &content, &t.Rating, &avatar, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Name, t.Role, t.Content = name.V, role.V, content.V
	t.Avatar = avatar.String
	return &t, nil
}
