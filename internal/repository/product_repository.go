package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/trialvo/trialvo-backend/internal/codec"
	"github.com/trialvo/trialvo-backend/internal/model"
)

const productColumns = `id, slug, category, price_bdt, price_usd, thumbnail, images, video_url, demo,
	name, short_description, features, facilities, faq, seo, is_featured, is_active, created_at, updated_at`

// ProductRepo stores catalog products.  Structured attributes travel as
// JSON columns through codec.JSON.
type ProductRepo struct{ db DBTX }

func NewProductRepo(db DBTX) *ProductRepo { return &ProductRepo{db: db} }

// ListActive returns active products, newest first, optionally limited to
// one category.
func (r *ProductRepo) ListActive(ctx context.Context, category string) ([]model.Product, error) {
	q := "SELECT " + productColumns + " FROM products WHERE is_active = 1"
	var args []any
	if category != "" {
		q += " AND category = ?"
		args = append(args, category)
	}
	return r.list(ctx, q+" ORDER BY created_at DESC", args...)
}

// ListFeatured returns active featured products.
func (r *ProductRepo) ListFeatured(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products WHERE is_active = 1 AND is_featured = 1 ORDER BY created_at DESC")
}

// ListAll returns every product for the admin panel.
func (r *ProductRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
}

// Related returns up to limit other active products sharing the category of
// the product identified by slug.
func (r *ProductRepo) Related(ctx context.Context, slug string, limit int) ([]model.Product, error) {
	var id, category string
	err := r.db.QueryRowContext(ctx, "SELECT id, category FROM products WHERE slug = ?", slug).Scan(&id, &category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.list(ctx,
		"SELECT "+productColumns+" FROM products WHERE is_active = 1 AND category = ? AND id != ? ORDER BY created_at DESC LIMIT ?",
		category, id, limit)
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.get(ctx, "SELECT "+productColumns+" FROM products WHERE slug = ?", slug)
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return r.get(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
}

// Create inserts p and assigns its ID when empty.  A duplicate slug yields
// ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, slug, category, price_bdt, price_usd, thumbnail, images, video_url, demo,
			name, short_description, features, facilities, faq, seo, is_featured, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Category, p.PriceBDT, p.PriceUSD, p.Thumbnail,
		codec.Wrap(p.Images), p.VideoURL, codec.Wrap(p.Demo),
		codec.Wrap(p.Name), codec.Wrap(p.ShortDescription), codec.Wrap(p.Features),
		codec.Wrap(p.Facilities), codec.Wrap(p.FAQ), codec.Wrap(p.SEO),
		p.IsFeatured, p.IsActive)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// Update applies a partial update.  Last write wins.
func (r *ProductRepo) Update(ctx context.Context, id string, p model.ProductPatch) error {
	return execPatch(ctx, r.db, "products", id, p.Fields())
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "products", id)
}

// Count returns the number of products, active or not.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	return CountRows(ctx, r.db, "products")
}

func (r *ProductRepo) get(ctx context.Context, q string, arg any) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, q string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProduct(s scanner) (*model.Product, error) {
	var (
		p          model.Product
		thumbnail  sql.NullString
		video      sql.NullString
		images     codec.JSON[model.ProductImages]
		demo       codec.JSON[[]model.DemoAccess]
		name       codec.JSON[model.Bilingual]
		short      codec.JSON[model.Bilingual]
		features   codec.JSON[model.BilingualList]
		facilities codec.JSON[model.BilingualList]
		faq        codec.JSON[[]model.FAQItem]
		seo        codec.JSON[model.SEO]
	)
	if err := s.Scan(&p.ID, &p.Slug, &p.Category, &p.PriceBDT, &p.PriceUSD, &thumbnail,
		&images, &video, &demo, &name, &short, &features, &facilities, &faq, &seo,
		&p.IsFeatured, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Thumbnail = thumbnail.String
	if video.Valid {
		p.VideoURL = &video.String
	}
	p.Images = images.V
	p.Demo = demo.V
	p.Name = name.V
	p.ShortDescription = short.V
	p.Features = features.V
	p.Facilities = facilities.V
	p.FAQ = faq.V
	p.SEO = seo.V
	return &p, nil
}
