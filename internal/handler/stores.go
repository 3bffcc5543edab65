package handler

import (
	"context"

	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/order"
	"github.com/trialvo/trialvo-backend/internal/utils"
)

// The stores below are satisfied by the MySQL repositories.  Lookups
// return repository.ErrNotFound for unknown keys.

type ProductStore interface {
	ListActive(ctx context.Context, category string) ([]model.Product, error)
	ListFeatured(ctx context.Context) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	Related(ctx context.Context, slug string, limit int) ([]model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id string, p model.ProductPatch) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByCode(ctx context.Context, code string) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListWithProducts(ctx context.Context) ([]model.AdminOrder, error)
	UpdateStatus(ctx context.Context, id string, st order.Status) error
	Summaries(ctx context.Context) ([]order.Summary, error)
}

type TestimonialStore interface {
	ListActive(ctx context.Context) ([]model.Testimonial, error)
	ListAll(ctx context.Context) ([]model.Testimonial, error)
	GetByID(ctx context.Context, id string) (*model.Testimonial, error)
	Create(ctx context.Context, t *model.Testimonial) error
	Update(ctx context.Context, id string, p model.TestimonialPatch) error
	Delete(ctx context.Context, id string) error
}

type MessageStore interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
	Update(ctx context.Context, id string, p model.MessagePatch) error
	Delete(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int, error)
}

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminProfile, error)
	GetByID(ctx context.Context, id string) (*model.AdminProfile, error)
	Update(ctx context.Context, id string, p model.AdminProfilePatch) error
}

// TokenIssuer is satisfied by *utils.TokenIssuer.
type TokenIssuer interface {
	Issue(id, email, role string) (utils.AccessToken, error)
}
