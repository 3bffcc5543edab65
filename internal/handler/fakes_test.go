package handler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/order"
	"github.com/trialvo/trialvo-backend/internal/patch"
	"github.com/trialvo/trialvo-backend/internal/queue"
	"github.com/trialvo/trialvo-backend/internal/repository"
)

// In-memory stores with the same error contract as the MySQL repositories.

type memProducts struct {
	mu    sync.Mutex
	seq   int
	items []model.Product
}

func (s *memProducts) find(pred func(model.Product) bool) int {
	for i, p := range s.items {
		if pred(p) {
			return i
		}
	}
	return -1
}

func (s *memProducts) ListActive(_ context.Context, category string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.items {
		if p.IsActive && (category == "" || p.Category == category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProducts) ListFeatured(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.items {
		if p.IsActive && p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProducts) ListAll(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Product(nil), s.items...), nil
}

func (s *memProducts) Related(_ context.Context, slug string, limit int) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(func(p model.Product) bool { return p.Slug == slug })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	src := s.items[i]
	var out []model.Product
	for _, p := range s.items {
		if len(out) == limit {
			break
		}
		if p.ID != src.ID && p.IsActive && p.Category == src.Category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProducts) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(func(p model.Product) bool { return p.Slug == slug })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := s.items[i]
	return &p, nil
}

func (s *memProducts) GetByID(_ context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(func(p model.Product) bool { return p.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := s.items[i]
	return &p, nil
}

func (s *memProducts) Create(_ context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(func(x model.Product) bool { return x.Slug == p.Slug }) >= 0 {
		return repository.ErrConflict
	}
	s.seq++
	p.ID = fmt.Sprintf("p%d", s.seq)
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.items = append(s.items, *p)
	return nil
}

func (s *memProducts) Update(_ context.Context, id string, p model.ProductPatch) error {
	if len(p.Fields()) == 0 {
		return patch.ErrNoFields
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(func(x model.Product) bool { return x.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	p.Apply(&s.items[i])
	return nil
}

func (s *memProducts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.find(func(x model.Product) bool { return x.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *memProducts) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

type memOrders struct {
	mu       sync.Mutex
	seq      int
	codes    *order.CodeGenerator
	items    []model.Order
	products *memProducts
}

func newMemOrders(products *memProducts) *memOrders {
	return &memOrders{codes: order.NewCodeGenerator(), products: products}
}

func (s *memOrders) index(pred func(model.Order) bool) int {
	for i, o := range s.items {
		if pred(o) {
			return i
		}
	}
	return -1
}

func (s *memOrders) Create(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	o.ID = fmt.Sprintf("o%d", s.seq)
	o.OrderID = s.codes.Next()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	s.items = append(s.items, *o)
	return nil
}

func (s *memOrders) GetByCode(_ context.Context, code string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(func(o model.Order) bool { return o.OrderID == code })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	o := s.items[i]
	return &o, nil
}

func (s *memOrders) GetByID(_ context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(func(o model.Order) bool { return o.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	o := s.items[i]
	return &o, nil
}

func (s *memOrders) ListWithProducts(ctx context.Context) ([]model.AdminOrder, error) {
	s.mu.Lock()
	items := append([]model.Order(nil), s.items...)
	s.mu.Unlock()

	out := make([]model.AdminOrder, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		ao := model.AdminOrder{Order: items[i]}
		if pid := items[i].ProductID; pid != nil && s.products != nil {
			if p, err := s.products.GetByID(ctx, *pid); err == nil {
				ao.Products = &model.OrderProduct{Name: p.Name, Thumbnail: p.Thumbnail, Slug: p.Slug}
			}
		}
		out = append(out, ao)
	}
	return out, nil
}

func (s *memOrders) UpdateStatus(_ context.Context, id string, st order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(func(o model.Order) bool { return o.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items[i].Status = st
	return nil
}

func (s *memOrders) Summaries(_ context.Context) ([]order.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]order.Summary, len(s.items))
	for i, o := range s.items {
		out[i] = order.Summary{Status: o.Status, TotalBDT: o.TotalBDT}
	}
	return out, nil
}

type memTestimonials struct {
	mu    sync.Mutex
	seq   int
	items []model.Testimonial
}

func (s *memTestimonials) index(id string) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *memTestimonials) ListActive(_ context.Context) ([]model.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Testimonial
	for _, t := range s.items {
		if t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memTestimonials) ListAll(_ context.Context) ([]model.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Testimonial(nil), s.items...), nil
}

func (s *memTestimonials) GetByID(_ context.Context, id string) (*model.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	t := s.items[i]
	return &t, nil
}

func (s *memTestimonials) Create(_ context.Context, t *model.Testimonial) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t.ID = fmt.Sprintf("t%d", s.seq)
	s.items = append(s.items, *t)
	return nil
}

func (s *memTestimonials) Update(_ context.Context, id string, p model.TestimonialPatch) error {
	if len(p.Fields()) == 0 {
		return patch.ErrNoFields
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	t := &s.items[i]
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Role != nil {
		t.Role = *p.Role
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	if p.Avatar != nil {
		t.Avatar = *p.Avatar
	}
	if p.IsActive != nil {
		t.IsActive = bool(*p.IsActive)
	}
	return nil
}

func (s *memTestimonials) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

type memMessages struct {
	mu    sync.Mutex
	seq   int
	items []model.ContactMessage
}

func (s *memMessages) index(id string) int {
	for i, m := range s.items {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *memMessages) Create(_ context.Context, m *model.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	m.ID = fmt.Sprintf("m%d", s.seq)
	s.items = append(s.items, *m)
	return nil
}

func (s *memMessages) GetByID(_ context.Context, id string) (*model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	m := s.items[i]
	return &m, nil
}

func (s *memMessages) List(_ context.Context) ([]model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ContactMessage(nil), s.items...), nil
}

func (s *memMessages) Update(_ context.Context, id string, p model.MessagePatch) error {
	if len(p.Fields()) == 0 {
		return patch.ErrNoFields
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items[i].IsRead = bool(*p.IsRead)
	return nil
}

func (s *memMessages) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func (s *memMessages) UnreadCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.items {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

type memAdmins struct {
	mu    sync.Mutex
	items map[string]*model.AdminProfile
}

func newMemAdmins(profiles ...model.AdminProfile) *memAdmins {
	s := &memAdmins{items: map[string]*model.AdminProfile{}}
	for i := range profiles {
		p := profiles[i]
		s.items[p.ID] = &p
	}
	return s
}

func (s *memAdmins) GetByEmail(_ context.Context, email string) (*model.AdminProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.items {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memAdmins) GetByID(_ context.Context, id string) (*model.AdminProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memAdmins) Update(_ context.Context, id string, p model.AdminProfilePatch) error {
	if len(p.Fields()) == 0 {
		return patch.ErrNoFields
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.FullName != nil {
		a.FullName = *p.FullName
	}
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
	return nil
}

// recorder captures published events.
type recorder struct {
	mu     sync.Mutex
	events []queue.OrderEvent
}

func (r *recorder) Publish(_ context.Context, ev queue.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) snapshot() []queue.OrderEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]queue.OrderEvent(nil), r.events...)
}
