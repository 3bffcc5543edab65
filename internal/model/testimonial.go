package model

import (
	"time"

	"github.com/trialvo/trialvo-backend/internal/patch"
)

// Testimonial mirrors a row of the `testimonials` table.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      Bilingual `json:"name"`
	Role      Bilingual `json:"role"`
	Content   Bilingual `json:"content"`
	Rating    int       `json:"rating"`
	Avatar    string    `json:"avatar"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultRating is used when a testimonial is created without one.
const DefaultRating = 5

// TestimonialInput is the create body.
type TestimonialInput struct {
	Name     Bilingual   `json:"name"`
	Role     Bilingual   `json:"role"`
	Content  Bilingual   `json:"content"`
	Rating   int         `json:"rating" validate:"omitempty,min=1,max=5"`
	Avatar   string      `json:"avatar"`
	IsActive *patch.Flag `json:"is_active"`
}

// ToTestimonial applies creation defaults: rating 5 and active unless
// is_active was explicitly false.
func (in TestimonialInput) ToTestimonial() Testimonial {
	t := Testimonial{
		Name:     in.Name,
		Role:     in.Role,
		Content:  in.Content,
		Rating:   in.Rating,
		Avatar:   in.Avatar,
		IsActive: in.IsActive == nil || bool(*in.IsActive),
	}
	if t.Rating == 0 {
		t.Rating = DefaultRating
	}
	return t
}

// TestimonialPatch lists the columns an admin may change on a testimonial.
type TestimonialPatch struct {
	Name     *Bilingual  `json:"name"`
	Role     *Bilingual  `json:"role"`
	Content  *Bilingual  `json:"content"`
	Rating   *int        `json:"rating" validate:"omitempty,min=1,max=5"`
	Avatar   *string     `json:"avatar"`
	IsActive *patch.Flag `json:"is_active"`
}

func (p TestimonialPatch) Fields() []patch.Field {
	var f []patch.Field
	f = patch.Set(f, "name", patch.Structured, p.Name)
	f = patch.Set(f, "role", patch.Structured, p.Role)
	f = patch.Set(f, "content", patch.Structured, p.Content)
	f = patch.Set(f, "rating", patch.Scalar, p.Rating)
	f = patch.Set(f, "avatar", patch.Scalar, p.Avatar)
	f = patch.Set(f, "is_active", patch.Boolean, p.IsActive)
	return f
}
