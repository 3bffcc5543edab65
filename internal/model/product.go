package model

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/trialvo/trialvo-backend/internal/patch"
)

// Product mirrors a row of the `products` table.  Every bilingual or
// multi-valued attribute is one structured column.
type Product struct {
	ID               string          `json:"id"`
	Slug             string          `json:"slug"`
	Category         string          `json:"category"`
	PriceBDT         decimal.Decimal `json:"price_bdt"`
	PriceUSD         decimal.Decimal `json:"price_usd"`
	Thumbnail        string          `json:"thumbnail"`
	Images           ProductImages   `json:"images"`
	VideoURL         *string         `json:"video_url"`
	Demo             []DemoAccess    `json:"demo"`
	Name             Bilingual       `json:"name"`
	ShortDescription Bilingual       `json:"short_description"`
	Features         BilingualList   `json:"features"`
	Facilities       BilingualList   `json:"facilities"`
	FAQ              []FAQItem       `json:"faq"`
	SEO              SEO             `json:"seo"`
	IsFeatured       bool            `json:"is_featured"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DefaultCategory is used when a product is created without one.
const DefaultCategory = "ecommerce"

// ProductInput is the create body.  Slug is derived from the English name
// when absent.
type ProductInput struct {
	Slug             string          `json:"slug"`
	Category         string          `json:"category"`
	PriceBDT         decimal.Decimal `json:"price_bdt"`
	PriceUSD         decimal.Decimal `json:"price_usd"`
	Thumbnail        string          `json:"thumbnail"`
	Images           ProductImages   `json:"images"`
	VideoURL         *string         `json:"video_url"`
	Demo             []DemoAccess    `json:"demo"`
	Name             Bilingual       `json:"name"`
	ShortDescription Bilingual       `json:"short_description"`
	Features         BilingualList   `json:"features"`
	Facilities       BilingualList   `json:"facilities"`
	FAQ              []FAQItem       `json:"faq"`
	SEO              SEO             `json:"seo"`
	IsFeatured       *patch.Flag     `json:"is_featured"`
	IsActive         *patch.Flag     `json:"is_active"`
}

// ToProduct applies creation defaults.  A product is active unless
// is_active was sent as false, and featured only when asked.
func (in ProductInput) ToProduct() Product {
	p := Product{
		Slug:             strings.TrimSpace(in.Slug),
		Category:         strings.TrimSpace(in.Category),
		PriceBDT:         in.PriceBDT,
		PriceUSD:         in.PriceUSD,
		Thumbnail:        in.Thumbnail,
		Images:           in.Images,
		Demo:             in.Demo,
		Name:             in.Name,
		ShortDescription: in.ShortDescription,
		Features:         in.Features,
		Facilities:       in.Facilities,
		FAQ:              in.FAQ,
		SEO:              in.SEO,
		IsFeatured:       in.IsFeatured != nil && bool(*in.IsFeatured),
		IsActive:         in.IsActive == nil || bool(*in.IsActive),
	}
	if in.VideoURL != nil && *in.VideoURL != "" {
		v := *in.VideoURL
		p.VideoURL = &v
	}
	if p.Slug == "" {
		p.Slug = slug.Make(in.Name.Pick())
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Demo == nil {
		p.Demo = []DemoAccess{}
	}
	if p.FAQ == nil {
		p.FAQ = []FAQItem{}
	}
	return p
}

// ProductPatch lists the columns an admin may change on a product.  Nil
// fields are left untouched.
type ProductPatch struct {
	Slug             *string          `json:"slug"`
	Category         *string          `json:"category"`
	PriceBDT         *decimal.Decimal `json:"price_bdt"`
	PriceUSD         *decimal.Decimal `json:"price_usd"`
	Thumbnail        *string          `json:"thumbnail"`
	Images           *ProductImages   `json:"images"`
	VideoURL         *string          `json:"video_url"`
	Demo             *[]DemoAccess    `json:"demo"`
	Name             *Bilingual       `json:"name"`
	ShortDescription *Bilingual       `json:"short_description"`
	Features         *BilingualList   `json:"features"`
	Facilities       *BilingualList   `json:"facilities"`
	FAQ              *[]FAQItem       `json:"faq"`
	SEO              *SEO             `json:"seo"`
	IsFeatured       *patch.Flag      `json:"is_featured"`
	IsActive         *patch.Flag      `json:"is_active"`
}

// Fields returns the supplied columns in declaration order.
func (p ProductPatch) Fields() []patch.Field {
	var f []patch.Field
	f = patch.Set(f, "slug", patch.Scalar, p.Slug)
	f = patch.Set(f, "category", patch.Scalar, p.Category)
	f = patch.Set(f, "price_bdt", patch.Scalar, p.PriceBDT)
	f = patch.Set(f, "price_usd", patch.Scalar, p.PriceUSD)
	f = patch.Set(f, "thumbnail", patch.Scalar, p.Thumbnail)
	f = patch.Set(f, "images", patch.Structured, p.Images)
	if p.VideoURL != nil && *p.VideoURL == "" {
		// cleared, stored as NULL like an empty video_url on create
		f = append(f, patch.Field{Column: "video_url", Kind: patch.Scalar})
	} else {
		f = patch.Set(f, "video_url", patch.Scalar, p.VideoURL)
	}
	f = patch.Set(f, "demo", patch.Structured, p.Demo)
	f = patch.Set(f, "name", patch.Structured, p.Name)
	f = patch.Set(f, "short_description", patch.Structured, p.ShortDescription)
	f = patch.Set(f, "features", patch.Structured, p.Features)
	f = patch.Set(f, "facilities", patch.Structured, p.Facilities)
	f = patch.Set(f, "faq", patch.Structured, p.FAQ)
	f = patch.Set(f, "seo", patch.Structured, p.SEO)
	f = patch.Set(f, "is_featured", patch.Boolean, p.IsFeatured)
	f = patch.Set(f, "is_active", patch.Boolean, p.IsActive)
	return f
}

// Apply copies the supplied fields onto dst so the merged product can be
// validated before the update is stored.
func (p ProductPatch) Apply(dst *Product) {
	if p.Slug != nil {
		dst.Slug = *p.Slug
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.PriceBDT != nil {
		dst.PriceBDT = *p.PriceBDT
	}
	if p.PriceUSD != nil {
		dst.PriceUSD = *p.PriceUSD
	}
	if p.Thumbnail != nil {
		dst.Thumbnail = *p.Thumbnail
	}
	if p.Images != nil {
		dst.Images = *p.Images
	}
	if p.VideoURL != nil {
		dst.VideoURL = nil
		if v := *p.VideoURL; v != "" {
			dst.VideoURL = &v
		}
	}
	if p.Demo != nil {
		dst.Demo = *p.Demo
	}
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.ShortDescription != nil {
		dst.ShortDescription = *p.ShortDescription
	}
	if p.Features != nil {
		dst.Features = *p.Features
	}
	if p.Facilities != nil {
		dst.Facilities = *p.Facilities
	}
	if p.FAQ != nil {
		dst.FAQ = *p.FAQ
	}
	if p.SEO != nil {
		dst.SEO = *p.SEO
	}
	if p.IsFeatured != nil {
		dst.IsFeatured = bool(*p.IsFeatured)
	}
	if p.IsActive != nil {
		dst.IsActive = bool(*p.IsActive)
	}
}
