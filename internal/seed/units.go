package seed

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/repository"
	"github.com/trialvo/trialvo-backend/internal/utils"
)

//go:embed data/*.json
var data embed.FS

// Defaults returns the standard seed order: the admin account, then the
// catalog, then testimonials.
func Defaults(adminEmail, adminPassword string, cost int) []Unit {
	return []Unit{
		AdminUnit(adminEmail, adminPassword, cost),
		ProductsUnit(),
		TestimonialsUnit(),
	}
}

// AdminUnit creates the initial super admin.
func AdminUnit(email, password string, cost int) Unit {
	return Unit{
		Table: "admin_profiles",
		Run: func(ctx context.Context, tx *sql.Tx) (int, error) {
			hash, err := utils.HashPassword(password, cost)
			if err != nil {
				return 0, err
			}
			a := &model.AdminProfile{
				Email:        email,
				PasswordHash: hash,
				FullName:     "Super Admin",
				Role:         model.RoleSuperAdmin,
			}
			if err := repository.NewAdminRepo(tx).Create(ctx, a); err != nil {
				return 0, err
			}
			return 1, nil
		},
	}
}

// ProductsUnit loads the sample catalog.
func ProductsUnit() Unit {
	return Unit{
		Table: "products",
		Run: func(ctx context.Context, tx *sql.Tx) (int, error) {
			var inputs []model.ProductInput
			if err := load("data/products.json", &inputs); err != nil {
				return 0, err
			}
			repo := repository.NewProductRepo(tx)
			for i, in := range inputs {
				p := in.ToProduct()
				if err := repo.Create(ctx, &p); err != nil {
					return i, fmt.Errorf("product %s: %w", p.Slug, err)
				}
			}
			return len(inputs), nil
		},
	}
}

// TestimonialsUnit loads the storefront's starter reviews.
func TestimonialsUnit() Unit {
	return Unit{
		Table: "testimonials",
		Run: func(ctx context.Context, tx *sql.Tx) (int, error) {
			var inputs []model.TestimonialInput
			if err := load("data/testimonials.json", &inputs); err != nil {
				return 0, err
			}
			repo := repository.NewTestimonialRepo(tx)
			for _, in := range inputs {
				t := in.ToTestimonial()
				if err := repo.Create(ctx, &t); err != nil {
					return 0, err
				}
			}
			return len(inputs), nil
		},
	}
}

func load(name string, dst any) error {
	b, err := data.ReadFile(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
