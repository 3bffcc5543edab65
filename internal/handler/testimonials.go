package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/model"
)

type TestimonialHandler struct {
	Testimonials TestimonialStore
}

func NewTestimonialHandler(store TestimonialStore) *TestimonialHandler {
	return &TestimonialHandler{Testimonials: store}
}

// List returns active testimonials for the storefront.
func (h *TestimonialHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Testimonials.ListActive(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

func (h *TestimonialHandler) AdminList(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Testimonials.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

func (h *TestimonialHandler) Create(c echo.Context) error {
	var in model.TestimonialInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	if in.Name.IsZero() || in.Content.IsZero() {
		return badRequest("name and content are required")
	}
	t := in.ToTestimonial()

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Testimonials.Create(ctx, &t); err != nil {
		return err
	}
	created, err := h.Testimonials.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TestimonialHandler) Update(c echo.Context) error {
	var p model.TestimonialPatch
	if err := bindAndValidate(c, &p); err != nil {
		return err
	}
	id := c.Param("id")

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Testimonials.Update(ctx, id, p); err != nil {
		return storeErr(err, "testimonial")
	}
	updated, err := h.Testimonials.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "testimonial")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *TestimonialHandler) Delete(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Testimonials.Delete(ctx, c.Param("id")); err != nil {
		return storeErr(err, "testimonial")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "testimonial deleted"})
}
