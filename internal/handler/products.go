package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/repository"
)

// relatedLimit caps GET /api/products/:slug/related.
const relatedLimit = 3

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type ProductHandler struct {
	Products ProductStore
}

func NewProductHandler(products ProductStore) *ProductHandler {
	return &ProductHandler{Products: products}
}

// List returns active products, optionally filtered by ?category=.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Products.ListActive(ctx, strings.TrimSpace(c.QueryParam("category")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

func (h *ProductHandler) Featured(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Products.ListFeatured(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	p, err := h.Products.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return storeErr(err, "product")
	}
	return c.JSON(http.StatusOK, p)
}

// Related lists other active products in the same category.  An unknown
// slug yields an empty list, not a 404.
func (h *ProductHandler) Related(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Products.Related(ctx, c.Param("slug"), relatedLimit)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

// AdminList returns every product including inactive ones.
func (h *ProductHandler) AdminList(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Products.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

func (h *ProductHandler) Create(c echo.Context) error {
	var in model.ProductInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	p := in.ToProduct()
	if err := checkProduct(p); err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Products.Create(ctx, &p); err != nil {
		return storeErr(err, "product")
	}
	created, err := h.Products.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update applies a partial update.  The merged product is checked before
// anything is written.
func (h *ProductHandler) Update(c echo.Context) error {
	var patch model.ProductPatch
	if err := bindAndValidate(c, &patch); err != nil {
		return err
	}
	id := c.Param("id")

	ctx, cancel := dbCtx(c)
	defer cancel()

	current, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "product")
	}
	merged := *current
	patch.Apply(&merged)
	if err := checkProduct(merged); err != nil {
		return err
	}

	if err := h.Products.Update(ctx, id, patch); err != nil {
		return storeErr(err, "product")
	}
	updated, err := h.Products.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "product")
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Products.Delete(ctx, c.Param("id")); err != nil {
		return storeErr(err, "product")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

func checkProduct(p model.Product) error {
	switch {
	case p.Name.IsZero():
		return badRequest("name is required")
	case !slugPattern.MatchString(p.Slug):
		return badRequest("slug must be lower-case words separated by hyphens")
	case p.PriceBDT.IsNegative() || p.PriceUSD.IsNegative():
		return badRequest("prices must not be negative")
	}
	return nil
}
