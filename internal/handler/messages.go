package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/model"
)

type MessageHandler struct {
	Messages MessageStore
}

func NewMessageHandler(store MessageStore) *MessageHandler {
	return &MessageHandler{Messages: store}
}

// Create stores a contact form submission.
func (h *MessageHandler) Create(c echo.Context) error {
	var req model.ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	m := model.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Messages.Create(ctx, &m); err != nil {
		return err
	}
	created, err := h.Messages.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *MessageHandler) AdminList(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Messages.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

func (h *MessageHandler) UnreadCount(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	n, err := h.Messages.UnreadCount(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

// MarkRead sets is_read from the body.  A body without is_read is a 400.
func (h *MessageHandler) MarkRead(c echo.Context) error {
	var p model.MessagePatch
	if err := bindAndValidate(c, &p); err != nil {
		return err
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Messages.Update(ctx, c.Param("id"), p); err != nil {
		return storeErr(err, "message")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "read status updated"})
}

func (h *MessageHandler) Delete(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Messages.Delete(ctx, c.Param("id")); err != nil {
		return storeErr(err, "message")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "message deleted"})
}
