package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/trialvo/trialvo-backend/internal/model"
	"github.com/trialvo/trialvo-backend/internal/order"
	"github.com/trialvo/trialvo-backend/internal/queue"
	"github.com/trialvo/trialvo-backend/internal/service"
)

// OrderHandler serves checkout, order lookup and the admin order views.
type OrderHandler struct {
	Orders   OrderStore
	Events   service.EventPublisher
	Log      *zap.Logger
	now      func() time.Time
	inflight chan struct{}
}

// maxInflightEvents bounds concurrent event publishes.  Beyond it events
// are dropped and logged rather than queued.
const maxInflightEvents = 32

func NewOrderHandler(orders OrderStore, events service.EventPublisher, log *zap.Logger) *OrderHandler {
	if events == nil {
		events = service.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderHandler{
		Orders:   orders,
		Events:   events,
		Log:      log.Named("orders"),
		now:      time.Now,
		inflight: make(chan struct{}, maxInflightEvents),
	}
}

// Create stores a pending order and answers 201 with the stored row.
func (h *OrderHandler) Create(c echo.Context) error {
	var req model.CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.TotalBDT.IsNegative() {
		return badRequest("totalBdt must not be negative")
	}
	o := req.ToOrder()

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Orders.Create(ctx, &o); err != nil {
		return err
	}
	stored, err := h.Orders.GetByID(ctx, o.ID)
	if err != nil {
		return err
	}
	h.Log.Info("order created", zap.String("order_id", stored.OrderID), zap.String("total_bdt", stored.TotalBDT.String()))
	h.emit(service.OrderCreatedEvent(stored, h.now()))
	return c.JSON(http.StatusCreated, stored)
}

// Get looks an order up by its public code.
func (h *OrderHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	o, err := h.Orders.GetByCode(ctx, c.Param("orderId"))
	if err != nil {
		return storeErr(err, "order")
	}
	return c.JSON(http.StatusOK, o)
}

// AdminList returns every order with a summary of its product.
func (h *OrderHandler) AdminList(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Orders.ListWithProducts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orEmpty(items))
}

// UpdateStatus overwrites the status with any valid value; the lifecycle
// in order.SuggestedNext is advisory only.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req model.StatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	st, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	id := c.Param("id")

	ctx, cancel := dbCtx(c)
	defer cancel()

	current, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return storeErr(err, "order")
	}
	if err := h.Orders.UpdateStatus(ctx, id, st); err != nil {
		return storeErr(err, "order")
	}

	previous := current.Status
	current.Status = st
	h.emit(service.StatusChangedEvent(current, previous, h.now()))
	return c.JSON(http.StatusOK, echo.Map{"message": "order status updated", "status": st})
}

// emit publishes in the background so a slow broker never delays the
// response.
func (h *OrderHandler) emit(ev queue.OrderEvent) {
	select {
	case h.inflight <- struct{}{}:
	default:
		h.Log.Warn("event dropped, publisher busy", zap.String("type", ev.Type), zap.String("order_id", ev.OrderID))
		return
	}
	go func() {
		defer func() { <-h.inflight }()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Events.Publish(ctx, ev); err != nil && !errors.Is(err, context.Canceled) {
			h.Log.Warn("publish order event", zap.String("type", ev.Type), zap.String("order_id", ev.OrderID), zap.Error(err))
		}
	}()
}
