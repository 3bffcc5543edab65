package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trialvo/trialvo-backend/internal/order"
)

type DashboardHandler struct {
	Orders   OrderStore
	Products ProductStore
	Messages MessageStore
}

func NewDashboardHandler(orders OrderStore, products ProductStore, messages MessageStore) *DashboardHandler {
	return &DashboardHandler{Orders: orders, Products: products, Messages: messages}
}

type dashboardResp struct {
	Total          int         `json:"total"`
	Pending        int         `json:"pending"`
	Confirmed      int         `json:"confirmed"`
	Completed      int         `json:"completed"`
	Revenue        json.Number `json:"revenue"`
	TotalProducts  int         `json:"totalProducts"`
	UnreadMessages int         `json:"unreadMessages"`
}

// Stats aggregates orders, products and unread messages.  Revenue is a
// JSON number, exact to the paisa.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	summaries, err := h.Orders.Summaries(ctx)
	if err != nil {
		return err
	}
	products, err := h.Products.Count(ctx)
	if err != nil {
		return err
	}
	unread, err := h.Messages.UnreadCount(ctx)
	if err != nil {
		return err
	}

	st := order.ComputeStats(summaries)
	return c.JSON(http.StatusOK, dashboardResp{
		Total:          st.Total,
		Pending:        st.Pending,
		Confirmed:      st.Confirmed,
		Completed:      st.Completed,
		Revenue:        json.Number(st.Revenue.String()),
		TotalProducts:  products,
		UnreadMessages: unread,
	})
}
