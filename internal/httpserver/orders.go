package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkraev/pos-backend/internal/logging"
	authmw "github.com/nkraev/pos-backend/internal/middleware/auth"
	"github.com/nkraev/pos-backend/internal/mykafka"
	"github.com/nkraev/pos-backend/internal/service"
	"github.com/nkraev/pos-backend/internal/transport"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	orderID, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	event := map[string]any{
		"type":     "order_created",
		"order_id": orderID,
		"lines":    len(req.Cart),
	}
	if id := authmw.IdentityFrom(c); id != nil {
		event["cashier"] = id.Username
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, mykafka.TopicOrders, strconv.FormatUint(uint64(orderID), 10), event); err != nil {
		l.Error("kafka_publish_failed", "error", err)
	}

	l.Info("create_order_success", "order_id", orderID)
	return c.JSON(http.StatusCreated, transport.CreateOrderResponse{OrderID: orderID})
}

func (h *OrderHandler) ListOrderItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list_items")

	id, err := pathID(c)
	if err != nil {
		l.Warn("list_order_items_failed", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.Svc.ListOrderItems(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("list_order_items_failed", "status", 404, "order_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("list_order_items_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list order items")
	}

	return c.JSON(http.StatusOK, rows)
}
