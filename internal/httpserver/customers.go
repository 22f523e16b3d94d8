package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/nkraev/pos-backend/internal/logging"
	"github.com/nkraev/pos-backend/internal/mykafka"
	"github.com/nkraev/pos-backend/internal/service"
	"github.com/nkraev/pos-backend/internal/service/search"
	"github.com/nkraev/pos-backend/internal/transport"
)

type CustomerHandler struct {
	Svc      *service.CustomerService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (h *CustomerHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicCustomers, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customers.create")

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_customer_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	customer, err := h.Svc.CreateCustomer(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_customer_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_customer_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create customer")
	}

	if h.ES != nil {
		if err := search.IndexCustomer(ctx, h.ES, customer); err != nil {
			l.Error("es_index_failed", "customer_id", customer.ID, "error", err)
		}
	}
	h.publish(c, strconv.FormatUint(uint64(customer.ID), 10), map[string]any{
		"type":        "customer_created",
		"customer_id": customer.ID,
		"name":        customer.Name,
	})

	l.Info("create_customer_success", "customer_id", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customers.delete")

	id, err := pathID(c)
	if err != nil {
		l.Warn("delete_customer_failed", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_customer_failed", "status", 404, "customer_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		l.Error("delete_customer_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete customer")
	}

	if h.ES != nil {
		if err := search.DeleteCustomer(ctx, h.ES, id); err != nil {
			l.Error("es_delete_failed", "customer_id", id, "error", err)
		}
	}
	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":        "customer_deleted",
		"customer_id": id,
	})

	l.Info("delete_customer_success", "customer_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Search consults the search index when one is configured and falls back to
// the database otherwise (or when the index errors).
func (h *CustomerHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customers.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	if h.ES != nil {
		customers, err := search.Customers(ctx, h.ES, q, service.SearchLimit)
		if err == nil {
			return c.JSON(http.StatusOK, customers)
		}
		l.Error("es_search_failed", "error", err)
	}

	customers, err := h.Svc.Search(ctx, q)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search customers")
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customers.list_orders")

	id, err := pathID(c)
	if err != nil {
		l.Warn("list_orders_failed", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	orders, err := h.Svc.ListOrders(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("list_orders_failed", "status", 404, "customer_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		l.Error("list_orders_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list customer orders")
	}

	return c.JSON(http.StatusOK, orders)
}
