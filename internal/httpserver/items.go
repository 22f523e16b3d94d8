package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkraev/pos-backend/internal/logging"
	"github.com/nkraev/pos-backend/internal/mykafka"
	"github.com/nkraev/pos-backend/internal/service"
	"github.com/nkraev/pos-backend/internal/transport"
)

type ItemHandler struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *ItemHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicCatalog, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("id is not a positive integer")
	}
	return uint(id), nil
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "items.list")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		l.Error("list_items_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list items")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "items.create")

	var req transport.ItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	id, err := h.Svc.CreateItem(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_item_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create item")
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":    "item_created",
		"item_id": id,
		"name":    req.Name,
	})
	l.Info("create_item_success", "item_id", id)
	return c.JSON(http.StatusCreated, transport.CreateItemResponse{ItemID: id})
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "items.update")

	id, err := pathID(c)
	if err != nil {
		l.Warn("update_item_failed", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req transport.ItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateItem(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_item_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_item_failed", "status", 404, "item_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		default:
			l.Error("update_item_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update item")
		}
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":    "item_updated",
		"item_id": id,
		"name":    req.Name,
	})
	l.Info("update_item_success", "item_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "items.delete")

	id, err := pathID(c)
	if err != nil {
		l.Warn("delete_item_failed", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_item_failed", "status", 404, "item_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		l.Error("delete_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete item")
	}

	h.publish(c, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":    "item_deleted",
		"item_id": id,
	})
	l.Info("delete_item_success", "item_id", id)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
