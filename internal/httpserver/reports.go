package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkraev/pos-backend/internal/logging"
	"github.com/nkraev/pos-backend/internal/service"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	Svc *service.ReportService
}

func parseDate(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, errors.New(name + " required")
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errors.New(name + " must be YYYY-MM-DD")
	}
	return d, nil
}

func parseOptionalDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errors.New(name + " must be YYYY-MM-DD")
	}
	return &d, nil
}

func parseRange(c echo.Context) (time.Time, time.Time, error) {
	start, err := parseDate(c, "start_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(c, "end_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (h *ReportHandler) Sales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.sales")

	start, end, err := parseRange(c)
	if err != nil {
		l.Warn("sales_report_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.Svc.Sales(ctx, start, end)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("sales_report_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("sales_report_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot build sales report")
	}

	return c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Customers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.customers")

	start, err := parseOptionalDate(c, "start_date")
	if err != nil {
		l.Warn("customer_report_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	end, err := parseOptionalDate(c, "end_date")
	if err != nil {
		l.Warn("customer_report_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.Svc.Customers(ctx, start, end)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("customer_report_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("customer_report_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot build customer report")
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) OrderDetails(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reports.order_details")

	start, end, err := parseRange(c)
	if err != nil {
		l.Warn("order_details_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.Svc.OrderDetails(ctx, start, end)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("order_details_failed", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("order_details_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot build order details report")
	}

	return c.JSON(http.StatusOK, rows)
}
