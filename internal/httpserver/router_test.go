package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkraev/pos-backend/internal/models"
	"github.com/nkraev/pos-backend/internal/service"
	"github.com/nkraev/pos-backend/internal/transport"
)

func doJSON(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "cashier", "pass123", service.RoleUser)

	form := url.Values{"username": {"cashier"}, "password": {"pass123"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestTokenEndpoint_BadCredentials(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "cashier", "pass123", service.RoleUser)

	form := url.Values{"username": {"cashier"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenEndpoint_MissingFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader("username=cashier"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListItems_Public(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := doJSON(env.Echo, http.MethodGet, "/api/v1/items", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCreateItem_RequiresAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "cashier", "pass123", service.RoleUser)
	env.seedUser(t, "boss", "admin123", service.RoleAdmin)

	body := `{"name":"Tea","price":2.5,"unit":"cup"}`

	rec := doJSON(env.Echo, http.MethodPost, "/api/v1/items", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(env.Echo, http.MethodPost, "/api/v1/items", env.token(t, "cashier", "pass123"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(env.Echo, http.MethodPost, "/api/v1/items", env.token(t, "boss", "admin123"), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp transport.CreateItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ItemID)
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "cashier", "pass123", service.RoleUser)
	token := env.token(t, "cashier", "pass123")

	item := models.Item{Name: "Tea", IsDiscountEligible: true}
	require.NoError(t, env.Repo.DB.Create(&item).Error)

	body := `{"cart":[{"id":` + strconv.FormatUint(uint64(item.ID), 10) + `,"quantity":2,"price":2.5}],"discountPercentage":0}`
	rec := doJSON(env.Echo, http.MethodPost, "/api/v1/orders", token, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp transport.CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.OrderID)

	var order models.Order
	require.NoError(t, env.Repo.DB.First(&order, resp.OrderID).Error)
	assert.True(t, order.FinalTotal.Equal(decimal.NewFromInt(5)))
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "cashier", "pass123", service.RoleUser)

	rec := doJSON(env.Echo, http.MethodPost, "/api/v1/orders", env.token(t, "cashier", "pass123"),
		`{"cart":[],"discountPercentage":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_RequiresToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := doJSON(env.Echo, http.MethodPost, "/api/v1/orders", "",
		`{"cart":[{"id":1,"quantity":1,"price":1}]}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSalesReport_AdminOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "cashier", "pass123", service.RoleUser)
	env.seedUser(t, "boss", "admin123", service.RoleAdmin)

	target := "/api/v1/reports/sales?start_date=2024-01-01&end_date=2024-01-31"

	rec := doJSON(env.Echo, http.MethodGet, target, env.token(t, "cashier", "pass123"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(env.Echo, http.MethodGet, target, env.token(t, "boss", "admin123"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report transport.SalesReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Zero(t, report.Summary.TotalOrders)
	assert.NotNil(t, report.SalesByItem)
}

func TestSalesReport_RejectsMalformedDates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "boss", "admin123", service.RoleAdmin)
	token := env.token(t, "boss", "admin123")

	rec := doJSON(env.Echo, http.MethodGet, "/api/v1/reports/sales?start_date=01-01-2024&end_date=2024-01-31", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(env.Echo, http.MethodGet, "/api/v1/reports/sales?start_date=2024-01-01", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerSearch_RequiresQuery(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "cashier", "pass123", service.RoleUser)
	token := env.token(t, "cashier", "pass123")

	rec := doJSON(env.Echo, http.MethodGet, "/api/v1/customers/search", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.NoError(t, env.Repo.DB.Create(&models.Customer{Name: "Ravi"}).Error)
	rec = doJSON(env.Echo, http.MethodGet, "/api/v1/customers/search?q=ravi", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var customers []models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "Ravi", customers[0].Name)
}

func TestListOrderItems_AdminOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, "boss", "admin123", service.RoleAdmin)
	token := env.token(t, "boss", "admin123")

	rec := doJSON(env.Echo, http.MethodGet, "/api/v1/orders/999/items", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

