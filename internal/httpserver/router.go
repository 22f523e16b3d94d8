package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/nkraev/pos-backend/internal/middleware/auth"
)

type Deps struct {
	DB              *gorm.DB
	AuthHandler     *AuthHandler
	ItemHandler     *ItemHandler
	OrderHandler    *OrderHandler
	CustomerHandler *CustomerHandler
	ReportHandler   *ReportHandler
	AuthMW          *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "POS API is running"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/token", d.AuthHandler.Token)

	v1 := e.Group("/api/v1")

	v1.GET("/items", d.ItemHandler.ListItems)

	adminItems := v1.Group("/items", d.AuthMW.RequireAdmin)
	adminItems.POST("", d.ItemHandler.CreateItem)
	adminItems.PUT("/:id", d.ItemHandler.UpdateItem)
	adminItems.DELETE("/:id", d.ItemHandler.DeleteItem)

	orders := v1.Group("/orders", d.AuthMW.RequireUser)
	orders.POST("", d.OrderHandler.CreateOrder)

	v1.GET("/orders/:id/items", d.OrderHandler.ListOrderItems, d.AuthMW.RequireAdmin)

	customers := v1.Group("/customers", d.AuthMW.RequireUser)
	customers.GET("/search", d.CustomerHandler.Search)
	customers.POST("", d.CustomerHandler.CreateCustomer)

	customersAdmin := v1.Group("/customers", d.AuthMW.RequireAdmin)
	customersAdmin.DELETE("/:id", d.CustomerHandler.DeleteCustomer)
	customersAdmin.GET("/:id/orders", d.CustomerHandler.ListOrders)

	reports := v1.Group("/reports", d.AuthMW.RequireAdmin)
	reports.GET("/sales", d.ReportHandler.Sales)
	reports.GET("/customers", d.ReportHandler.Customers)
	reports.GET("/orders-details", d.ReportHandler.OrderDetails)
}
