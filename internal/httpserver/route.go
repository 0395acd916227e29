package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/session"
)

type Deps struct {
	Storefront    *StorefrontHTTP
	Admin         *AdminHTTP
	SessionSecret []byte
	MediaRoot     string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.MediaRoot != "" {
		e.Static("/media", d.MediaRoot)
	}

	pages := e.Group("", session.Middleware(d.SessionSecret))
	pages.GET("/", d.Storefront.Index)
	pages.GET("/add/:id", d.Storefront.AddToCart)
	pages.GET("/cart", d.Storefront.ViewCart)
	pages.GET("/checkout", d.Storefront.Checkout)

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", d.Admin.GetProducts)
	products.GET("/:id", d.Admin.GetProduct)

	v1.GET("/categories", d.Admin.GetCategories)

	admin := v1.Group("/admin")

	admin.POST("/products", d.Admin.CreateProduct)
	admin.PATCH("/products/:id", d.Admin.PatchProduct)
	admin.DELETE("/products/:id", d.Admin.DeleteProduct)

	admin.POST("/categories", d.Admin.CreateCategory)
	admin.PATCH("/categories/:id", d.Admin.PatchCategory)
	admin.DELETE("/categories/:id", d.Admin.DeleteCategory)

	admin.GET("/orders", d.Admin.GetOrders)
	admin.GET("/orders/:id", d.Admin.GetOrder)
	admin.PATCH("/orders/:id", d.Admin.PatchOrder)
	admin.DELETE("/orders/:id", d.Admin.DeleteOrder)
}
