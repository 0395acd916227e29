package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/session"
)

type StorefrontHTTP struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Producer *mykafka.Producer
}

func (h *StorefrontHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *StorefrontHTTP) Index(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.index")

	categories, err := h.Catalog.Catalog(ctx)
	if err != nil {
		l.Error("index_failed", "status", 500, "reason", "cannot load catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load catalog")
	}

	return c.Render(http.StatusOK, "index", map[string]any{
		"Title":      "Storefront",
		"Categories": categories,
	})
}

// AddToCart handles the storefront's add link: one click adds one unit,
// then sends the visitor back to the product list.
func (h *StorefrontHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.add_to_cart")

	sessionID, err := session.FromContext(c)
	if err != nil {
		return err
	}

	idParam := c.Param("id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "id is not integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	order, err := h.Cart.Add(ctx, sessionID, uint(id), 1)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("add_to_cart_failed", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid request", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
		}
		l.Error("add_to_cart_failed", "status", 500, "reason", "cannot add to cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add to cart")
	}

	event := map[string]any{
		"type":      "cart_item_added",
		"sessionID": sessionID.String(),
		"productID": order.ProductID,
		"quantity":  order.Quantity,
	}
	h.publish(c, "cart_events", sessionID.String(), event)

	l.Info("add_to_cart_success", "product_id", order.ProductID, "quantity", order.Quantity)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *StorefrontHTTP) ViewCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.view_cart")

	sessionID, err := session.FromContext(c)
	if err != nil {
		return err
	}

	cart, err := h.Cart.ViewCart(ctx, sessionID)
	if err != nil {
		l.Error("view_cart_failed", "status", 500, "reason", "cannot load cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart")
	}

	return c.Render(http.StatusOK, "cart", map[string]any{
		"Title": "Your cart",
		"Cart":  cart,
	})
}

func (h *StorefrontHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.checkout")

	sessionID, err := session.FromContext(c)
	if err != nil {
		return err
	}

	cart, err := h.Cart.Checkout(ctx, sessionID)
	if err != nil {
		l.Error("checkout_failed", "status", 500, "reason", "cannot complete checkout", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot complete checkout")
	}

	if len(cart.Items) > 0 {
		event := map[string]any{
			"type":      "order_completed",
			"sessionID": sessionID.String(),
			"items":     len(cart.Items),
			"total":     cart.Total,
		}
		h.publish(c, "order_events", sessionID.String(), event)
	}

	l.Info("checkout_success", "items", len(cart.Items))
	return c.Render(http.StatusOK, "checkout", map[string]any{
		"Title": "Order confirmed",
		"Cart":  cart,
	})
}
