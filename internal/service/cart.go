package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// Cart is what the session sees: its open lines and their exact total.
type Cart struct {
	Items []models.Order  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func cartTotal(items []models.Order) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].TotalPrice())
	}
	return total
}

// Add bumps the session's open line for the product. The product must
// exist before anything is written, so a bad id leaves the cart alone.
func (s *CartService) Add(ctx context.Context, sessionID uuid.UUID, productID uint, quantity uint) (*models.Order, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("%w: session required", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, notFound(err, "product", productID)
	}

	return s.Repo.AddOpenOrder(ctx, sessionID, productID, quantity)
}

func (s *CartService) ViewCart(ctx context.Context, sessionID uuid.UUID) (*Cart, error) {
	items, err := s.Repo.OpenOrders(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Cart{Items: items, Total: cartTotal(items)}, nil
}

// Checkout closes every open line of the session. Running it twice in a
// row is harmless: the second call finds nothing open and returns an
// empty cart.
func (s *CartService) Checkout(ctx context.Context, sessionID uuid.UUID) (*Cart, error) {
	items, err := s.Repo.CompleteOpenOrders(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Cart{Items: items, Total: cartTotal(items)}, nil
}
