package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, offset, limit)
}

func (s *OrderService) PatchOrder(ctx context.Context, req transport.PatchOrderRequest, id uint) (*models.Order, error) {
	if req.Quantity != nil && *req.Quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	order, err := s.Repo.PatchOrder(ctx, req, id)
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		return notFound(err, "order", id)
	}
	return nil
}
