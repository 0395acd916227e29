package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/transport"
)

// AddOpenOrder bumps the quantity of the session's open line for the
// product, creating the line when there is none. The increment runs as
// a single UPDATE so concurrent adds never lose each other.
func (r *GormRepo) AddOpenOrder(ctx context.Context, sessionID uuid.UUID, productID uint, quantity uint) (*models.Order, error) {
	order := models.Order{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("session_id = ? AND product_id = ? AND completed = ?", sessionID, productID, false).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("session_id = ? AND product_id = ? AND completed = ?", sessionID, productID, false).First(&order).Error
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OpenOrders(ctx context.Context, sessionID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("session_id = ? AND completed = ?", sessionID, false).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CompleteOpenOrders flips every open line of the session to completed
// and returns the closed lines. A session with an empty cart gets an
// empty slice back, not an error.
func (r *GormRepo) CompleteOpenOrders(ctx context.Context, sessionID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Order{}).
			Where("session_id = ? AND completed = ?", sessionID, false).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Model(&models.Order{}).
			Where("id IN ?", ids).
			Update("completed", true).Error; err != nil {
			return err
		}

		return tx.Preload("Product").Where("id IN ?", ids).Order("id ASC").Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).Preload("Product").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) PatchOrder(ctx context.Context, req transport.PatchOrderRequest, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.Completed != nil {
		order.Completed = *req.Completed
	}

	if err := r.DB.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Preload("Product").First(&order, order.ID).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Order{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
