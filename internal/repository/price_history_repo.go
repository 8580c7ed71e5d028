package repository

import (
	"context"

	"github.com/Sriraja07/BillSys/internal/model"

	"gorm.io/gorm"
)

type PriceHistoryRepository interface {
	Create(ctx context.Context, h *model.PriceHistory) error
	ListByProduct(ctx context.Context, productID uint, limit int) ([]model.PriceHistory, error)
}

type priceHistoryRepo struct{ db *gorm.DB }

func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepo{db: db}
}

func (r *priceHistoryRepo) Create(ctx context.Context, h *model.PriceHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *priceHistoryRepo) ListByProduct(ctx context.Context, productID uint, limit int) ([]model.PriceHistory, error) {
	var history []model.PriceHistory
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}
