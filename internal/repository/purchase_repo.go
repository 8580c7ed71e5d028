package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	NextBillNoTx(tx *gorm.DB) (string, error)
	FindByID(ctx context.Context, id uint) (*model.Purchase, error)
	List(ctx context.Context, filter dto.BillingFilter) ([]model.Purchase, int64, error)
	ListByVendor(ctx context.Context, vendorID uint) ([]model.Purchase, error)
	AppendPaymentTx(tx *gorm.DB, p *model.VendorPayment) error
	SumPaymentsTx(tx *gorm.DB, purchaseID uint) (decimal.Decimal, error)
	UpdatePaymentStatusTx(tx *gorm.DB, purchaseID uint, status string) error
	SumFinalAmount(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) NextBillNoTx(tx *gorm.DB) (string, error) {
	var maxID int64
	err := tx.Model(&model.Purchase{}).
		Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PUR-%03d", maxID+1), nil
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uint) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Items.Product").
		Preload("Payments").
		First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.BillingFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("bill_no ILIKE ? OR po_bill_no ILIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		q = q.Where("payment_status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Vendor").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) ListByVendor(ctx context.Context, vendorID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Preload("Payments").
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) AppendPaymentTx(tx *gorm.DB, p *model.VendorPayment) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) SumPaymentsTx(tx *gorm.DB, purchaseID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := tx.Model(&model.VendorPayment{}).
		Where("purchase_id = ?", purchaseID).
		Select("SUM(amount)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *purchaseRepo) UpdatePaymentStatusTx(tx *gorm.DB, purchaseID uint, status string) error {
	return tx.Model(&model.Purchase{}).
		Where("id = ?", purchaseID).
		Update("payment_status", status).Error
}

func (r *purchaseRepo) SumFinalAmount(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("SUM(final_amount)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
