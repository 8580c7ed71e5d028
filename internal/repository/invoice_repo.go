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

// InvoiceRepository persists sale headers, lines and their payments.
// Write paths that must share a transaction with stock updates take the
// *gorm.DB handle explicitly.
type InvoiceRepository interface {
	CreateTx(tx *gorm.DB, inv *model.Invoice) error
	NextBillNoTx(tx *gorm.DB) (string, error)
	FindByID(ctx context.Context, id uint) (*model.Invoice, error)
	List(ctx context.Context, filter dto.BillingFilter) ([]model.Invoice, int64, error)
	ListRange(ctx context.Context, start, end time.Time, customerID *uint) ([]model.Invoice, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Invoice, error)
	AppendPaymentTx(tx *gorm.DB, p *model.Payment) error
	SumPaymentsTx(tx *gorm.DB, invoiceID uint) (decimal.Decimal, error)
	UpdatePaymentStatusTx(tx *gorm.DB, invoiceID uint, status string) error
	Recent(ctx context.Context, limit int) ([]model.Invoice, error)
	SumFinalAmount(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) CreateTx(tx *gorm.DB, inv *model.Invoice) error {
	return tx.Create(inv).Error
}

// NextBillNoTx allocates the next sequential bill number inside the caller's
// transaction. Numbers follow the existing max surrogate id, so they stay
// monotonic even after deletions.
func (r *invoiceRepo) NextBillNoTx(tx *gorm.DB) (string, error) {
	var maxID int64
	err := tx.Model(&model.Invoice{}).
		Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%03d", maxID+1), nil
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		Preload("Payments").
		First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.BillingFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Search != "" {
		q = q.Where("bill_no ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Status != "" {
		q = q.Where("payment_status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&invoices).Error
	return invoices, total, err
}

// ListRange loads invoices in [start, end) with lines preloaded; report
// aggregation happens in memory at the service layer.
func (r *invoiceRepo) ListRange(ctx context.Context, start, end time.Time, customerID *uint) ([]model.Invoice, error) {
	var invoices []model.Invoice
	q := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end)
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}
	err := q.Preload("Customer").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) ListByCustomer(ctx context.Context, customerID uint) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Payments").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) AppendPaymentTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *invoiceRepo) SumPaymentsTx(tx *gorm.DB, invoiceID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := tx.Model(&model.Payment{}).
		Where("invoice_id = ?", invoiceID).
		Select("SUM(amount)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *invoiceRepo) UpdatePaymentStatusTx(tx *gorm.DB, invoiceID uint, status string) error {
	return tx.Model(&model.Invoice{}).
		Where("id = ?", invoiceID).
		Update("payment_status", status).Error
}

func (r *invoiceRepo) Recent(ctx context.Context, limit int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) SumFinalAmount(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("SUM(final_amount)").Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
