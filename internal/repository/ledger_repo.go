package repository

import (
	"context"
	"time"

	"github.com/Sriraja07/BillSys/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerRow is a payment joined with its bill and party, shaped identically
// for both sides of the ledger so the service can merge them.
type LedgerRow struct {
	ID        uint
	Amount    decimal.Decimal
	Method    string
	Date      time.Time
	Status    string
	BillNo    string
	PartyName string
}

// LedgerRepository reads both payment tables for the unified ledger and the
// payment/GST reports. It is read-only.
type LedgerRepository interface {
	CustomerPayments(ctx context.Context, start, end *time.Time) ([]LedgerRow, error)
	VendorPayments(ctx context.Context, start, end *time.Time) ([]LedgerRow, error)
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

func (r *ledgerRepo) CustomerPayments(ctx context.Context, start, end *time.Time) ([]LedgerRow, error) {
	var rows []LedgerRow
	q := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select(`payments.id, payments.amount, payments.method,
			payments.payment_date AS date, payments.status,
			invoices.bill_no, COALESCE(customers.name, 'Walk-in') AS party_name`).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Joins("LEFT JOIN customers ON customers.id = invoices.customer_id")
	if start != nil {
		q = q.Where("payments.payment_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("payments.payment_date < ?", *end)
	}
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *ledgerRepo) VendorPayments(ctx context.Context, start, end *time.Time) ([]LedgerRow, error) {
	var rows []LedgerRow
	q := r.db.WithContext(ctx).Model(&model.VendorPayment{}).
		Select(`vendor_payments.id, vendor_payments.amount, vendor_payments.method,
			vendor_payments.payment_date AS date, 'completed' AS status,
			purchases.bill_no, vendors.name AS party_name`).
		Joins("JOIN purchases ON purchases.id = vendor_payments.purchase_id").
		Joins("JOIN vendors ON vendors.id = purchases.vendor_id")
	if start != nil {
		q = q.Where("vendor_payments.payment_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("vendor_payments.payment_date < ?", *end)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
