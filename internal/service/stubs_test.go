package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. All Tx methods accept a nil *gorm.DB because
// runTx skips the real transaction when the repository reports no database.

// ── products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uint]*model.Product
	seq      uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: map[uint]*model.Product{}}
}

func (r *stubProductRepo) seed(name string, stock int, gstRate float64) *model.Product {
	r.seq++
	p := &model.Product{
		ID:            r.seq,
		Name:          name,
		Category:      "General",
		Brand:         "Generic",
		MRPPrice:      decimal.NewFromInt(120),
		CostPrice:     decimal.NewFromInt(80),
		SellingPrice:  decimal.NewFromInt(100),
		GSTRate:       decimal.NewFromFloat(gstRate),
		StockQuantity: stock,
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.seq++
	p.ID = r.seq
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) FindByVendorID(_ context.Context, vendorID uint) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.VendorID != nil && *p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) DistinctCategories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) LowStock(_ context.Context, threshold, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.StockQuantity <= threshold {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockQuantity < out[j].StockQuantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductRepo) CountLowStock(_ context.Context, threshold int) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.StockQuantity <= threshold {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uint, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── invoices ─────────────────────────────────────────────────────────────────

type stubInvoiceRepo struct {
	invoices map[uint]*model.Invoice
	seq      uint
	// ranged backs ListRange/Recent for report tests.
	ranged []model.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: map[uint]*model.Invoice{}}
}

func (r *stubInvoiceRepo) CreateTx(_ *gorm.DB, inv *model.Invoice) error {
	r.seq++
	inv.ID = r.seq
	for i := range inv.Payments {
		inv.Payments[i].InvoiceID = inv.ID
	}
	for i := range inv.Items {
		inv.Items[i].InvoiceID = inv.ID
	}
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) NextBillNoTx(_ *gorm.DB) (string, error) {
	return fmt.Sprintf("INV-%03d", r.seq+1), nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uint) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return inv, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.BillingFilter) ([]model.Invoice, int64, error) {
	out := make([]model.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) ListRange(_ context.Context, start, end time.Time, customerID *uint) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.ranged {
		if inv.CreatedAt.Before(start) || !inv.CreatedAt.Before(end) {
			continue
		}
		if customerID != nil && (inv.CustomerID == nil || *inv.CustomerID != *customerID) {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *stubInvoiceRepo) ListByCustomer(_ context.Context, customerID uint) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.CustomerID != nil && *inv.CustomerID == customerID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) AppendPaymentTx(_ *gorm.DB, p *model.Payment) error {
	inv, ok := r.invoices[p.InvoiceID]
	if !ok {
		return errors.New("record not found")
	}
	inv.Payments = append(inv.Payments, *p)
	return nil
}

func (r *stubInvoiceRepo) SumPaymentsTx(_ *gorm.DB, invoiceID uint) (decimal.Decimal, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return decimal.Zero, errors.New("record not found")
	}
	sum := decimal.Zero
	for _, p := range inv.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

func (r *stubInvoiceRepo) UpdatePaymentStatusTx(_ *gorm.DB, invoiceID uint, status string) error {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return errors.New("record not found")
	}
	inv.PaymentStatus = status
	return nil
}

func (r *stubInvoiceRepo) Recent(_ context.Context, limit int) ([]model.Invoice, error) {
	out := append([]model.Invoice(nil), r.ranged...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubInvoiceRepo) SumFinalAmount(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, inv := range r.ranged {
		if !inv.CreatedAt.Before(start) && inv.CreatedAt.Before(end) {
			sum = sum.Add(inv.FinalAmount)
		}
	}
	return sum, nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

// ── purchases ────────────────────────────────────────────────────────────────

type stubPurchaseRepo struct {
	purchases map[uint]*model.Purchase
	seq       uint
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: map[uint]*model.Purchase{}}
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	r.seq++
	p.ID = r.seq
	for i := range p.Payments {
		p.Payments[i].PurchaseID = p.ID
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) NextBillNoTx(_ *gorm.DB) (string, error) {
	return fmt.Sprintf("PUR-%03d", r.seq+1), nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uint) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.BillingFilter) ([]model.Purchase, int64, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) ListByVendor(_ context.Context, vendorID uint) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		if p.VendorID == vendorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPurchaseRepo) AppendPaymentTx(_ *gorm.DB, vp *model.VendorPayment) error {
	p, ok := r.purchases[vp.PurchaseID]
	if !ok {
		return errors.New("record not found")
	}
	p.Payments = append(p.Payments, *vp)
	return nil
}

func (r *stubPurchaseRepo) SumPaymentsTx(_ *gorm.DB, purchaseID uint) (decimal.Decimal, error) {
	p, ok := r.purchases[purchaseID]
	if !ok {
		return decimal.Zero, errors.New("record not found")
	}
	sum := decimal.Zero
	for _, vp := range p.Payments {
		sum = sum.Add(vp.Amount)
	}
	return sum, nil
}

func (r *stubPurchaseRepo) UpdatePaymentStatusTx(_ *gorm.DB, purchaseID uint, status string) error {
	p, ok := r.purchases[purchaseID]
	if !ok {
		return errors.New("record not found")
	}
	p.PaymentStatus = status
	return nil
}

func (r *stubPurchaseRepo) SumFinalAmount(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// ── customers / vendors ──────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uint]*model.Customer
	seq       uint
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: map[uint]*model.Customer{}}
}

func (r *stubCustomerRepo) seed(name, mobile string) *model.Customer {
	r.seq++
	c := &model.Customer{ID: r.seq, Name: name, MobileNumber: mobile, CreatedAt: time.Now()}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.seq++
	c.ID = r.seq
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uint) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uint) error {
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) CountSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubVendorRepo struct {
	vendors map[uint]*model.Vendor
	seq     uint
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{vendors: map[uint]*model.Vendor{}}
}

func (r *stubVendorRepo) seed(name, mobile string) *model.Vendor {
	r.seq++
	v := &model.Vendor{ID: r.seq, Name: name, MobileNumber: mobile, CreatedAt: time.Now()}
	r.vendors[v.ID] = v
	return v
}

func (r *stubVendorRepo) Create(_ context.Context, v *model.Vendor) error {
	r.seq++
	v.ID = r.seq
	r.vendors[v.ID] = v
	return nil
}

func (r *stubVendorRepo) FindByID(_ context.Context, id uint) (*model.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return v, nil
}

func (r *stubVendorRepo) List(_ context.Context, _ dto.VendorFilter) ([]model.Vendor, int64, error) {
	out := make([]model.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVendorRepo) Update(_ context.Context, v *model.Vendor) error {
	r.vendors[v.ID] = v
	return nil
}

func (r *stubVendorRepo) Delete(_ context.Context, id uint) error {
	delete(r.vendors, id)
	return nil
}

func (r *stubVendorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.vendors)), nil
}

var _ repository.VendorRepository = (*stubVendorRepo)(nil)

// ── stock movements / price history ──────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	m.ID = uint(len(r.movements) + 1)
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID uint, limit int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

type stubPriceHistoryRepo struct {
	rows []model.PriceHistory
}

func (r *stubPriceHistoryRepo) Create(_ context.Context, h *model.PriceHistory) error {
	h.ID = uint(len(r.rows) + 1)
	r.rows = append(r.rows, *h)
	return nil
}

func (r *stubPriceHistoryRepo) ListByProduct(_ context.Context, productID uint, limit int) ([]model.PriceHistory, error) {
	var out []model.PriceHistory
	for _, h := range r.rows {
		if h.ProductID == productID {
			out = append(out, h)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ repository.PriceHistoryRepository = (*stubPriceHistoryRepo)(nil)

// ── ledger ───────────────────────────────────────────────────────────────────

type stubLedgerRepo struct {
	customer []repository.LedgerRow
	vendor   []repository.LedgerRow
}

func filterRows(rows []repository.LedgerRow, start, end *time.Time) []repository.LedgerRow {
	var out []repository.LedgerRow
	for _, r := range rows {
		if start != nil && r.Date.Before(*start) {
			continue
		}
		if end != nil && !r.Date.Before(*end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (r *stubLedgerRepo) CustomerPayments(_ context.Context, start, end *time.Time) ([]repository.LedgerRow, error) {
	return filterRows(r.customer, start, end), nil
}

func (r *stubLedgerRepo) VendorPayments(_ context.Context, start, end *time.Time) ([]repository.LedgerRow, error) {
	return filterRows(r.vendor, start, end), nil
}

var _ repository.LedgerRepository = (*stubLedgerRepo)(nil)

// ── expenses ─────────────────────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses []model.Expense
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	e.ID = uint(len(r.expenses) + 1)
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uint) (*model.Expense, error) {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			cp := r.expenses[i]
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubExpenseRepo) List(_ context.Context, filter dto.ExpenseFilter, monthStart, monthEnd time.Time) ([]model.Expense, int64, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.ExpenseDate.Before(monthStart) || !e.ExpenseDate.Before(monthEnd) {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *model.Expense) error {
	for i := range r.expenses {
		if r.expenses[i].ID == e.ID {
			r.expenses[i] = *e
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uint) error {
	for i := range r.expenses {
		if r.expenses[i].ID == id {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubExpenseRepo) SumRange(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.expenses {
		if !e.ExpenseDate.Before(start) && e.ExpenseDate.Before(end) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *stubExpenseRepo) DistinctCategories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, e := range r.expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── users ────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uint]*model.User
	seq   uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uint]*model.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.seq++
	u.ID = r.seq
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByMobile(_ context.Context, mobile string) (*model.User, error) {
	for _, u := range r.users {
		if u.MobileNumber == mobile {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
