package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sriraja07/BillSys/internal/config"
	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"
	"github.com/Sriraja07/BillSys/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAmountMismatch    = errors.New("final amount does not match totals: expected total - discount + taxes")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAmount     = errors.New("payment amount must be positive")
)

// BillingService creates invoices and purchases atomically with their stock
// effects, and records payments against both.
type BillingService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error)
	GetInvoice(ctx context.Context, id uint) (*dto.InvoiceDetailResponse, error)
	ListInvoices(ctx context.Context, filter dto.BillingFilter) (*dto.InvoiceListResponse, error)
	RecordPayment(ctx context.Context, invoiceID uint, req dto.RecordPaymentRequest) (*dto.InvoiceDetailResponse, error)

	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.CreatePurchaseResponse, error)
	GetPurchase(ctx context.Context, id uint) (*dto.PurchaseDetailResponse, error)
	ListPurchases(ctx context.Context, filter dto.BillingFilter) (*dto.PurchaseListResponse, error)
	RecordVendorPayment(ctx context.Context, purchaseID uint, req dto.RecordPaymentRequest) (*dto.PurchaseDetailResponse, error)
}

type billingService struct {
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	vendorRepo   repository.VendorRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
	stockPolicy  string
}

func NewBillingService(
	invoiceRepo repository.InvoiceRepository,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	vendorRepo repository.VendorRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
	stockPolicy string,
) BillingService {
	if stockPolicy == "" {
		stockPolicy = config.StockPolicyReject
	}
	return &billingService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
		stockPolicy:  stockPolicy,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// checkAmountIdentity verifies final = total − discount + taxes before any
// write happens.
func checkAmountIdentity(total, discount, final decimal.Decimal, taxes ...decimal.Decimal) error {
	expected := total.Sub(discount)
	for _, t := range taxes {
		expected = expected.Add(t)
	}
	if !expected.Equal(final) {
		return ErrAmountMismatch
	}
	return nil
}

// ── CreateInvoice ─────────────────────────────────────────────────────────────
// One transaction covers bill-number allocation, header+lines+payment insert,
// and all stock decrements; any line failing rolls the whole sale back.

func (s *billingService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	if err := checkAmountIdentity(req.TotalAmount, req.Discount, req.FinalAmount, req.CGST, req.SGST, req.IGST); err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer %d not found", *req.CustomerID)
		}
	}

	// Resolve products outside the transaction; the stock check is advisory
	// here and re-settled per line inside it.
	type resolvedItem struct {
		product *model.Product
		req     dto.BillingItemRequest
	}
	resolved := make([]resolvedItem, 0, len(req.Items))
	stockConflict := false
	for _, item := range req.Items {
		p, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d not found", item.ProductID)
		}
		if p.StockQuantity < item.Quantity {
			if s.stockPolicy == config.StockPolicyReject {
				return nil, fmt.Errorf("%w for %s: have %d, need %d",
					ErrInsufficientStock, p.Name, p.StockQuantity, item.Quantity)
			}
			stockConflict = true
		}
		resolved = append(resolved, resolvedItem{product: p, req: item})
	}

	initialPaid := decimal.Zero
	if req.Payment != nil {
		if req.Payment.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		initialPaid = req.Payment.Amount
	}

	var inv model.Invoice
	txErr := runTx(ctx, s.invoiceRepo.DB(), func(tx *gorm.DB) error {
		billNo, err := s.invoiceRepo.NextBillNoTx(tx)
		if err != nil {
			return err
		}

		inv = model.Invoice{
			BillNo:        billNo,
			CustomerID:    req.CustomerID,
			TotalAmount:   req.TotalAmount,
			Discount:      req.Discount,
			CGST:          req.CGST,
			SGST:          req.SGST,
			IGST:          req.IGST,
			FinalAmount:   req.FinalAmount,
			PaymentStatus: model.DerivePaymentStatus(initialPaid, req.FinalAmount),
		}
		for _, r := range resolved {
			inv.Items = append(inv.Items, model.InvoiceItem{
				ProductID:  r.req.ProductID,
				Quantity:   r.req.Quantity,
				UnitPrice:  r.req.UnitPrice,
				TotalPrice: r.req.TotalPrice,
			})
		}
		if initialPaid.IsPositive() {
			method := req.Payment.Method
			if method == "" {
				method = "cash"
			}
			inv.Payments = append(inv.Payments, model.Payment{
				Amount:      initialPaid,
				Method:      method,
				PaymentDate: time.Now(),
				Status:      "completed",
			})
		}
		if err := s.invoiceRepo.CreateTx(tx, &inv); err != nil {
			return err
		}

		for _, r := range resolved {
			before, err := s.productRepo.FindByIDTx(tx, r.req.ProductID)
			if err != nil {
				return err
			}
			if before.StockQuantity < r.req.Quantity && s.stockPolicy == config.StockPolicyReject {
				return fmt.Errorf("%w for %s: have %d, need %d",
					ErrInsufficientStock, before.Name, before.StockQuantity, r.req.Quantity)
			}
			if err := s.productRepo.UpdateStockTx(tx, r.req.ProductID, -r.req.Quantity); err != nil {
				return err
			}
			ref := inv.ID
			mov := &model.StockMovement{
				ProductID:   r.req.ProductID,
				Type:        "sale",
				Quantity:    -r.req.Quantity,
				StockBefore: before.StockQuantity,
				StockAfter:  before.StockQuantity - r.req.Quantity,
				Reason:      fmt.Sprintf("Sale %s", inv.BillNo),
				ReferenceID: &ref,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt email is best-effort and never blocks the sale.
	if s.dispatcher != nil && req.CustomerEmail != nil && *req.CustomerEmail != "" {
		_ = s.dispatcher.EnqueueReceipt(ctx, map[string]interface{}{
			"invoice_id": inv.ID,
			"email":      *req.CustomerEmail,
		})
	}

	return &dto.CreateInvoiceResponse{
		InvoiceID:     inv.ID,
		BillNo:        inv.BillNo,
		PaymentStatus: inv.PaymentStatus,
		StockConflict: stockConflict,
	}, nil
}

func (s *billingService) GetInvoice(ctx context.Context, id uint) (*dto.InvoiceDetailResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	return invoiceToDetail(inv), nil
}

func (s *billingService) ListInvoices(ctx context.Context, filter dto.BillingFilter) (*dto.InvoiceListResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)
	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceListItem, 0, len(invoices))
	for i := range invoices {
		items = append(items, invoiceToListItem(&invoices[i]))
	}
	return &dto.InvoiceListResponse{
		Data:       items,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// RecordPayment appends a payment and re-derives the invoice status from the
// new payment sum. Overpayment is accepted and reports as paid.
func (s *billingService) RecordPayment(ctx context.Context, invoiceID uint, req dto.RecordPaymentRequest) (*dto.InvoiceDetailResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, errors.New("invoice not found")
	}

	txErr := runTx(ctx, s.invoiceRepo.DB(), func(tx *gorm.DB) error {
		p := &model.Payment{
			InvoiceID:   invoiceID,
			Amount:      req.Amount,
			Method:      req.Method,
			PaymentDate: time.Now(),
			Status:      "completed",
		}
		if err := s.invoiceRepo.AppendPaymentTx(tx, p); err != nil {
			return err
		}
		totalPaid, err := s.invoiceRepo.SumPaymentsTx(tx, invoiceID)
		if err != nil {
			return err
		}
		status := model.DerivePaymentStatus(totalPaid, inv.FinalAmount)
		return s.invoiceRepo.UpdatePaymentStatusTx(tx, invoiceID, status)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetInvoice(ctx, invoiceID)
}

// ── CreatePurchase ────────────────────────────────────────────────────────────
// Purchases mirror invoices with stock moving in. The header status is taken
// from the caller at creation; an omitted status falls back to the payment sum.

func (s *billingService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.CreatePurchaseResponse, error) {
	if err := checkAmountIdentity(req.TotalAmount, req.Discount, req.FinalAmount, req.CGST, req.SGST); err != nil {
		return nil, err
	}
	if _, err := s.vendorRepo.FindByID(ctx, req.VendorID); err != nil {
		return nil, fmt.Errorf("vendor %d not found", req.VendorID)
	}
	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, errors.New("purchase_date must be YYYY-MM-DD")
	}
	for _, item := range req.Items {
		if _, err := s.productRepo.FindByID(ctx, item.ProductID); err != nil {
			return nil, fmt.Errorf("product %d not found", item.ProductID)
		}
	}

	initialPaid := decimal.Zero
	if req.Payment != nil {
		if req.Payment.Amount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		initialPaid = req.Payment.Amount
	}
	status := req.PaymentStatus
	if status == "" {
		status = model.DerivePaymentStatus(initialPaid, req.FinalAmount)
	}

	var purchase model.Purchase
	txErr := runTx(ctx, s.purchaseRepo.DB(), func(tx *gorm.DB) error {
		billNo, err := s.purchaseRepo.NextBillNoTx(tx)
		if err != nil {
			return err
		}

		purchase = model.Purchase{
			BillNo:        billNo,
			POBillNo:      req.POBillNo,
			PurchaseDate:  purchaseDate,
			VendorID:      req.VendorID,
			TotalAmount:   req.TotalAmount,
			Discount:      req.Discount,
			CGST:          req.CGST,
			SGST:          req.SGST,
			FinalAmount:   req.FinalAmount,
			PaymentStatus: status,
		}
		for _, item := range req.Items {
			purchase.Items = append(purchase.Items, model.PurchaseItem{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
			})
		}
		if initialPaid.IsPositive() {
			method := req.Payment.Method
			if method == "" {
				method = "cash"
			}
			purchase.Payments = append(purchase.Payments, model.VendorPayment{
				Amount:      initialPaid,
				Method:      method,
				PaymentDate: time.Now(),
			})
		}
		if err := s.purchaseRepo.CreateTx(tx, &purchase); err != nil {
			return err
		}

		for _, item := range req.Items {
			before, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil {
				return err
			}
			if err := s.productRepo.UpdateStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			ref := purchase.ID
			mov := &model.StockMovement{
				ProductID:   item.ProductID,
				Type:        "purchase",
				Quantity:    item.Quantity,
				StockBefore: before.StockQuantity,
				StockAfter:  before.StockQuantity + item.Quantity,
				Reason:      fmt.Sprintf("Purchase %s", purchase.BillNo),
				ReferenceID: &ref,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CreatePurchaseResponse{
		PurchaseID:    purchase.ID,
		BillNo:        purchase.BillNo,
		PaymentStatus: purchase.PaymentStatus,
	}, nil
}

func (s *billingService) GetPurchase(ctx context.Context, id uint) (*dto.PurchaseDetailResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	return purchaseToDetail(p), nil
}

func (s *billingService) ListPurchases(ctx context.Context, filter dto.BillingFilter) (*dto.PurchaseListResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)
	purchases, total, err := s.purchaseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseListItem, 0, len(purchases))
	for i := range purchases {
		items = append(items, purchaseToListItem(&purchases[i]))
	}
	return &dto.PurchaseListResponse{
		Data:       items,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *billingService) RecordVendorPayment(ctx context.Context, purchaseID uint, req dto.RecordPaymentRequest) (*dto.PurchaseDetailResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, errors.New("purchase not found")
	}

	txErr := runTx(ctx, s.purchaseRepo.DB(), func(tx *gorm.DB) error {
		p := &model.VendorPayment{
			PurchaseID:  purchaseID,
			Amount:      req.Amount,
			Method:      req.Method,
			PaymentDate: time.Now(),
			Description: req.Description,
		}
		if err := s.purchaseRepo.AppendPaymentTx(tx, p); err != nil {
			return err
		}
		totalPaid, err := s.purchaseRepo.SumPaymentsTx(tx, purchaseID)
		if err != nil {
			return err
		}
		status := model.DerivePaymentStatus(totalPaid, purchase.FinalAmount)
		return s.purchaseRepo.UpdatePaymentStatusTx(tx, purchaseID, status)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetPurchase(ctx, purchaseID)
}

// ── mapping helpers ───────────────────────────────────────────────────────────

func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 10
	}
}

func totalPages(total int64, limit int) int {
	if limit < 1 {
		limit = 10
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func invoiceToListItem(inv *model.Invoice) dto.InvoiceListItem {
	name := "Walk-in"
	if inv.Customer != nil {
		name = inv.Customer.Name
	}
	return dto.InvoiceListItem{
		ID:            inv.ID,
		BillNo:        inv.BillNo,
		CustomerName:  name,
		FinalAmount:   inv.FinalAmount,
		PaymentStatus: inv.PaymentStatus,
		CreatedAt:     inv.CreatedAt.Format("2006-01-02"),
	}
}

func invoiceToDetail(inv *model.Invoice) *dto.InvoiceDetailResponse {
	name, mobile := "Walk-in", ""
	if inv.Customer != nil {
		name = inv.Customer.Name
		mobile = inv.Customer.MobileNumber
	}
	items := make([]dto.BillingItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		productName := ""
		if item.Product != nil {
			productName = item.Product.Name
		}
		items = append(items, dto.BillingItemResponse{
			ProductName: productName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	payments := make([]dto.PaymentResponse, 0, len(inv.Payments))
	totalPaid := decimal.Zero
	for _, p := range inv.Payments {
		totalPaid = totalPaid.Add(p.Amount)
		payments = append(payments, dto.PaymentResponse{
			Date:   p.PaymentDate.Format("2006-01-02"),
			Method: p.Method,
			Amount: p.Amount,
			Status: p.Status,
		})
	}
	return &dto.InvoiceDetailResponse{
		BillNo:         inv.BillNo,
		CustomerName:   name,
		CustomerMobile: mobile,
		TotalProducts:  len(inv.Items),
		Date:           inv.CreatedAt.Format("2006-01-02"),
		PaymentStatus:  inv.PaymentStatus,
		FinalAmount:    inv.FinalAmount,
		TotalPaid:      totalPaid,
		Items:          items,
		Payments:       payments,
	}
}

func purchaseToListItem(p *model.Purchase) dto.PurchaseListItem {
	name := ""
	if p.Vendor != nil {
		name = p.Vendor.Name
	}
	return dto.PurchaseListItem{
		ID:            p.ID,
		BillNo:        p.BillNo,
		POBillNo:      p.POBillNo,
		VendorName:    name,
		PurchaseDate:  p.PurchaseDate.Format("2006-01-02"),
		FinalAmount:   p.FinalAmount,
		PaymentStatus: p.PaymentStatus,
	}
}

func purchaseToDetail(p *model.Purchase) *dto.PurchaseDetailResponse {
	name, mobile := "", ""
	if p.Vendor != nil {
		name = p.Vendor.Name
		mobile = p.Vendor.MobileNumber
	}
	items := make([]dto.BillingItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		productName := ""
		if item.Product != nil {
			productName = item.Product.Name
		}
		items = append(items, dto.BillingItemResponse{
			ProductName: productName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	payments := make([]dto.PaymentResponse, 0, len(p.Payments))
	totalPaid := decimal.Zero
	for _, pay := range p.Payments {
		totalPaid = totalPaid.Add(pay.Amount)
		payments = append(payments, dto.PaymentResponse{
			Date:   pay.PaymentDate.Format("2006-01-02"),
			Method: pay.Method,
			Amount: pay.Amount,
			Status: "completed",
		})
	}
	return &dto.PurchaseDetailResponse{
		BillNo:        p.BillNo,
		VendorName:    name,
		VendorMobile:  mobile,
		TotalProducts: len(p.Items),
		Date:          p.PurchaseDate.Format("2006-01-02"),
		PaymentStatus: p.PaymentStatus,
		FinalAmount:   p.FinalAmount,
		TotalPaid:     totalPaid,
		Items:         items,
		Payments:      payments,
	}
}
