package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Sriraja07/BillSys/internal/config"
	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBillingSvc(stockPolicy string) (BillingService, *stubInvoiceRepo, *stubPurchaseRepo, *stubProductRepo, *stubCustomerRepo, *stubVendorRepo, *stubMovementRepo) {
	invoiceRepo := newStubInvoiceRepo()
	purchaseRepo := newStubPurchaseRepo()
	productRepo := newStubProductRepo()
	customerRepo := newStubCustomerRepo()
	vendorRepo := newStubVendorRepo()
	movementRepo := &stubMovementRepo{}
	svc := NewBillingService(invoiceRepo, purchaseRepo, productRepo, customerRepo, vendorRepo, movementRepo, nil, stockPolicy)
	return svc, invoiceRepo, purchaseRepo, productRepo, customerRepo, vendorRepo, movementRepo
}

// d is shorthand for decimal literals in test fixtures.
func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestCreateInvoice_HappyPath(t *testing.T) {
	svc, invoiceRepo, _, productRepo, customerRepo, _, movementRepo := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 10, 18)
	c := customerRepo.seed("Ravi", "9876543210")

	// 3 × 100 = 300, CGST 27 + SGST 27 → final 354, 200 paid up front
	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: &c.ID,
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 3, UnitPrice: d(100), TotalPrice: d(300)},
		},
		TotalAmount: d(300),
		CGST:        d(27),
		SGST:        d(27),
		FinalAmount: d(354),
		Payment:     &dto.InitialPaymentRequest{Amount: d(200), Method: "cash"},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-001", resp.BillNo)
	assert.Equal(t, model.StatusPartial, resp.PaymentStatus)
	assert.False(t, resp.StockConflict)

	stored, err := invoiceRepo.FindByID(context.Background(), resp.InvoiceID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
	require.Len(t, stored.Payments, 1)
	assert.Equal(t, "cash", stored.Payments[0].Method)

	after, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 7, after.StockQuantity)

	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, "sale", mov.Type)
	assert.Equal(t, -3, mov.Quantity)
	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 7, mov.StockAfter)
}

func TestCreateInvoice_FullyDiscounted(t *testing.T) {
	svc, invoiceRepo, _, productRepo, customerRepo, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 10, 18)
	c := customerRepo.seed("Ravi", "9876543210")

	// 100 − 100 discount → final 0: a valid giveaway sale, no payment expected
	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: &c.ID,
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 1, UnitPrice: d(100), TotalPrice: d(100)},
		},
		TotalAmount: d(100),
		Discount:    d(100),
		FinalAmount: d(0),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnpaid, resp.PaymentStatus)

	stored, err := invoiceRepo.FindByID(context.Background(), resp.InvoiceID)
	require.NoError(t, err)
	assert.True(t, stored.FinalAmount.IsZero())
	assert.Empty(t, stored.Payments)
}

func TestCreateInvoice_AmountMismatch(t *testing.T) {
	svc, invoiceRepo, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 10, 18)

	// 300 − 0 + 54 ≠ 400
	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 3, UnitPrice: d(100), TotalPrice: d(300)},
		},
		TotalAmount: d(300),
		CGST:        d(27),
		SGST:        d(27),
		FinalAmount: d(400),
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Empty(t, invoiceRepo.invoices)
}

func TestCreateInvoice_RejectPolicy_InsufficientStock(t *testing.T) {
	svc, invoiceRepo, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Switch", 2, 18)

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 5, UnitPrice: d(100), TotalPrice: d(500)},
		},
		TotalAmount: d(500),
		FinalAmount: d(500),
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, invoiceRepo.invoices)

	after, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 2, after.StockQuantity)
}

func TestCreateInvoice_AllowPolicy_FlagsConflict(t *testing.T) {
	svc, _, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyAllow)
	p := productRepo.seed("Switch", 2, 18)

	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 5, UnitPrice: d(100), TotalPrice: d(500)},
		},
		TotalAmount: d(500),
		FinalAmount: d(500),
	})
	require.NoError(t, err)
	assert.True(t, resp.StockConflict)

	after, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, -3, after.StockQuantity)
}

func TestCreateInvoice_SequentialBillNumbers(t *testing.T) {
	svc, _, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Wire", 100, 18)

	for i := 1; i <= 3; i++ {
		resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
			Items: []dto.BillingItemRequest{
				{ProductID: p.ID, Quantity: 1, UnitPrice: d(100), TotalPrice: d(100)},
			},
			TotalAmount: d(100),
			FinalAmount: d(100),
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%03d", i), resp.BillNo)
	}
}

func TestCreateInvoice_NoPayment_Unpaid(t *testing.T) {
	svc, invoiceRepo, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 10, 18)

	resp, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 1, UnitPrice: d(100), TotalPrice: d(100)},
		},
		TotalAmount: d(100),
		FinalAmount: d(100),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnpaid, resp.PaymentStatus)

	stored, _ := invoiceRepo.FindByID(context.Background(), resp.InvoiceID)
	assert.Empty(t, stored.Payments)
}

func TestRecordPayment_StatusTransitions(t *testing.T) {
	svc, _, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 10, 18)

	created, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 3, UnitPrice: d(100), TotalPrice: d(300)},
		},
		TotalAmount: d(300),
		CGST:        d(27),
		SGST:        d(27),
		FinalAmount: d(354),
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusUnpaid, created.PaymentStatus)

	detail, err := svc.RecordPayment(context.Background(), created.InvoiceID, dto.RecordPaymentRequest{
		Amount: d(200), Method: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPartial, detail.PaymentStatus)
	assert.Equal(t, "200", detail.TotalPaid.String())

	detail, err = svc.RecordPayment(context.Background(), created.InvoiceID, dto.RecordPaymentRequest{
		Amount: d(154), Method: "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, detail.PaymentStatus)
	assert.Equal(t, "354", detail.TotalPaid.String())
	assert.Len(t, detail.Payments, 2)
}

func TestRecordPayment_OverpaymentReportsPaid(t *testing.T) {
	svc, _, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 10, 18)

	created, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 1, UnitPrice: d(100), TotalPrice: d(100)},
		},
		TotalAmount: d(100),
		FinalAmount: d(100),
	})
	require.NoError(t, err)

	detail, err := svc.RecordPayment(context.Background(), created.InvoiceID, dto.RecordPaymentRequest{
		Amount: d(500), Method: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, detail.PaymentStatus)
}

func TestRecordPayment_NonPositiveAmount(t *testing.T) {
	svc, _, _, _, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	_, err := svc.RecordPayment(context.Background(), 1, dto.RecordPaymentRequest{
		Amount: decimal.Zero, Method: "cash",
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreatePurchase_IncrementsStock(t *testing.T) {
	svc, _, purchaseRepo, productRepo, _, vendorRepo, movementRepo := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 5, 18)
	v := vendorRepo.seed("Acme Traders", "9000000001")

	resp, err := svc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		VendorID:     v.ID,
		PurchaseDate: "2026-08-01",
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 20, UnitPrice: d(80), TotalPrice: d(1600)},
		},
		TotalAmount:   d(1600),
		CGST:          d(144),
		SGST:          d(144),
		FinalAmount:   d(1888),
		PaymentStatus: "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, "PUR-001", resp.BillNo)
	// Caller-declared status wins at creation.
	assert.Equal(t, model.StatusPaid, resp.PaymentStatus)

	after, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 25, after.StockQuantity)

	stored, _ := purchaseRepo.FindByID(context.Background(), resp.PurchaseID)
	assert.Equal(t, "2026-08-01", stored.PurchaseDate.Format("2006-01-02"))

	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, "purchase", movementRepo.movements[0].Type)
	assert.Equal(t, 20, movementRepo.movements[0].Quantity)
}

func TestCreatePurchase_StatusDerivedWhenOmitted(t *testing.T) {
	svc, _, _, productRepo, _, vendorRepo, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 5, 18)
	v := vendorRepo.seed("Acme Traders", "9000000001")

	resp, err := svc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		VendorID:     v.ID,
		PurchaseDate: "2026-08-01",
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 10, UnitPrice: d(80), TotalPrice: d(800)},
		},
		TotalAmount: d(800),
		FinalAmount: d(800),
		Payment:     &dto.InitialPaymentRequest{Amount: d(300)},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPartial, resp.PaymentStatus)
}

func TestRecordVendorPayment_DerivesStatus(t *testing.T) {
	svc, _, purchaseRepo, productRepo, _, vendorRepo, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 5, 18)
	v := vendorRepo.seed("Acme Traders", "9000000001")

	created, err := svc.CreatePurchase(context.Background(), dto.CreatePurchaseRequest{
		VendorID:     v.ID,
		PurchaseDate: "2026-08-01",
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 10, UnitPrice: d(80), TotalPrice: d(800)},
		},
		TotalAmount: d(800),
		FinalAmount: d(800),
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusUnpaid, created.PaymentStatus)

	detail, err := svc.RecordVendorPayment(context.Background(), created.PurchaseID, dto.RecordPaymentRequest{
		Amount: d(800), Method: "card", Description: "full settlement",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, detail.PaymentStatus)

	stored, _ := purchaseRepo.FindByID(context.Background(), created.PurchaseID)
	require.Len(t, stored.Payments, 1)
	assert.Equal(t, "full settlement", stored.Payments[0].Description)
}

func TestCreateInvoice_UnknownCustomer(t *testing.T) {
	svc, _, _, productRepo, _, _, _ := buildBillingSvc(config.StockPolicyReject)
	p := productRepo.seed("Bulb", 10, 18)
	missing := uint(99)

	_, err := svc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: &missing,
		Items: []dto.BillingItemRequest{
			{ProductID: p.ID, Quantity: 1, UnitPrice: d(100), TotalPrice: d(100)},
		},
		TotalAmount: d(100),
		FinalAmount: d(100),
	})
	assert.ErrorContains(t, err, "customer 99 not found")
}
