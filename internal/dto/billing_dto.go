package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// BillingItemRequest is one line of an invoice or purchase. TotalPrice is
// caller-supplied (quantity × unit_price) and stored as given.
type BillingItemRequest struct {
	ProductID  uint            `json:"product_id"  validate:"required"`
	Quantity   int             `json:"quantity"    validate:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unit_price"  validate:"min=0"`
	TotalPrice decimal.Decimal `json:"total_price" validate:"min=0"`
}

// InitialPaymentRequest is the optional payment taken at billing time.
// A zero amount means no payment row is created.
type InitialPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" validate:"omitempty,oneof=cash card upi"`
}

type CreateInvoiceRequest struct {
	CustomerID  *uint                `json:"customer_id"`
	Items       []BillingItemRequest `json:"items" validate:"required,min=1,dive"`
	// min=0 rather than required: a fully discounted sale has final_amount 0,
	// and the decimal custom type func makes required reject zero values.
	TotalAmount decimal.Decimal      `json:"total_amount" validate:"min=0"`
	Discount    decimal.Decimal      `json:"discount"`
	CGST        decimal.Decimal      `json:"cgst"`
	SGST        decimal.Decimal      `json:"sgst"`
	IGST        decimal.Decimal      `json:"igst"`
	FinalAmount decimal.Decimal      `json:"final_amount" validate:"min=0"`
	Payment     *InitialPaymentRequest `json:"payment"`
	// CustomerEmail: optional — when present, the receipt PDF is mailed async.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

type CreatePurchaseRequest struct {
	VendorID     uint                 `json:"vendor_id" validate:"required"`
	POBillNo     *string              `json:"po_bill_no"`
	PurchaseDate string               `json:"purchase_date" validate:"required"` // YYYY-MM-DD
	Items        []BillingItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount  decimal.Decimal      `json:"total_amount" validate:"min=0"`
	Discount     decimal.Decimal      `json:"discount"`
	CGST         decimal.Decimal      `json:"cgst"`
	SGST         decimal.Decimal      `json:"sgst"`
	FinalAmount  decimal.Decimal      `json:"final_amount" validate:"min=0"`
	// PaymentStatus is taken from the caller at creation and re-derived only
	// when later vendor payments arrive.
	PaymentStatus string                 `json:"payment_status" validate:"omitempty,oneof=unpaid partial paid"`
	Payment       *InitialPaymentRequest `json:"payment"`
}

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Method string          `json:"method" validate:"required,oneof=cash card upi"`
	// Description is stored on vendor payments only.
	Description string `json:"description"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

type BillingFilter struct {
	Search string `form:"search"` // bill_no substring
	Status string `form:"status" validate:"omitempty,oneof=unpaid partial paid"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CreateInvoiceResponse struct {
	InvoiceID     uint   `json:"invoice_id"`
	BillNo        string `json:"bill_no"`
	PaymentStatus string `json:"payment_status"`
	// StockConflict is set only under the "allow" stock policy when a line
	// pushed some product's stock negative.
	StockConflict bool `json:"stock_conflict,omitempty"`
}

type CreatePurchaseResponse struct {
	PurchaseID    uint   `json:"purchase_id"`
	BillNo        string `json:"bill_no"`
	PaymentStatus string `json:"payment_status"`
}

type BillingItemResponse struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type PaymentResponse struct {
	Date   string          `json:"date"`
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
}

type InvoiceListItem struct {
	ID            uint            `json:"id"`
	BillNo        string          `json:"bill_no"`
	CustomerName  string          `json:"customer_name"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     string          `json:"created_at"`
}

type InvoiceListResponse struct {
	Data       []InvoiceListItem `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

type InvoiceDetailResponse struct {
	BillNo         string                `json:"bill_no"`
	CustomerName   string                `json:"customer_name"`
	CustomerMobile string                `json:"customer_mobile"`
	TotalProducts  int                   `json:"total_products"`
	Date           string                `json:"date"`
	PaymentStatus  string                `json:"payment_status"`
	FinalAmount    decimal.Decimal       `json:"final_amount"`
	TotalPaid      decimal.Decimal       `json:"total_paid"`
	Items          []BillingItemResponse `json:"items"`
	Payments       []PaymentResponse     `json:"payments"`
}

type PurchaseListItem struct {
	ID            uint            `json:"id"`
	BillNo        string          `json:"bill_no"`
	POBillNo      *string         `json:"po_bill_no"`
	VendorName    string          `json:"vendor_name"`
	PurchaseDate  string          `json:"purchase_date"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	PaymentStatus string          `json:"payment_status"`
}

type PurchaseListResponse struct {
	Data       []PurchaseListItem `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

type PurchaseDetailResponse struct {
	BillNo        string                `json:"bill_no"`
	VendorName    string                `json:"vendor_name"`
	VendorMobile  string                `json:"vendor_mobile"`
	TotalProducts int                   `json:"total_products"`
	Date          string                `json:"date"`
	PaymentStatus string                `json:"payment_status"`
	FinalAmount   decimal.Decimal       `json:"final_amount"`
	TotalPaid     decimal.Decimal       `json:"total_paid"`
	Items         []BillingItemResponse `json:"items"`
	Payments      []PaymentResponse     `json:"payments"`
}
