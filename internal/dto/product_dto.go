package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"           validate:"required,min=2,max=100"`
	Category      string          `json:"category"       validate:"required"`
	Brand         string          `json:"brand"          validate:"required"`
	MRPPrice      decimal.Decimal `json:"mrp_price"      validate:"required"`
	CostPrice     decimal.Decimal `json:"cost_price"     validate:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price"  validate:"required"`
	GSTRate       decimal.Decimal `json:"gst_rate"       validate:"min=0,max=100"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	VendorID      *uint           `json:"vendor_id"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=2,max=100"`
	Category      *string          `json:"category"`
	Brand         *string          `json:"brand"`
	MRPPrice      *decimal.Decimal `json:"mrp_price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	GSTRate       *decimal.Decimal `json:"gst_rate"       validate:"omitempty,min=0,max=100"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	VendorID      *uint            `json:"vendor_id"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	MRPPrice      decimal.Decimal `json:"mrp_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	StockQuantity int             `json:"stock_quantity"`
	VendorID      *uint           `json:"vendor_id"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Categories []string          `json:"categories"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

type PriceHistoryResponse struct {
	OldCost    decimal.Decimal `json:"old_cost"`
	NewCost    decimal.Decimal `json:"new_cost"`
	OldSelling decimal.Decimal `json:"old_selling"`
	NewSelling decimal.Decimal `json:"new_selling"`
	ChangedAt  string          `json:"changed_at"`
}
