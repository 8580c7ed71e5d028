package dto

import "github.com/shopspring/decimal"

// ─── Payment ledger ──────────────────────────────────────────────────────────

// LedgerEntry is one row of the unified payment ledger: customer payments and
// vendor payments merged into a single tagged sequence.
type LedgerEntry struct {
	ID        uint            `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Date      string          `json:"date"`
	Status    string          `json:"status"`
	BillNo    string          `json:"bill_no"`
	PartyName string          `json:"party_name"`
	Category  string          `json:"category"` // "customer" | "vendor"
}

type LedgerFilter struct {
	Category  string `form:"category" validate:"omitempty,oneof=customer vendor"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`
	Page      int    `form:"page,default=1" validate:"min=1"`
}

type LedgerResponse struct {
	Data       []LedgerEntry `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	HasPrev    bool          `json:"has_prev"`
	HasNext    bool          `json:"has_next"`
}

// ─── Chart series ────────────────────────────────────────────────────────────

// Series is a labeled numeric sequence for charts. Labels always cover the
// whole requested axis; buckets without transactions hold zero.
type Series struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// ─── Payment report ──────────────────────────────────────────────────────────

type PaymentReportResponse struct {
	Summary struct {
		TotalReceived     decimal.Decimal `json:"total_received"`
		TotalPaid         decimal.Decimal `json:"total_paid"`
		TotalTransactions int             `json:"total_transactions"`
	} `json:"summary"`
	PaymentMethods Series   `json:"payment_methods"`
	MonthlyTrend   struct {
		Labels   []string          `json:"labels"`
		Received []decimal.Decimal `json:"received"`
		Paid     []decimal.Decimal `json:"paid"`
	} `json:"monthly_trend"`
	Ledger LedgerResponse `json:"ledger"`
}

// ─── GST report ──────────────────────────────────────────────────────────────

type GSTSummary struct {
	TotalCGST decimal.Decimal `json:"total_cgst"`
	TotalSGST decimal.Decimal `json:"total_sgst"`
	TotalIGST decimal.Decimal `json:"total_igst"`
	TotalGST  decimal.Decimal `json:"total_gst"`
}

// GSTRateBucket aggregates line items whose product carries the bucket's rate.
type GSTRateBucket struct {
	Rate             int             `json:"rate"`
	TransactionCount int             `json:"transaction_count"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	TotalGST         decimal.Decimal `json:"total_gst"`
}

type GSTInvoiceRow struct {
	ID       uint            `json:"id"`
	BillNo   string          `json:"bill_no"`
	Date     string          `json:"date"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	IGST     decimal.Decimal `json:"igst"`
	TotalGST decimal.Decimal `json:"total_gst"`
}

type GSTReportResponse struct {
	Summary    GSTSummary      `json:"summary"`
	ByRate     []GSTRateBucket `json:"by_rate"`
	MonthlyGST struct {
		Labels []string          `json:"labels"`
		CGST   []decimal.Decimal `json:"cgst"`
		SGST   []decimal.Decimal `json:"sgst"`
		IGST   []decimal.Decimal `json:"igst"`
	} `json:"monthly_gst"`
	Invoices   []GSTInvoiceRow `json:"invoices"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

// ─── Sales report ────────────────────────────────────────────────────────────

type SalesReportResponse struct {
	Summary struct {
		TotalSales        decimal.Decimal `json:"total_sales"`
		TotalTransactions int             `json:"total_transactions"`
		TotalCustomers    int             `json:"total_customers"`
		AvgOrderValue     decimal.Decimal `json:"avg_order_value"`
	} `json:"summary"`
	DailySales   Series            `json:"daily_sales"`
	TopCustomers Series            `json:"top_customers"`
	Invoices     []InvoiceListItem `json:"invoices"`
	Total        int               `json:"total"`
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
}

type ReportFilter struct {
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`
	CustomerID *uint  `form:"customer_id"`
	Type       string `form:"type"` // payment report: customer | vendor
	Page       int    `form:"page,default=1" validate:"min=1"`
}

// ─── Dashboard ───────────────────────────────────────────────────────────────

type LowStockItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"qty"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
}

type RecentInvoice struct {
	BillNo   string          `json:"bill_no"`
	Date     string          `json:"date"`
	Customer string          `json:"customer"`
	Amount   decimal.Decimal `json:"amount"`
	Status   string          `json:"status"`
}

type DashboardResponse struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	CustomerCount  int64           `json:"customer_count"`
	VendorCount    int64           `json:"vendor_count"`
	ProductCount   int64           `json:"product_count"`
	WeeklySales    decimal.Decimal `json:"weekly_sales"`
	MonthlySales   decimal.Decimal `json:"monthly_sales"`
	SalesChange    decimal.Decimal `json:"sales_change"`    // pct vs previous 30 days
	ExpensesChange decimal.Decimal `json:"expenses_change"` // pct vs previous 30 days
	NewCustomers   int64           `json:"new_customers"`
	LowStockCount  int64           `json:"low_stock_count"`
	WeeklyChart    Series          `json:"weekly_chart_data"`
	RecentInvoices []RecentInvoice `json:"recent_invoices"`
	LowStockList   []LowStockItem  `json:"low_stock_list"`
}
