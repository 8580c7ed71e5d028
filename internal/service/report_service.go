package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/model"
	"github.com/Sriraja07/BillSys/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ledgerPageSize is fixed: the ledger always pages in tens.
const ledgerPageSize = 10

// gstRates are the GST slabs invoices are bucketed into.
var gstRates = []int{5, 12, 18, 28}

const dashboardCacheKey = "cache:dashboard"
const dashboardCacheTTL = 30 * time.Second

// ReportService aggregates billing data into the ledger, tax, sales and
// dashboard views. All merging and bucketing happens in memory over rows the
// repositories return.
type ReportService interface {
	PaymentLedger(ctx context.Context, filter dto.LedgerFilter) (*dto.LedgerResponse, error)
	PaymentReport(ctx context.Context, filter dto.ReportFilter) (*dto.PaymentReportResponse, error)
	GSTReport(ctx context.Context, filter dto.ReportFilter) (*dto.GSTReportResponse, error)
	WriteGSTCSV(ctx context.Context, w io.Writer, filter dto.ReportFilter) error
	SalesReport(ctx context.Context, filter dto.ReportFilter) (*dto.SalesReportResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type reportService struct {
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository
	ledgerRepo   repository.LedgerRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	vendorRepo   repository.VendorRepository
	expenseRepo  repository.ExpenseRepository
	rdb          *redis.Client
}

func NewReportService(
	invoiceRepo repository.InvoiceRepository,
	purchaseRepo repository.PurchaseRepository,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	vendorRepo repository.VendorRepository,
	expenseRepo repository.ExpenseRepository,
	rdb *redis.Client,
) ReportService {
	return &reportService{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		ledgerRepo:   ledgerRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		expenseRepo:  expenseRepo,
		rdb:          rdb,
	}
}

// parseRange turns optional YYYY-MM-DD bounds into half-open [start, end).
// The end bound is advanced one day so the named end date is inclusive.
func parseRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date must be YYYY-MM-DD")
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	return start, end, nil
}

// fiscalYearBounds returns [Apr 1, Apr 1 next year) for the fiscal year
// containing t. January–March belong to the previous calendar year's run.
func fiscalYearBounds(t time.Time) (time.Time, time.Time) {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(1, 0, 0)
}

// ── Payment ledger ────────────────────────────────────────────────────────────
// Both payment tables are loaded, merged into one tagged sequence, filtered,
// sorted newest-first and paged in memory.

func (s *reportService) PaymentLedger(ctx context.Context, filter dto.LedgerFilter) (*dto.LedgerResponse, error) {
	start, end, err := parseRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	entries, err := s.collectLedger(ctx, filter.Category, start, end)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" {
		kept := entries[:0]
		for _, e := range entries {
			if e.Status == filter.Status {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	total := len(entries)
	pages := (total + ledgerPageSize - 1) / ledgerPageSize
	page := filter.Page
	if page < 1 {
		page = 1
	}
	lo := (page - 1) * ledgerPageSize
	hi := lo + ledgerPageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	return &dto.LedgerResponse{
		Data:       entries[lo:hi],
		Total:      total,
		Page:       page,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}, nil
}

func (s *reportService) collectLedger(ctx context.Context, category string, start, end *time.Time) ([]dto.LedgerEntry, error) {
	var rows []repository.LedgerRow
	var entries []dto.LedgerEntry

	appendRows := func(rs []repository.LedgerRow, cat string) {
		for _, r := range rs {
			entries = append(entries, dto.LedgerEntry{
				ID:        r.ID,
				Amount:    r.Amount,
				Method:    r.Method,
				Date:      r.Date.Format("2006-01-02"),
				Status:    r.Status,
				BillNo:    r.BillNo,
				PartyName: r.PartyName,
				Category:  cat,
			})
		}
	}

	if category == "" || category == "customer" {
		var err error
		rows, err = s.ledgerRepo.CustomerPayments(ctx, start, end)
		if err != nil {
			return nil, err
		}
		appendRows(rows, "customer")
	}
	if category == "" || category == "vendor" {
		var err error
		rows, err = s.ledgerRepo.VendorPayments(ctx, start, end)
		if err != nil {
			return nil, err
		}
		appendRows(rows, "vendor")
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

// ── Payment report ────────────────────────────────────────────────────────────

func (s *reportService) PaymentReport(ctx context.Context, filter dto.ReportFilter) (*dto.PaymentReportResponse, error) {
	start, end, err := parseRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	received, err := s.ledgerRepo.CustomerPayments(ctx, start, end)
	if err != nil {
		return nil, err
	}
	paid, err := s.ledgerRepo.VendorPayments(ctx, start, end)
	if err != nil {
		return nil, err
	}

	resp := &dto.PaymentReportResponse{}
	byMethod := map[string]decimal.Decimal{}
	for _, r := range received {
		resp.Summary.TotalReceived = resp.Summary.TotalReceived.Add(r.Amount)
		byMethod[r.Method] = byMethod[r.Method].Add(r.Amount)
	}
	for _, r := range paid {
		resp.Summary.TotalPaid = resp.Summary.TotalPaid.Add(r.Amount)
	}
	resp.Summary.TotalTransactions = len(received) + len(paid)

	for _, method := range []string{"cash", "card", "upi"} {
		resp.PaymentMethods.Labels = append(resp.PaymentMethods.Labels, method)
		resp.PaymentMethods.Data = append(resp.PaymentMethods.Data, byMethod[method])
	}

	// Month axis walks the requested range (the last twelve months when no
	// range is given); every bucket is present even when empty.
	now := time.Now()
	axisEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	axisStart := axisEnd.AddDate(-1, 0, 0)
	if start != nil {
		axisStart = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	}
	if end != nil {
		axisEnd = *end
	}
	recvByMonth := map[string]decimal.Decimal{}
	paidByMonth := map[string]decimal.Decimal{}
	for _, r := range received {
		recvByMonth[r.Date.Format("2006-01")] = recvByMonth[r.Date.Format("2006-01")].Add(r.Amount)
	}
	for _, r := range paid {
		paidByMonth[r.Date.Format("2006-01")] = paidByMonth[r.Date.Format("2006-01")].Add(r.Amount)
	}
	for m := axisStart; m.Before(axisEnd); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		resp.MonthlyTrend.Labels = append(resp.MonthlyTrend.Labels, m.Format("Jan 2006"))
		resp.MonthlyTrend.Received = append(resp.MonthlyTrend.Received, recvByMonth[key])
		resp.MonthlyTrend.Paid = append(resp.MonthlyTrend.Paid, paidByMonth[key])
	}

	ledger, err := s.PaymentLedger(ctx, dto.LedgerFilter{
		Category:  filter.Type,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Page:      filter.Page,
	})
	if err != nil {
		return nil, err
	}
	resp.Ledger = *ledger
	return resp, nil
}

// ── GST report ────────────────────────────────────────────────────────────────
// Defaults to the current fiscal year when no range is given. Rate buckets
// are computed from line items: a line lands in the bucket matching its
// product's GST rate, its GST being taxable × rate.

func (s *reportService) gstInvoices(ctx context.Context, filter dto.ReportFilter) ([]model.Invoice, time.Time, time.Time, error) {
	start, end, err := parseRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	fyStart, fyEnd := fiscalYearBounds(time.Now())
	if start == nil {
		start = &fyStart
	}
	if end == nil {
		end = &fyEnd
	}
	invoices, err := s.invoiceRepo.ListRange(ctx, *start, *end, nil)
	return invoices, *start, *end, err
}

func (s *reportService) GSTReport(ctx context.Context, filter dto.ReportFilter) (*dto.GSTReportResponse, error) {
	invoices, start, end, err := s.gstInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.GSTReportResponse{}
	type bucket struct {
		invoices map[uint]bool
		taxable  decimal.Decimal
		gst      decimal.Decimal
	}
	buckets := map[int]*bucket{}
	for _, rate := range gstRates {
		buckets[rate] = &bucket{invoices: map[uint]bool{}}
	}

	cgstByMonth := map[string]decimal.Decimal{}
	sgstByMonth := map[string]decimal.Decimal{}
	igstByMonth := map[string]decimal.Decimal{}

	rows := make([]dto.GSTInvoiceRow, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		resp.Summary.TotalCGST = resp.Summary.TotalCGST.Add(inv.CGST)
		resp.Summary.TotalSGST = resp.Summary.TotalSGST.Add(inv.SGST)
		resp.Summary.TotalIGST = resp.Summary.TotalIGST.Add(inv.IGST)

		key := inv.CreatedAt.Format("2006-01")
		cgstByMonth[key] = cgstByMonth[key].Add(inv.CGST)
		sgstByMonth[key] = sgstByMonth[key].Add(inv.SGST)
		igstByMonth[key] = igstByMonth[key].Add(inv.IGST)

		for _, item := range inv.Items {
			if item.Product == nil {
				continue
			}
			rate := int(item.Product.GSTRate.IntPart())
			b, ok := buckets[rate]
			if !ok {
				continue
			}
			b.invoices[inv.ID] = true
			b.taxable = b.taxable.Add(item.TotalPrice)
			b.gst = b.gst.Add(item.TotalPrice.Mul(item.Product.GSTRate).Div(decimal.NewFromInt(100)))
		}

		rows = append(rows, dto.GSTInvoiceRow{
			ID:       inv.ID,
			BillNo:   inv.BillNo,
			Date:     inv.CreatedAt.Format("2006-01-02"),
			CGST:     inv.CGST,
			SGST:     inv.SGST,
			IGST:     inv.IGST,
			TotalGST: inv.CGST.Add(inv.SGST).Add(inv.IGST),
		})
	}
	resp.Summary.TotalGST = resp.Summary.TotalCGST.Add(resp.Summary.TotalSGST).Add(resp.Summary.TotalIGST)

	for _, rate := range gstRates {
		b := buckets[rate]
		resp.ByRate = append(resp.ByRate, dto.GSTRateBucket{
			Rate:             rate,
			TransactionCount: len(b.invoices),
			TaxableAmount:    b.taxable,
			TotalGST:         b.gst.Round(2),
		})
	}

	// Walk month by month over the range so empty months show as zero.
	for m := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location()); m.Before(end); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		resp.MonthlyGST.Labels = append(resp.MonthlyGST.Labels, m.Format("Jan 2006"))
		resp.MonthlyGST.CGST = append(resp.MonthlyGST.CGST, cgstByMonth[key])
		resp.MonthlyGST.SGST = append(resp.MonthlyGST.SGST, sgstByMonth[key])
		resp.MonthlyGST.IGST = append(resp.MonthlyGST.IGST, igstByMonth[key])
	}

	total := len(rows)
	pages := (total + ledgerPageSize - 1) / ledgerPageSize
	page := filter.Page
	if page < 1 {
		page = 1
	}
	lo := (page - 1) * ledgerPageSize
	hi := lo + ledgerPageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	resp.Invoices = rows[lo:hi]
	resp.Total = total
	resp.Page = page
	resp.TotalPages = pages
	return resp, nil
}

// WriteGSTCSV streams the invoice tax rows for the filtered range.
func (s *reportService) WriteGSTCSV(ctx context.Context, w io.Writer, filter dto.ReportFilter) error {
	invoices, _, _, err := s.gstInvoices(ctx, filter)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "cgst", "sgst", "igst", "total_gst"}); err != nil {
		return err
	}
	for i := range invoices {
		inv := &invoices[i]
		totalGST := inv.CGST.Add(inv.SGST).Add(inv.IGST)
		record := []string{
			fmt.Sprintf("%d", inv.ID),
			inv.CreatedAt.Format("2006-01-02"),
			inv.CGST.StringFixed(2),
			inv.SGST.StringFixed(2),
			inv.IGST.StringFixed(2),
			totalGST.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ── Sales report ──────────────────────────────────────────────────────────────
// Defaults to the last 30 days. The daily series walks the whole range so
// days without sales plot as zero.

func (s *reportService) SalesReport(ctx context.Context, filter dto.ReportFilter) (*dto.SalesReportResponse, error) {
	start, end, err := parseRange(filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if end == nil {
		// Tomorrow's local midnight, so today's sales fall inside the window
		// and the bound lines up with the local-date bucket keys below.
		e := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		end = &e
	}
	if start == nil {
		st := end.AddDate(0, 0, -30)
		start = &st
	}

	invoices, err := s.invoiceRepo.ListRange(ctx, *start, *end, filter.CustomerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{}
	byDay := map[string]decimal.Decimal{}
	byCustomer := map[string]decimal.Decimal{}
	customers := map[uint]bool{}
	for i := range invoices {
		inv := &invoices[i]
		resp.Summary.TotalSales = resp.Summary.TotalSales.Add(inv.FinalAmount)
		day := inv.CreatedAt.Format("2006-01-02")
		byDay[day] = byDay[day].Add(inv.FinalAmount)
		if inv.CustomerID != nil {
			customers[*inv.CustomerID] = true
			name := "Walk-in"
			if inv.Customer != nil {
				name = inv.Customer.Name
			}
			byCustomer[name] = byCustomer[name].Add(inv.FinalAmount)
		}
	}
	resp.Summary.TotalTransactions = len(invoices)
	resp.Summary.TotalCustomers = len(customers)
	if len(invoices) > 0 {
		resp.Summary.AvgOrderValue = resp.Summary.TotalSales.
			Div(decimal.NewFromInt(int64(len(invoices)))).Round(2)
	}

	for d := *start; d.Before(*end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		resp.DailySales.Labels = append(resp.DailySales.Labels, key)
		resp.DailySales.Data = append(resp.DailySales.Data, byDay[key])
	}

	type customerTotal struct {
		name  string
		total decimal.Decimal
	}
	top := make([]customerTotal, 0, len(byCustomer))
	for name, total := range byCustomer {
		top = append(top, customerTotal{name, total})
	}
	sort.Slice(top, func(i, j int) bool { return top[i].total.GreaterThan(top[j].total) })
	if len(top) > 5 {
		top = top[:5]
	}
	for _, t := range top {
		resp.TopCustomers.Labels = append(resp.TopCustomers.Labels, t.name)
		resp.TopCustomers.Data = append(resp.TopCustomers.Data, t.total)
	}

	total := len(invoices)
	pages := (total + ledgerPageSize - 1) / ledgerPageSize
	page := filter.Page
	if page < 1 {
		page = 1
	}
	lo := (page - 1) * ledgerPageSize
	hi := lo + ledgerPageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	for i := lo; i < hi; i++ {
		resp.Invoices = append(resp.Invoices, invoiceToListItem(&invoices[i]))
	}
	resp.Total = total
	resp.Page = page
	resp.TotalPages = pages
	return resp, nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────
// The snapshot is cached in Redis for a short TTL since every client polls it.

func (s *reportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var resp dto.DashboardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.buildDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return resp, nil
}

// pctChange returns the percentage change from prev to cur, zero when there
// is no previous baseline.
func pctChange(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
}

func (s *reportService) buildDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	monthAgo := now.AddDate(0, 0, -30)
	twoMonthsAgo := now.AddDate(0, 0, -60)
	weekAgo := now.AddDate(0, 0, -7)

	resp := &dto.DashboardResponse{}
	var err error

	if resp.TotalSales, err = s.invoiceRepo.SumFinalAmount(ctx, time.Time{}, now.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	if resp.MonthlySales, err = s.invoiceRepo.SumFinalAmount(ctx, monthAgo, now.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	prevSales, err := s.invoiceRepo.SumFinalAmount(ctx, twoMonthsAgo, monthAgo)
	if err != nil {
		return nil, err
	}
	resp.SalesChange = pctChange(resp.MonthlySales, prevSales)

	if resp.TotalExpenses, err = s.expenseRepo.SumRange(ctx, monthAgo, now.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	prevExpenses, err := s.expenseRepo.SumRange(ctx, twoMonthsAgo, monthAgo)
	if err != nil {
		return nil, err
	}
	resp.ExpensesChange = pctChange(resp.TotalExpenses, prevExpenses)

	if resp.WeeklySales, err = s.invoiceRepo.SumFinalAmount(ctx, weekAgo, now.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}

	if resp.CustomerCount, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.VendorCount, err = s.vendorRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.ProductCount, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if resp.NewCustomers, err = s.customerRepo.CountSince(ctx, monthAgo); err != nil {
		return nil, err
	}
	if resp.LowStockCount, err = s.productRepo.CountLowStock(ctx, 5); err != nil {
		return nil, err
	}

	// Seven-day chart, zero-filled per day.
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	weekInvoices, err := s.invoiceRepo.ListRange(ctx, weekStart, now.AddDate(0, 0, 1), nil)
	if err != nil {
		return nil, err
	}
	byDay := map[string]decimal.Decimal{}
	for i := range weekInvoices {
		key := weekInvoices[i].CreatedAt.Format("2006-01-02")
		byDay[key] = byDay[key].Add(weekInvoices[i].FinalAmount)
	}
	for d := weekStart; !d.After(now); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		resp.WeeklyChart.Labels = append(resp.WeeklyChart.Labels, d.Format("Mon"))
		resp.WeeklyChart.Data = append(resp.WeeklyChart.Data, byDay[key])
	}

	recent, err := s.invoiceRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	resp.RecentInvoices = make([]dto.RecentInvoice, 0, len(recent))
	for i := range recent {
		inv := &recent[i]
		name := "Walk-in"
		if inv.Customer != nil {
			name = inv.Customer.Name
		}
		resp.RecentInvoices = append(resp.RecentInvoices, dto.RecentInvoice{
			BillNo:   inv.BillNo,
			Date:     inv.CreatedAt.Format("2006-01-02"),
			Customer: name,
			Amount:   inv.FinalAmount,
			Status:   inv.PaymentStatus,
		})
	}

	low, err := s.productRepo.LowStock(ctx, 10, 8)
	if err != nil {
		return nil, err
	}
	resp.LowStockList = make([]dto.LowStockItem, 0, len(low))
	for _, p := range low {
		resp.LowStockList = append(resp.LowStockList, dto.LowStockItem{
			Name:     p.Name,
			Quantity: p.StockQuantity,
			Category: p.Category,
			Brand:    p.Brand,
		})
	}
	return resp, nil
}
