package infra

// pdf.go — receipt generation using go-pdf/fpdf. Produces an A5 invoice
// receipt with the item table, discount and GST breakup, bold final amount
// and the payment rows recorded so far.
//
// The output file is saved to storagePath/receipt_{bill_no}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sriraja07/BillSys/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReceiptPDF renders an invoice receipt and returns the absolute
// path of the written file.
func GenerateReceiptPDF(inv *model.Invoice, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", inv.BillNo)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "BillSys", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, inv.BillNo, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, inv.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	customer := "Walk-in"
	if inv.Customer != nil {
		customer = fmt.Sprintf("%s (%s)", inv.Customer.Name, inv.Customer.MobileNumber)
	}
	pdf.CellFormat(contentW, 4, "Customer: "+customer, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.46
	col2 := contentW * 0.14
	col3 := contentW * 0.20
	col4 := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range inv.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		if len(name) > 30 {
			name = name[:29] + "…"
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, item.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals and tax breakup ───────────────────────────────────────────────
	row := func(label string, amount decimal.Decimal) {
		pdf.CellFormat(col1+col2, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3+col4, 5, amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
	row("Subtotal:", inv.TotalAmount)
	if !inv.Discount.IsZero() {
		row("Discount:", inv.Discount.Neg())
	}
	if !inv.CGST.IsZero() {
		row("CGST:", inv.CGST)
	}
	if !inv.SGST.IsZero() {
		row("SGST:", inv.SGST)
	}
	if !inv.IGST.IsZero() {
		row("IGST:", inv.IGST)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2, 7, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 7, inv.FinalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payments ─────────────────────────────────────────────────────────────
	if len(inv.Payments) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 8)
		for _, p := range inv.Payments {
			row(fmt.Sprintf("Paid (%s, %s):", p.Method, p.PaymentDate.Format("02/01/2006")), p.Amount)
		}
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentW, 5, "Status: "+inv.PaymentStatus, "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Thank you for your business!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
