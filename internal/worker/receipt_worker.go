package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders the invoice PDF and
// chains an email job when the customer left an address.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sriraja07/BillSys/internal/infra"
	"github.com/Sriraja07/BillSys/internal/repository"

	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	InvoiceID uint   `json:"invoice_id"`
	Email     string `json:"email,omitempty"`
}

type ReceiptWorker struct {
	invoiceRepo    repository.InvoiceRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewReceiptWorker(invoiceRepo repository.InvoiceRepository, dispatcher *Dispatcher, pdfStoragePath string) *ReceiptWorker {
	return &ReceiptWorker{
		invoiceRepo:    invoiceRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	inv, err := w.invoiceRepo.FindByID(ctx, payload.InvoiceID)
	if err != nil {
		return fmt.Errorf("receipt_worker: invoice %d: %w", payload.InvoiceID, err)
	}

	pdfPath, err := infra.GenerateReceiptPDF(inv, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: pdf for %s: %w", inv.BillNo, err)
	}
	log.Info().Str("pdf", pdfPath).Str("bill_no", inv.BillNo).Msg("receipt_worker: PDF generated")

	if payload.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail:        payload.Email,
			Subject:        fmt.Sprintf("Invoice %s", inv.BillNo),
			Body:           fmt.Sprintf("Please find your invoice attached.\nAmount due: %s", inv.FinalAmount.StringFixed(2)),
			AttachmentPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.Email).Msg("receipt_worker: failed to enqueue email")
		}
	}
	return nil
}
