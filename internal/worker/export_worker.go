package worker

// export_worker.go
// Processes GST CSV export jobs from QueueExport: writes the filtered report
// to the export directory and chains an email job when requested.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Sriraja07/BillSys/internal/dto"

	"github.com/rs/zerolog/log"
)

// GSTCSVWriter is the slice of the report service the export worker needs.
type GSTCSVWriter interface {
	WriteGSTCSV(ctx context.Context, w io.Writer, filter dto.ReportFilter) error
}

// ExportJobPayload is the job envelope sent to QueueExport.
type ExportJobPayload struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Email     string `json:"email,omitempty"`
}

type ExportWorker struct {
	reports    GSTCSVWriter
	dispatcher *Dispatcher
	exportPath string
}

func NewExportWorker(reports GSTCSVWriter, dispatcher *Dispatcher, exportPath string) *ExportWorker {
	return &ExportWorker{reports: reports, dispatcher: dispatcher, exportPath: exportPath}
}

func (w *ExportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ExportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("export_worker: invalid payload")
		return nil
	}

	if err := os.MkdirAll(w.exportPath, 0755); err != nil {
		return fmt.Errorf("export_worker: create export dir: %w", err)
	}
	fileName := fmt.Sprintf("gst_report_%s.csv", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(w.exportPath, fileName)

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("export_worker: create file: %w", err)
	}
	writeErr := w.reports.WriteGSTCSV(ctx, f, dto.ReportFilter{
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
	})
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("export_worker: write csv: %w", writeErr)
	}
	if closeErr != nil {
		return closeErr
	}
	log.Info().Str("file", filePath).Msg("export_worker: CSV written")

	if payload.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail:        payload.Email,
			Subject:        "GST report export",
			Body:           "The requested GST report is attached.",
			AttachmentPath: filePath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", payload.Email).Msg("export_worker: failed to enqueue email")
		}
	}
	return nil
}
