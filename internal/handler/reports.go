package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Sriraja07/BillSys/internal/apierror"
	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/service"
	"github.com/Sriraja07/BillSys/internal/worker"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc        service.ReportService
	dispatcher *worker.Dispatcher
}

func NewReportsHandler(svc service.ReportService, dispatcher *worker.Dispatcher) *ReportsHandler {
	return &ReportsHandler{svc: svc, dispatcher: dispatcher}
}

func (h *ReportsHandler) PaymentLedger(c *gin.Context) {
	var filter dto.LedgerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.PaymentLedger(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) PaymentReport(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.PaymentReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) GSTReport(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.GSTReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportGSTCSV streams the CSV for download. With ?email=addr the export
// runs async in the worker pool and is mailed instead.
func (h *ReportsHandler) ExportGSTCSV(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	if email := c.Query("email"); email != "" {
		job := worker.ExportJobPayload{
			StartDate: filter.StartDate,
			EndDate:   filter.EndDate,
			Email:     email,
		}
		if err := h.dispatcher.EnqueueExport(c.Request.Context(), job); err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Failed to queue export"))
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "export queued, the report will be emailed"})
		return
	}

	fileName := fmt.Sprintf("gst_report_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	if err := h.svc.WriteGSTCSV(c.Request.Context(), c.Writer, filter); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

func (h *ReportsHandler) SalesReport(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.SalesReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
