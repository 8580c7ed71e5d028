package handler

import (
	"errors"
	"net/http"

	"github.com/Sriraja07/BillSys/internal/apierror"
	"github.com/Sriraja07/BillSys/internal/dto"
	"github.com/Sriraja07/BillSys/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct{ svc service.BillingService }

func NewBillingHandler(svc service.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

// billingStatus maps the known billing failures to HTTP codes; anything else
// is a plain bad request.
func billingStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, service.ErrAmountMismatch), errors.Is(err, service.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		c.JSON(billingStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	var filter dto.BillingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Invoice not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) RecordPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(billingStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) CreatePurchase(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePurchase(c.Request.Context(), req)
	if err != nil {
		c.JSON(billingStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BillingHandler) ListPurchases(c *gin.Context) {
	var filter dto.BillingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListPurchases(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list purchases"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) GetPurchase(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetPurchase(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Purchase not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) RecordVendorPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordVendorPayment(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(billingStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
