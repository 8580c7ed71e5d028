package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sriraja07/BillSys/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindJSON(t *testing.T, body string, req interface{}) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, bindAndValidate(c, req)
}

func TestBindAndValidate_FullyDiscountedInvoice(t *testing.T) {
	// total 100, discount 100, final 0 is a valid sale — the zero amounts
	// must survive validation and reach the service's identity check.
	body := `{
		"items": [{"product_id": 1, "quantity": 1, "unit_price": 100, "total_price": 100}],
		"total_amount": 100,
		"discount": 100,
		"final_amount": 0
	}`
	var req dto.CreateInvoiceRequest
	_, ok := bindJSON(t, body, &req)
	require.True(t, ok)
	assert.True(t, req.FinalAmount.IsZero())
	assert.Equal(t, "100", req.TotalAmount.String())
}

func TestBindAndValidate_NegativeFinalAmountRejected(t *testing.T) {
	body := `{
		"items": [{"product_id": 1, "quantity": 1, "unit_price": 100, "total_price": 100}],
		"total_amount": 100,
		"final_amount": -5
	}`
	var req dto.CreateInvoiceRequest
	w, ok := bindJSON(t, body, &req)
	require.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBindAndValidate_MissingItemsRejected(t *testing.T) {
	var req dto.CreateInvoiceRequest
	w, ok := bindJSON(t, `{"total_amount": 0, "final_amount": 0}`, &req)
	require.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
