package dto

// StockUpdateRequest is a manual stock adjustment from the stock page.
type StockUpdateRequest struct {
	Action   string `json:"action"   validate:"required,oneof=add remove"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason"`
}

type StockUpdateResponse struct {
	ProductID     uint   `json:"product_id"`
	StockQuantity int    `json:"stock_quantity"`
	Message       string `json:"message"`
}

type StockMovementResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stock_before"`
	StockAfter  int    `json:"stock_after"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"created_at"`
}
