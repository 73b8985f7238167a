package handler

import (
	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LineItemRequest represents one requested invoice or purchase line.
type LineItemRequest struct {
	ProductID  *uuid.UUID `json:"product_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string     `json:"name" example:"Steel bolts M8"`
	Quantity   float64    `json:"qty" example:"10"`
	Unit       string     `json:"unit" example:"pcs"`
	UnitPrice  float64    `json:"price" example:"12.50"`
	GSTPercent float64    `json:"gst_percent" example:"18"`
	HSN        string     `json:"hsn" example:"7318"`
}

// CounterpartyRequest represents a manually entered buyer or vendor.
type CounterpartyRequest struct {
	Name      string `json:"name" example:"Sharma Traders"`
	Phone     string `json:"phone" example:"+91 98200 00000"`
	GSTIN     string `json:"gstin" example:"29AABCU9603R1ZM"`
	StateCode string `json:"state_code" example:"29"`
	Address   string `json:"address" example:"12 MG Road, Bengaluru"`
}

// CreateInvoiceRequest represents the create invoice request body.
type CreateInvoiceRequest struct {
	CustomerID *uuid.UUID           `json:"customer_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Customer   *CounterpartyRequest `json:"customer"`
	Items      []LineItemRequest    `json:"items"`
	Series     string               `json:"series" example:"MAIN"`
	Date       string               `json:"date" example:"2024-04-01"`
	PaidAmount float64              `json:"paid_amount" example:"0"`
	Notes      string               `json:"notes" example:"Delivered to godown 2"`
}

// CreatePurchaseRequest represents the create purchase request body.
type CreatePurchaseRequest struct {
	Vendor     CounterpartyRequest `json:"vendor"`
	Items      []LineItemRequest   `json:"items"`
	Date       string              `json:"date" example:"2024-04-01"`
	PaidAmount float64             `json:"paid_amount" example:"5000"`
	Notes      string              `json:"notes" example:"Bill no. 4471"`
}

// UpdatePaymentRequest represents the payment update request body.
type UpdatePaymentRequest struct {
	PaidAmount *float64 `json:"paid_amount" binding:"required" example:"1180"`
}

// OpeningStockRequest represents the opening stock adjustment request body.
type OpeningStockRequest struct {
	OpeningQuantity *int64 `json:"opening_quantity" binding:"required" example:"25"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
