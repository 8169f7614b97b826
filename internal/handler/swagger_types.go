package handler

import (
	"jewelscan/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ParseRequest represents a single scanner string.
type ParseRequest struct {
	Raw string `json:"raw" example:"12.500*2.500*10.0001ABC123"`
}

// ParseBatchRequest represents a batch of scanner strings.
type ParseBatchRequest struct {
	Raws []string `json:"raws" binding:"required" example:"12.500*2.500*10.0001ABC123,7.2507.2505XYZ9"`
}

// ExportScansRequest carries reviewed parse results to be downloaded as CSV.
type ExportScansRequest struct {
	Name  string              `json:"name" example:"counter-2 intake"`
	Items []domain.ParsedItem `json:"items" binding:"required"`
}

// ConfirmRequest represents reviewed items forwarded to the ledger.
type ConfirmRequest struct {
	ItemType domain.ItemType     `json:"itemType" binding:"required" example:"purchase"`
	Items    []domain.ParsedItem `json:"items" binding:"required"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// ParseBatchResponse is a batch of parse results with status counts.
type ParseBatchResponse struct {
	Items   []domain.ParsedItem  `json:"items"`
	Summary domain.StatusSummary `json:"summary"`
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
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
