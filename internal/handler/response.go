package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/domain"
	"khata/internal/logger"
	"khata/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "VALIDATION_ERROR", verr.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "validation failed"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return http.StatusNotFound, "PURCHASE_NOT_FOUND", "purchase not found"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "PRODUCT_NOT_FOUND", "product not found"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict, "CONCURRENCY_CONFLICT", "the ledger is busy; retry the request"
	case errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER", "document number already exists for this tenant"
	case errors.Is(err, domain.ErrExportStorageDisabled):
		return http.StatusServiceUnavailable, "EXPORT_ARCHIVE_DISABLED", "export archiving is not configured"
	case errors.Is(err, domain.ErrComputationInconsistency):
		return http.StatusInternalServerError, "COMPUTATION_INCONSISTENCY", "ledger arithmetic check failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractActor reads the acting identity set by the auth middleware.
// Returns false if it is missing (error response already written).
func extractActor(c *gin.Context) (domain.Actor, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return domain.Actor{}, false
	}
	return actor, true
}

// extractSeller returns the actor together with the tax identity of the
// acting tenant, as ensured by the tenant profile middleware.
func extractSeller(c *gin.Context) (domain.Actor, domain.TaxParty, bool) {
	actor, ok := extractActor(c)
	if !ok {
		return domain.Actor{}, domain.TaxParty{}, false
	}
	tenant, err := middleware.GetTenant(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant profile")
		return domain.Actor{}, domain.TaxParty{}, false
	}
	party := tenant.SellerInfo(actor.HomeStateCode)
	if party.GSTIN == "" {
		party.GSTIN = actor.GSTIN
	}
	return actor, party, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log := logger.WithRequestID(c.GetString("request_id"))
		log.Error().Err(err).Str("code", code).Msg("internal error")
	}
	RespondError(c, status, code, msg)
}
