package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	ledgerService service.LedgerService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(ledgerService service.LedgerService) *InvoiceHandler {
	return &InvoiceHandler{ledgerService: ledgerService}
}

// parseListParams reads the shared listing query parameters. Dates are
// validated by the service.
func parseListParams(c *gin.Context) (service.ListDocumentsInput, bool) {
	input := service.ListDocumentsInput{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Query:  c.Query("q"),
		Status: c.Query("status"),
	}
	if v := c.Query("outstanding"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'outstanding': must be true or false")
			return input, false
		}
		input.Outstanding = b
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'offset': must be an integer")
			return input, false
		}
		input.Offset = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'limit': must be an integer")
			return input, false
		}
		input.Limit = n
	}
	return input, true
}

func pageMeta(page domain.Page) PagMeta {
	return PagMeta{Total: page.Total, Offset: page.Offset, Limit: page.Limit}
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Issue a GST invoice. The invoice number is allocated from the tenant's series for the invoice date's fiscal year.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Customer or product not found"
// @Failure 409 {object} ErrorResponseBody "Concurrent allocation conflict"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, seller, ok := extractSeller(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.ledgerService.CreateInvoice(c.Request.Context(), actor, seller, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices newest first
// @Tags invoices
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "End date (YYYY-MM-DD or RFC 3339)"
// @Param q query string false "Search invoice number or customer name"
// @Param status query string false "Payment status (unpaid, partial, paid)"
// @Param outstanding query bool false "Only unpaid and partially paid invoices"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "List of invoices"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	input, ok := parseListParams(c)
	if !ok {
		return
	}

	invoices, page, err := h.ledgerService.ListInvoices(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, pageMeta(page))
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.ledgerService.GetInvoice(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// UpdatePayment handles PATCH|PUT /api/v1/invoices/:id/payment
// @Summary Update invoice payment
// @Description Set the paid amount. Amounts are clamped to [0, total] and the payment status is derived.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body UpdatePaymentRequest true "Paid amount"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/payment [patch]
func (h *InvoiceHandler) UpdatePayment(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.ledgerService.UpdateInvoicePayment(c.Request.Context(), actor, id, *req.PaidAmount)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}
