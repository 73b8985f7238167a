package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/service"
)

// PurchaseHandler handles purchase endpoints.
type PurchaseHandler struct {
	ledgerService service.LedgerService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(ledgerService service.LedgerService) *PurchaseHandler {
	return &PurchaseHandler{ledgerService: ledgerService}
}

// Create handles POST /api/v1/purchases
// @Summary Record a purchase
// @Description Record an inward supply. Tax is split by comparing the vendor's state with the tenant's.
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} Response{data=domain.Purchase} "Purchase recorded"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Product not found"
// @Security BearerAuth
// @Router /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	actor, tenant, ok := extractSeller(c)
	if !ok {
		return
	}

	var input service.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.ledgerService.CreatePurchase(c.Request.Context(), actor, tenant, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, p)
}

// List handles GET /api/v1/purchases
// @Summary List purchases
// @Description List purchases newest first
// @Tags purchases
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "End date (YYYY-MM-DD or RFC 3339)"
// @Param q query string false "Search vendor name"
// @Param status query string false "Payment status (unpaid, partial, paid)"
// @Param outstanding query bool false "Only unpaid and partially paid purchases"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(20)
// @Success 200 {object} Response{data=[]domain.Purchase,meta=PagMeta} "List of purchases"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	input, ok := parseListParams(c)
	if !ok {
		return
	}

	purchases, page, err := h.ledgerService.ListPurchases(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, purchases, pageMeta(page))
}

// GetByID handles GET /api/v1/purchases/:id
// @Summary Get purchase by ID
// @Tags purchases
// @Produce json
// @Param id path string true "Purchase ID (UUID)"
// @Success 200 {object} Response{data=domain.Purchase} "Purchase details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Purchase not found"
// @Security BearerAuth
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid purchase ID")
		return
	}

	p, err := h.ledgerService.GetPurchase(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, p)
}

// UpdatePayment handles PATCH|PUT /api/v1/purchases/:id/payment
// @Summary Update purchase payment
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path string true "Purchase ID (UUID)"
// @Param request body UpdatePaymentRequest true "Paid amount"
// @Success 200 {object} Response{data=domain.Purchase} "Purchase updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Purchase not found"
// @Security BearerAuth
// @Router /purchases/{id}/payment [patch]
func (h *PurchaseHandler) UpdatePayment(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid purchase ID")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.ledgerService.UpdatePurchasePayment(c.Request.Context(), actor, id, *req.PaidAmount)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, p)
}
