package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/service"
)

// ProductHandler handles the ledger's writes to the product master.
type ProductHandler struct {
	ledgerService service.LedgerService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ledgerService service.LedgerService) *ProductHandler {
	return &ProductHandler{ledgerService: ledgerService}
}

// SetOpeningStock handles PUT /api/v1/products/:id/opening-stock
// @Summary Adjust opening stock
// @Description Set the opening quantity a product's stock valuation starts from
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param request body OpeningStockRequest true "Opening quantity"
// @Success 200 {object} Response{data=domain.Product} "Product updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Product not found"
// @Security BearerAuth
// @Router /products/{id}/opening-stock [put]
func (h *ProductHandler) SetOpeningStock(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	var req OpeningStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.ledgerService.AdjustOpeningStock(c.Request.Context(), actor, id, *req.OpeningQuantity)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, p)
}
