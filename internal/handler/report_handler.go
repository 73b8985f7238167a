package handler

import (
	"github.com/gin-gonic/gin"

	"khata/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseRange extracts the reporting period from query params. Dates are
// validated by the service.
func parseRange(c *gin.Context) service.RangeInput {
	return service.RangeInput{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Query: c.Query("q"),
	}
}

// Stock handles GET /api/v1/reports/stock
// @Summary      Stock snapshot
// @Description  Every product with opening, purchased, sold and on-hand quantities valued at weighted-average cost as of now
// @Tags         reports
// @Produce      json
// @Success      200 {object} Response{data=[]domain.StockRow}
// @Failure      401 {object} ErrorResponseBody
// @Failure      500 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/stock [get]
func (h *ReportHandler) Stock(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	rows, err := h.reportService.Stock(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// Sales handles GET /api/v1/reports/sales
// @Summary      Sales summary
// @Description  Invoice count, totals, tax components and amount due for a period
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        q query string false "Search invoice number or customer name"
// @Success      200 {object} Response{data=domain.SalesSummary}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/sales [get]
func (h *ReportHandler) Sales(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Sales(c.Request.Context(), actor, parseRange(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// Counts handles GET /api/v1/reports/counts
// @Summary      Entity counts
// @Tags         reports
// @Produce      json
// @Success      200 {object} Response{data=domain.EntityCounts}
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/counts [get]
func (h *ReportHandler) Counts(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	counts, err := h.reportService.Counts(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, counts)
}

// Valuation handles GET /api/v1/reports/valuation
// @Summary      Stock valuation
// @Description  Total stock value at weighted-average cost as of a date (default now)
// @Tags         reports
// @Produce      json
// @Param        date query string false "As-of date (YYYY-MM-DD)"
// @Success      200 {object} Response{data=domain.ValuationReport}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/valuation [get]
func (h *ReportHandler) Valuation(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	result, err := h.reportService.Valuation(c.Request.Context(), actor, c.Query("date"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ProfitAndLoss handles GET /api/v1/reports/pl
// @Summary      Profit and loss
// @Description  Revenue, cost of goods sold and gross profit for a period
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} Response{data=domain.ProfitAndLoss}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/pl [get]
func (h *ReportHandler) ProfitAndLoss(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	pl, err := h.reportService.ProfitAndLoss(c.Request.Context(), actor, parseRange(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, pl)
}

// BalanceSheet handles GET /api/v1/reports/balance-sheet
// @Summary      Balance sheet
// @Description  Inventory, receivables, payables and equity as of a date (default now)
// @Tags         reports
// @Produce      json
// @Param        date query string false "As-of date (YYYY-MM-DD)"
// @Success      200 {object} Response{data=domain.BalanceSheet}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	sheet, err := h.reportService.BalanceSheet(c.Request.Context(), actor, c.Query("date"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sheet)
}

// BalanceSheetRange handles GET /api/v1/reports/balance-sheet-range
// @Summary      Balance sheet comparison
// @Description  Balance sheets at the start and end of a period with deltas
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} Response{data=domain.BalanceSheetRange}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/balance-sheet-range [get]
func (h *ReportHandler) BalanceSheetRange(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	result, err := h.reportService.BalanceSheetRange(c.Request.Context(), actor, c.Query("from"), c.Query("to"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// GSTR1 handles GET /api/v1/reports/gstr1
// @Summary      GSTR-1 summary
// @Description  Outward supplies split by party type, supply type, rate and HSN
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} Response{data=domain.GSTR1Summary}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/gstr1 [get]
func (h *ReportHandler) GSTR1(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GSTR1(c.Request.Context(), actor, parseRange(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// GSTR3B handles GET /api/v1/reports/gstr3b
// @Summary      GSTR-3B summary
// @Description  Outward tax liability netted against input tax credit
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} Response{data=domain.GSTR3BSummary}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/gstr3b [get]
func (h *ReportHandler) GSTR3B(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GSTR3B(c.Request.Context(), actor, parseRange(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
