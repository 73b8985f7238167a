package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"khata/internal/csvexport"
	"khata/internal/ledger"
	"khata/internal/logger"
	"khata/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles file export endpoints.
type ExportHandler struct {
	exportService service.ExportService
	calendar      ledger.BusinessCalendar
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService, calendar ledger.BusinessCalendar) *ExportHandler {
	return &ExportHandler{exportService: exportService, calendar: calendar}
}

func (h *ExportHandler) attachment(c *gin.Context, name, ext, contentType string) {
	filename := csvexport.BuildFilename(name, h.calendar.Day(time.Now()), ext)
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
}

// InvoicesCSV handles GET /api/v1/invoices/export
// @Summary      Export invoices as CSV
// @Description  Streams invoices newest first as a UTF-8 CSV with BOM
// @Tags         invoices
// @Produce      text/csv
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        q query string false "Search invoice number or customer name"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /invoices/export [get]
func (h *ExportHandler) InvoicesCSV(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	input := parseRange(c)
	rows, err := h.exportService.StreamInvoiceRows(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.attachment(c, "invoices", "csv", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	cw := csvexport.NewWriter(c.Writer, h.calendar.Location())
	if err := cw.WriteHeader(); err != nil {
		return
	}
	n, err := cw.WriteRows(rows, 200)
	if err != nil {
		// Headers are already sent.
		log := logger.WithRequestID(c.GetString("request_id"))
		log.Error().Err(err).Int("rows_written", n).Msg("invoice csv export aborted")
		_ = c.Error(err)
	}
}

// ArchiveInvoicesCSV handles POST /api/v1/invoices/export/archive
// @Summary      Archive invoice export
// @Description  Uploads the invoice CSV to object storage, returns a presigned link and emails it to the caller
// @Tags         invoices
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        q query string false "Search invoice number or customer name"
// @Success      201 {object} Response{data=domain.ExportArchive}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      503 {object} ErrorResponseBody "Archiving not configured"
// @Security     BearerAuth
// @Router       /invoices/export/archive [post]
func (h *ExportHandler) ArchiveInvoicesCSV(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	archive, err := h.exportService.ArchiveInvoicesCSV(c.Request.Context(), actor, parseRange(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, archive)
}

// GSTR1XLSX handles GET /api/v1/reports/gstr1/xlsx
// @Summary      Download GSTR-1 workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /reports/gstr1/xlsx [get]
func (h *ExportHandler) GSTR1XLSX(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteGSTR1XLSX(c.Request.Context(), actor, parseRange(c), &buf); err != nil {
		HandleError(c, err)
		return
	}

	h.attachment(c, "gstr1", "xlsx", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
