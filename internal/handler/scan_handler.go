package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelscan/internal/csvexport"
	"jewelscan/internal/domain"
	"jewelscan/internal/service"
)

// ScanHandler handles scanner-string parsing, import, review and export endpoints.
type ScanHandler struct {
	errorHandler
	scanService service.ScanService
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService, log *zap.Logger) *ScanHandler {
	return &ScanHandler{errorHandler: errorHandler{log: log}, scanService: scanService}
}

// Parse handles POST /api/v1/scans/parse
// @Summary Parse one scanner string
// @Description Decompose a scanned token into code, weights and piece count. Parse failures are reported in the item status, not as HTTP errors.
// @Tags scans
// @Accept json
// @Produce json
// @Param body body ParseRequest true "Scanner string"
// @Success 200 {object} Response{data=domain.ParsedItem}
// @Failure 400 {object} ErrorResponseBody "Malformed body"
// @Router /scans/parse [post]
func (h *ScanHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	RespondOK(c, h.scanService.Parse(req.Raw))
}

// ParseBatch handles POST /api/v1/scans/parse-batch
// @Summary Parse a batch of scanner strings
// @Tags scans
// @Accept json
// @Produce json
// @Param body body ParseBatchRequest true "Scanner strings"
// @Success 200 {object} Response{data=ParseBatchResponse}
// @Failure 400 {object} ErrorResponseBody "Malformed body or empty batch"
// @Failure 413 {object} ErrorResponseBody "Batch too large"
// @Router /scans/parse-batch [post]
func (h *ScanHandler) ParseBatch(c *gin.Context) {
	var req ParseBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	items, err := h.scanService.ParseBatch(c.Request.Context(), req.Raws)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, ParseBatchResponse{Items: items, Summary: domain.Summarize(items)})
}

// Import handles POST /api/v1/scans/import
// @Summary Import a spreadsheet of scanner strings
// @Description The first non-empty cell of every row of the first sheet is parsed.
// @Tags scans
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet (xlsx or csv)"
// @Success 200 {object} Response{data=service.ImportResult}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File or batch too large"
// @Failure 422 {object} ErrorResponseBody "No scanner data in file"
// @Router /scans/import [post]
func (h *ScanHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.scanService.Import(c.Request.Context(), service.ImportInput{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Revalidate handles POST /api/v1/scans/revalidate
// @Summary Revalidate a hand-edited item
// @Tags scans
// @Accept json
// @Produce json
// @Description Returns the reclassified item and a valid/unsure/invalid status with messages for every field.
// @Param body body domain.ItemEdit true "Edited values"
// @Success 200 {object} Response{data=service.RevalidateResult}
// @Failure 400 {object} ErrorResponseBody "Malformed body"
// @Router /scans/revalidate [post]
func (h *ScanHandler) Revalidate(c *gin.Context) {
	var edit domain.ItemEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	RespondOK(c, h.scanService.Revalidate(edit))
}

// Export handles POST /api/v1/scans/export
// @Summary Download parse results as CSV
// @Tags scans
// @Accept json
// @Produce text/csv
// @Param body body ExportScansRequest true "Parse results"
// @Success 200 {file} file "CSV file download"
// @Failure 400 {object} ErrorResponseBody "Malformed body"
// @Router /scans/export [post]
func (h *ScanHandler) Export(c *gin.Context) {
	var req ExportScansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	name := req.Name
	if name == "" {
		name = "scan_results"
	}

	startCSV(c, name)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteScanHeader(); err != nil {
		h.log.Error("scan export header", zap.Error(err))
		return
	}
	if err := w.WriteParsedItems(req.Items); err != nil {
		h.log.Error("scan export rows", zap.Error(err))
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Error("scan export flush", zap.Error(err))
	}
}

// startCSV writes the download headers and the UTF-8 BOM.
func startCSV(c *gin.Context, name string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(name)))
	c.Status(http.StatusOK)
	_, _ = c.Writer.Write(csvexport.BOM)
}
