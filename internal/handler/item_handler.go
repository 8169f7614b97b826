package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelscan/internal/csvexport"
	"jewelscan/internal/domain"
	"jewelscan/internal/middleware"
	"jewelscan/internal/service"
)

const exportPageSize = 100

// ItemHandler handles ledger endpoints.
type ItemHandler struct {
	errorHandler
	scanService service.ScanService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(scanService service.ScanService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{errorHandler: errorHandler{log: log}, scanService: scanService}
}

// Confirm handles POST /api/v1/items
// @Summary Confirm reviewed items into the ledger
// @Description Every item must be VALID and satisfy GW = SW + NW. The batch is stored atomically.
// @Tags items
// @Accept json
// @Produce json
// @Param body body ConfirmRequest true "Reviewed items"
// @Success 201 {object} Response{data=[]domain.JewelleryItem}
// @Failure 400 {object} ErrorResponseBody "Invalid item type or empty batch"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Duplicate item code"
// @Failure 422 {object} ErrorResponseBody "Item not valid"
// @Security BearerAuth
// @Router /items [post]
func (h *ItemHandler) Confirm(c *gin.Context) {
	operator, err := middleware.GetOperator(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing operator context")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	items, err := h.scanService.Confirm(c.Request.Context(), service.ConfirmInput{
		ItemType: req.ItemType,
		Items:    req.Items,
		Operator: operator,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondCreated(c, items)
}

// List handles GET /api/v1/items
// @Summary List ledger items
// @Tags items
// @Produce json
// @Param item_type query string false "purchase, sale, salesReturn or purchaseReturn"
// @Param code query string false "Code prefix"
// @Param available query bool false "Only unsold items"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.JewelleryItem}
// @Failure 400 {object} ErrorResponseBody "Invalid item type"
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := parseItemFilter(c)

	items, total, err := h.scanService.ListItems(c.Request.Context(), filter, offset, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByCode handles GET /api/v1/items/:code
// @Summary Get a ledger item by code
// @Tags items
// @Produce json
// @Param code path string true "Item code"
// @Success 200 {object} Response{data=domain.JewelleryItem}
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Router /items/{code} [get]
func (h *ItemHandler) GetByCode(c *gin.Context) {
	item, err := h.scanService.GetItem(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, item)
}

// Export handles GET /api/v1/items/export
// @Summary Download ledger items as CSV
// @Tags items
// @Produce text/csv
// @Param item_type query string false "purchase, sale, salesReturn or purchaseReturn"
// @Param code query string false "Code prefix"
// @Param available query bool false "Only unsold items"
// @Success 200 {file} file "CSV file download"
// @Failure 400 {object} ErrorResponseBody "Invalid item type"
// @Router /items/export [get]
func (h *ItemHandler) Export(c *gin.Context) {
	filter := parseItemFilter(c)
	ctx := c.Request.Context()

	// Fetch the first page before writing headers so filter errors still get a JSON response.
	items, total, err := h.scanService.ListItems(ctx, filter, 0, exportPageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	name := "ledger"
	if filter.ItemType != "" {
		name += "_" + string(filter.ItemType)
	}
	startCSV(c, name)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteLedgerHeader(); err != nil {
		h.log.Error("ledger export header", zap.Error(err))
		return
	}

	for offset := 0; ; {
		if err := w.WriteLedgerItems(items); err != nil {
			h.log.Error("ledger export rows", zap.Error(err))
			return
		}
		offset += len(items)
		if len(items) == 0 || offset >= total {
			break
		}
		items, _, err = h.scanService.ListItems(ctx, filter, offset, exportPageSize)
		if err != nil {
			h.log.Error("ledger export page", zap.Int("offset", offset), zap.Error(err))
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Error("ledger export flush", zap.Error(err))
	}
}

func parseItemFilter(c *gin.Context) domain.ItemFilter {
	return domain.ItemFilter{
		ItemType:      domain.ItemType(c.Query("item_type")),
		Code:          c.Query("code"),
		AvailableOnly: c.Query("available") == "true",
	}
}
