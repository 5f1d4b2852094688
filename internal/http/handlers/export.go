package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rentals-backend/internal/http/response"
	"github.com/yungbote/rentals-backend/internal/platform/ctxutil"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
	"github.com/yungbote/rentals-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	log    *logger.Logger
	export services.ExportService
}

func NewExportHandler(log *logger.Logger, export services.ExportService) *ExportHandler {
	return &ExportHandler{log: log.With("handler", "ExportHandler"), export: export}
}

// GET /api/exports/bookings.xlsx
// Accepts the same filters as the bookings list.
func (h *ExportHandler) Bookings(c *gin.Context) {
	f, err := parseBookingFilter(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var buf bytes.Buffer
	n, err := h.export.WriteBookingsXLSX(c.Request.Context(), ctxutil.Identity(c.Request.Context()), f, &buf)
	if err != nil {
		h.log.Warn("bookings export failed", "error", err)
		response.RespondAppError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	c.Header("X-Row-Count", strconv.Itoa(n))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
