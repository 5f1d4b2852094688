package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/http/dto"
	"github.com/yungbote/rentals-backend/internal/http/response"
	"github.com/yungbote/rentals-backend/internal/platform/ctxutil"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
	"github.com/yungbote/rentals-backend/internal/services"
)

type BookingHandler struct {
	log      *logger.Logger
	bookings services.BookingService
	pages    Pagination
}

func NewBookingHandler(log *logger.Logger, bookings services.BookingService, pages Pagination) *BookingHandler {
	return &BookingHandler{log: log.With("handler", "BookingHandler"), bookings: bookings, pages: pages}
}

// GET /api/bookings/
func (h *BookingHandler) List(c *gin.Context) {
	f, err := parseBookingFilter(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	pr, err := h.pages.parse(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rows, total, err := h.bookings.List(c.Request.Context(), ctxutil.Identity(c.Request.Context()), f, pr.Page)
	if err == nil {
		err = pr.check(total)
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.NewPage(c, total, pr.Number, pr.Size, dto.Bookings(rows)))
}

// POST /api/bookings/
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.BookingRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := req.Validate(true); err != nil {
		response.RespondAppError(c, err)
		return
	}
	b, err := h.bookings.Create(c.Request.Context(), ctxutil.Identity(c.Request.Context()), req.Fields())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, dto.Booking(b))
}

// GET /api/bookings/:id/
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	b, err := h.bookings.Get(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, dto.Booking(b))
}

// PUT|PATCH /api/bookings/:id/
func (h *BookingHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var req dto.BookingRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := req.Validate(c.Request.Method == http.MethodPut); err != nil {
		response.RespondAppError(c, err)
		return
	}
	b, err := h.bookings.Update(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id, req.Fields())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, dto.Booking(b))
}

// DELETE /api/bookings/:id/
func (h *BookingHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := h.bookings.Delete(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// PATCH /api/bookings/:id/confirm/
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookings.Confirm)
}

// PATCH /api/bookings/:id/cancel/
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.bookings.Cancel)
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Booking, error)) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	b, err := fn(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, dto.Booking(b))
}
