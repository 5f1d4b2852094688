package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rentals-backend/internal/http/dto"
	"github.com/yungbote/rentals-backend/internal/http/response"
	"github.com/yungbote/rentals-backend/internal/platform/ctxutil"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
	"github.com/yungbote/rentals-backend/internal/services"
)

type ListingHandler struct {
	log      *logger.Logger
	listings services.ListingService
	pages    Pagination
}

func NewListingHandler(log *logger.Logger, listings services.ListingService, pages Pagination) *ListingHandler {
	return &ListingHandler{log: log.With("handler", "ListingHandler"), listings: listings, pages: pages}
}

// GET /api/listings/
func (h *ListingHandler) List(c *gin.Context) {
	f, err := parseListingFilter(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	pr, err := h.pages.parse(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rows, total, err := h.listings.List(c.Request.Context(), f, pr.Page)
	if err == nil {
		err = pr.check(total)
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.NewPage(c, total, pr.Number, pr.Size, dto.Listings(rows)))
}

// POST /api/listings/
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.ListingRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := req.Validate(true); err != nil {
		response.RespondAppError(c, err)
		return
	}
	l, err := h.listings.Create(c.Request.Context(), ctxutil.Identity(c.Request.Context()), req.Fields())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, dto.Listing(l))
}

// GET /api/listings/:id/
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	l, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, dto.Listing(l))
}

// PUT|PATCH /api/listings/:id/
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var req dto.ListingRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := req.Validate(c.Request.Method == http.MethodPut); err != nil {
		response.RespondAppError(c, err)
		return
	}
	l, err := h.listings.Update(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id, req.Fields())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, dto.Listing(l))
}

// DELETE /api/listings/:id/
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := h.listings.Delete(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/listings/:id/bookings/
func (h *ListingHandler) Bookings(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	pr, err := h.pages.parse(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rows, total, err := h.listings.ListBookings(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id, pr.Page)
	if err == nil {
		err = pr.check(total)
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.NewPage(c, total, pr.Number, pr.Size, dto.Bookings(rows)))
}

// GET /api/listings/:id/reviews/
func (h *ListingHandler) Reviews(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	pr, err := h.pages.parse(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rows, total, err := h.listings.ListReviews(c.Request.Context(), id, pr.Page)
	if err == nil {
		err = pr.check(total)
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.NewPage(c, total, pr.Number, pr.Size, dto.Reviews(rows)))
}
