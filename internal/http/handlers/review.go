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

type ReviewHandler struct {
	log     *logger.Logger
	reviews services.ReviewService
	pages   Pagination
}

func NewReviewHandler(log *logger.Logger, reviews services.ReviewService, pages Pagination) *ReviewHandler {
	return &ReviewHandler{log: log.With("handler", "ReviewHandler"), reviews: reviews, pages: pages}
}

// GET /api/reviews/
func (h *ReviewHandler) List(c *gin.Context) {
	f, err := parseReviewFilter(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	pr, err := h.pages.parse(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rows, total, err := h.reviews.List(c.Request.Context(), ctxutil.Identity(c.Request.Context()), f, pr.Page)
	if err == nil {
		err = pr.check(total)
	}
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, response.NewPage(c, total, pr.Number, pr.Size, dto.Reviews(rows)))
}

// POST /api/reviews/
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := req.Validate(true); err != nil {
		response.RespondAppError(c, err)
		return
	}
	rv, err := h.reviews.Create(c.Request.Context(), ctxutil.Identity(c.Request.Context()), req.Fields())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondCreated(c, dto.Review(rv))
}

// GET /api/reviews/:id/
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	rv, err := h.reviews.Get(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, dto.Review(rv))
}

// PUT|PATCH /api/reviews/:id/
// listing and booking are accepted but ignored after creation.
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	var req dto.ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := req.Validate(c.Request.Method == http.MethodPut); err != nil {
		response.RespondAppError(c, err)
		return
	}
	rv, err := h.reviews.Update(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id, req.Fields())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, dto.Review(rv))
}

// DELETE /api/reviews/:id/
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), ctxutil.Identity(c.Request.Context()), id); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondNoContent(c)
}
