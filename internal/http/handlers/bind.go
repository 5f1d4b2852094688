package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
)

// bindJSON decodes the body into dst. Decoding failures are validation
// errors so they surface as 400 with a readable message.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errs.Validation("request.decode", errs.NonFieldErrors, "JSON parse error - "+err.Error())
	}
	return nil
}
