package middleware

import (
	"strings"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/gin-gonic/gin"
)

// CompanyContextMiddleware scopes the request to the company named by the
// X-Company-ID header. Authentication happens upstream.
func CompanyContextMiddleware(c *gin.Context) {
	companyID := strings.TrimSpace(c.GetHeader(types.HeaderCompanyID))
	if companyID == "" {
		c.Error(ierr.NewError("missing company header").
			WithHintf("%s header is required", types.HeaderCompanyID).
			Mark(ierr.ErrValidation))
		c.Abort()
		return
	}

	userID := strings.TrimSpace(c.GetHeader(types.HeaderUserID))
	if userID == "" {
		userID = types.DefaultUserID
	}

	ctx := types.SetCompanyID(c.Request.Context(), companyID)
	ctx = types.SetUserID(ctx, userID)
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}
