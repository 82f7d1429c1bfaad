package v1

import (
	"fmt"
	"net/http"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api/dto"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/export"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/service"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/gin-gonic/gin"
)

type BillingPreviewHandler struct {
	service service.BillingPreviewService
	logger  *logger.Logger
}

func NewBillingPreviewHandler(service service.BillingPreviewService, logger *logger.Logger) *BillingPreviewHandler {
	return &BillingPreviewHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BillingPreviewHandler) bindRequest(c *gin.Context) (*dto.BillingPreviewRequest, bool) {
	var req dto.BillingPreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Year and month must be numbers").
			Mark(ierr.ErrValidation))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return nil, false
	}
	return &req, true
}

// GetBillingPreview returns the computed bill of a client for one month
func (h *BillingPreviewHandler) GetBillingPreview(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.ComputePreview(ctx, c.Param("client_id"), types.GetCompanyID(ctx), req.Year, req.Month)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportCSV downloads the preview as a generic CSV
func (h *BillingPreviewHandler) ExportCSV(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	file, err := h.service.ExportCSV(ctx, c.Param("client_id"), types.GetCompanyID(ctx), req.Year, req.Month)
	if err != nil {
		c.Error(err)
		return
	}

	writeFile(c, file)
}

// ExportQuickBooksCSV downloads the preview as a QuickBooks invoice import
func (h *BillingPreviewHandler) ExportQuickBooksCSV(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	file, err := h.service.ExportQuickBooksCSV(ctx, c.Param("client_id"), types.GetCompanyID(ctx), req.Year, req.Month)
	if err != nil {
		c.Error(err)
		return
	}

	writeFile(c, file)
}

func writeFile(c *gin.Context, file *export.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType+"; charset=utf-8", file.Content)
}
