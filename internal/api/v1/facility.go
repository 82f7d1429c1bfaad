package v1

import (
	"net/http"
	"strconv"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api/dto"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

type FacilityHandler struct {
	service service.FacilityService
	logger  *logger.Logger
}

func NewFacilityHandler(service service.FacilityService, logger *logger.Logger) *FacilityHandler {
	return &FacilityHandler{
		service: service,
		logger:  logger,
	}
}

func (h *FacilityHandler) GetFacility(c *gin.Context) {
	resp, err := h.service.GetFacility(c.Request.Context(), c.Param("facility_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FacilityHandler) UpsertMonthlyOverride(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		return
	}

	var req dto.UpsertMonthlyOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpsertMonthlyOverride(c.Request.Context(), c.Param("facility_id"), year, month, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FacilityHandler) DeleteMonthlyOverride(c *gin.Context) {
	year, month, ok := monthParams(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMonthlyOverride(c.Request.Context(), c.Param("facility_id"), year, month); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *FacilityHandler) CreateSeasonalRule(c *gin.Context) {
	var req dto.CreateSeasonalRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSeasonalRule(c.Request.Context(), c.Param("facility_id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// monthParams reads the :year and :month path segments
func monthParams(c *gin.Context) (int, int, bool) {
	year, yearErr := strconv.Atoi(c.Param("year"))
	month, monthErr := strconv.Atoi(c.Param("month"))
	if yearErr != nil || monthErr != nil {
		c.Error(ierr.NewError("invalid month path").
			WithHint("Year and month must be numbers").
			WithReportableDetails(map[string]any{
				"year":  c.Param("year"),
				"month": c.Param("month"),
			}).
			Mark(ierr.ErrValidation))
		return 0, 0, false
	}
	return year, month, true
}
