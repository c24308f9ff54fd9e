package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yhas1984/contabilidad-personal-docker/internal/apperrors"
	portssvc "github.com/yhas1984/contabilidad-personal-docker/internal/core/ports/services"
	"github.com/yhas1984/contabilidad-personal-docker/internal/dto"
	"github.com/yhas1984/contabilidad-personal-docker/internal/middleware"
)

// companyHandler handles HTTP requests related to the company profile.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{
		companyService: cs,
	}
}

// registerCompanyRoutes registers routes related to the company profile.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	company := rg.Group("/company")
	{
		company.GET("", h.getCompanyInfo)
		company.PUT("", h.updateCompanyInfo)
	}
}

// getCompanyInfo godoc
// @Summary Get the company profile
// @Description Retrieves the company profile used on generated documents. Returns an empty profile when none is configured.
// @Tags company
// @Produce  json
// @Success 200 {object} dto.CompanyResponse
// @Failure 500 {object} ErrorResponse "Failed to retrieve company profile"
// @Security BearerAuth
// @Router /company [get]
func (h *companyHandler) getCompanyInfo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	info, err := h.companyService.GetCompanyInfo(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get company profile from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve company profile"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(info))
}

// updateCompanyInfo godoc
// @Summary Update the company profile
// @Description Replaces the company profile used on generated documents
// @Tags company
// @Accept  json
// @Produce  json
// @Param   company body dto.UpdateCompanyRequest true "Company profile"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to update company profile"
// @Security BearerAuth
// @Router /company [put]
func (h *companyHandler) updateCompanyInfo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCompanyInfo", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	info, err := h.companyService.UpdateCompanyInfo(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update company profile in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update company profile"})
		}
		return
	}

	logger.Info("Company profile updated", slog.String("name", info.Name))
	c.JSON(http.StatusOK, dto.ToCompanyResponse(info))
}
