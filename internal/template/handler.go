package template

import (
	"errors"
	"net/http"
	"strconv"

	"thryve/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateTemplate godoc
// @Summary      Create class template
// @Description  Validates and persists a recurring class definition. Staff only.
// @Tags         templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        template  body      CreateTemplateRequest  true  "Template definition"
// @Success      201       {object}  ClassTemplate
// @Failure      400       {object}  ValidationResult
// @Failure      500       {object}  api.ErrorResponse
// @Router       /admin/templates [post]
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	created, result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidationFailed) {
			c.JSON(http.StatusBadRequest, result)
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create template"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"template": created,
		"warnings": result.Warnings,
	})
}

// ValidateTemplate godoc
// @Summary      Validate class template
// @Description  Dry-run validation of a template definition without persisting it.
// @Tags         templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        template  body      CreateTemplateRequest  true  "Template definition"
// @Success      200       {object}  ValidationResult
// @Failure      400       {object}  api.ErrorResponse
// @Router       /admin/templates/validate [post]
func (h *Handler) ValidateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to validate template"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListTemplates godoc
// @Summary      List class templates
// @Tags         templates
// @Security     BearerAuth
// @Produce      json
// @Param        studio_id  query     int  false  "Filter by studio"
// @Success      200        {array}   ClassTemplate
// @Failure      500        {object}  api.ErrorResponse
// @Router       /templates [get]
func (h *Handler) ListTemplates(c *gin.Context) {
	studioID, _ := strconv.Atoi(c.Query("studio_id"))

	templates, err := h.service.List(c.Request.Context(), studioID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch templates"})
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary      Get class template
// @Tags         templates
// @Security     BearerAuth
// @Produce      json
// @Param        templateID  path      int  true  "Template ID"
// @Success      200         {object}  ClassTemplate
// @Failure      404         {object}  api.ErrorResponse
// @Router       /templates/{templateID} [get]
func (h *Handler) GetTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid template ID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "template not found"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// UpdateTemplate godoc
// @Summary      Update class template
// @Description  Edits affect future, not-yet-generated instances only. Staff only.
// @Tags         templates
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        templateID  path      int                    true  "Template ID"
// @Param        template    body      UpdateTemplateRequest  true  "Fields to update"
// @Success      200         {object}  ClassTemplate
// @Failure      400         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /admin/templates/{templateID} [patch]
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid template ID"})
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "template not found"})
		case errors.Is(err, ErrValidationFailed):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid field values"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update template"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTemplate godoc
// @Summary      Delete class template
// @Description  Refused while future instances exist unless cascade=true, which cancels them. Staff only.
// @Tags         templates
// @Security     BearerAuth
// @Produce      json
// @Param        templateID  path      int     true   "Template ID"
// @Param        cascade     query     bool    false  "Cancel future instances"
// @Success      200         {object}  api.MessageResponse
// @Failure      404         {object}  api.ErrorResponse
// @Failure      409         {object}  api.ErrorResponse
// @Router       /admin/templates/{templateID} [delete]
func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid template ID"})
		return
	}

	cascade := c.Query("cascade") == "true"

	if err := h.service.Delete(c.Request.Context(), id, cascade); err != nil {
		switch {
		case errors.Is(err, ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "template not found"})
		case errors.Is(err, ErrHasFutureInstances):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "template has future scheduled instances, pass cascade=true to cancel them"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete template"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Template deleted"})
}
