package class

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"thryve/internal/api"
	"thryve/internal/template"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GenerateInstances godoc
// @Summary      Generate class instances
// @Description  Expands the template into concrete instances over a date window. Idempotent per slot. Staff only.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        templateID  path      int                       true  "Template ID"
// @Param        window      body      GenerateInstancesRequest  true  "Expansion window (dates as YYYY-MM-DD)"
// @Success      201         {object}  map[string]interface{}
// @Failure      400         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /admin/templates/{templateID}/instances [post]
func (h *Handler) GenerateInstances(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid template ID"})
		return
	}

	var req GenerateInstancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid start_date, use YYYY-MM-DD"})
		return
	}

	endDate := startDate
	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid end_date, use YYYY-MM-DD"})
			return
		}
	}

	instances, inserted, err := h.service.GenerateForTemplate(c.Request.Context(), templateID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, template.ErrTemplateNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "template not found"})
		case errors.Is(err, ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "end_date must not be before start_date"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to generate instances"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"instances": instances,
		"inserted":  inserted,
	})
}

// SearchClasses godoc
// @Summary      Search class instances
// @Description  Filters scheduled instances by date range, category, level, instructor, availability, time of day and tags.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        from            query     string  false  "Window start (RFC3339)"
// @Param        to              query     string  false  "Window end (RFC3339)"
// @Param        category        query     string  false  "Exact category"
// @Param        level           query     string  false  "Exact level"
// @Param        instructor_id   query     int     false  "Instructor ID"
// @Param        available_only  query     bool    false  "Only classes with open spots"
// @Param        time_of_day     query     string  false  "morning, afternoon or evening"
// @Param        tags            query     []string false "Any-match tags"
// @Param        sort_by         query     string  false  "date, popularity, availability or price"
// @Success      200             {array}   InstanceWithAvailability
// @Failure      400             {object}  api.ErrorResponse
// @Router       /classes [get]
func (h *Handler) SearchClasses(c *gin.Context) {
	var f Filters

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid from, use RFC3339"})
			return
		}
		f.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid to, use RFC3339"})
			return
		}
		f.To = &to
	}

	f.Category = c.Query("category")
	f.Level = c.Query("level")

	if idStr := c.Query("instructor_id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid instructor_id"})
			return
		}
		f.InstructorID = &id
	}

	f.AvailableOnly = c.Query("available_only") == "true"
	f.TimeOfDay = TimeOfDay(c.Query("time_of_day"))
	f.Tags = c.QueryArray("tags")
	f.SortBy = SortKey(c.DefaultQuery("sort_by", string(SortByDate)))

	classes, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to search classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// GetClass godoc
// @Summary      Get class instance
// @Description  Returns one instance with live availability.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        instanceID  path      string  true  "Instance ID"
// @Success      200         {object}  InstanceWithAvailability
// @Failure      404         {object}  api.ErrorResponse
// @Router       /classes/{instanceID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	inst, err := h.service.GetByID(c.Request.Context(), c.Param("instanceID"))
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "class instance not found"})
		return
	}

	c.JSON(http.StatusOK, inst)
}

// CancelClass godoc
// @Summary      Cancel class instance
// @Description  Cancels the instance, its confirmed bookings and its waitlist. Staff only.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        instanceID  path      string  true  "Instance ID"
// @Success      200         {object}  CancelResult
// @Failure      404         {object}  api.ErrorResponse
// @Router       /admin/classes/{instanceID}/cancel [post]
func (h *Handler) CancelClass(c *gin.Context) {
	result, err := h.service.Cancel(c.Request.Context(), c.Param("instanceID"))
	if err != nil {
		if errors.Is(err, ErrInstanceNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "class instance not found or already cancelled"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to cancel class"})
		return
	}

	c.JSON(http.StatusOK, result)
}
