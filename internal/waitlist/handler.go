package waitlist

import (
	"errors"
	"net/http"

	"thryve/internal/api"
	"thryve/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// JoinWaitlist godoc
// @Summary      Join waitlist
// @Description  Enrolls the user at the back of the class instance's waitlist.
// @Tags         waitlist
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        instanceID  path      string       true  "Class instance ID"
// @Param        prefs       body      JoinRequest  true  "Waitlist preferences"
// @Success      201         {object}  Entry
// @Failure      400         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Failure      409         {object}  api.ErrorResponse
// @Router       /classes/{instanceID}/waitlist [post]
func (h *Handler) JoinWaitlist(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.service.Join(c.Request.Context(), userID, c.Param("instanceID"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "class instance not found"})
		case errors.Is(err, ErrClassNotJoinable):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "class has already started or is cancelled"})
		case errors.Is(err, ErrAlreadyBooked):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "you already have a booking for this class"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to join waitlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// LeaveWaitlist godoc
// @Summary      Leave waitlist
// @Tags         waitlist
// @Security     BearerAuth
// @Produce      json
// @Param        entryID  path      string  true  "Waitlist entry ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /waitlist/{entryID}/cancel [post]
func (h *Handler) LeaveWaitlist(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	err := h.service.Leave(c.Request.Context(), userID, c.Param("entryID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrEntryNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "waitlist entry not found or not active"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "you can only cancel your own waitlist entries"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to leave waitlist"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Waitlist entry cancelled"})
}

// ConfirmPromotion godoc
// @Summary      Confirm a waitlist promotion
// @Description  Converts a promoted entry into a booking before the confirmation window closes.
// @Tags         waitlist
// @Security     BearerAuth
// @Produce      json
// @Param        entryID  path      string  true  "Waitlist entry ID"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  map[string]interface{}
// @Router       /waitlist/{entryID}/confirm [post]
func (h *Handler) ConfirmPromotion(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	booked, rejection, err := h.service.ConfirmPromotion(c.Request.Context(), userID, c.Param("entryID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrEntryNotFound), errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "waitlist entry not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "you can only confirm your own promotions"})
		case errors.Is(err, ErrNotPromoted):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "entry is not awaiting confirmation"})
		case errors.Is(err, ErrPromotionExpired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "confirmation window has passed"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to confirm promotion"})
		}
		return
	}

	if rejection != nil {
		c.JSON(http.StatusConflict, rejection)
		return
	}

	c.JSON(http.StatusCreated, booked)
}

// ListMyWaitlist godoc
// @Summary      List my waitlist entries
// @Tags         waitlist
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Entry
// @Failure      500  {object}  api.ErrorResponse
// @Router       /waitlist [get]
func (h *Handler) ListMyWaitlist(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	entries, err := h.service.GetUserEntries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch waitlist entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ListWaitlistByInstance godoc
// @Summary      List waitlist for a class instance
// @Description  Staff only.
// @Tags         waitlist
// @Security     BearerAuth
// @Produce      json
// @Param        instanceID  path      string  true  "Class instance ID"
// @Success      200         {array}   Entry
// @Failure      500         {object}  api.ErrorResponse
// @Router       /admin/classes/{instanceID}/waitlist [get]
func (h *Handler) ListWaitlistByInstance(c *gin.Context) {
	entries, err := h.service.ListForInstance(c.Request.Context(), c.Param("instanceID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch waitlist"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
