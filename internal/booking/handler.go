package booking

import (
	"errors"
	"net/http"
	"time"

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

func rejectionStatus(r *Rejection) int {
	switch r.Reason {
	case ReasonClassFull, ReasonAlreadyBooked:
		return http.StatusConflict
	case ReasonMemberPlusRequired:
		return http.StatusForbidden
	case ReasonNoPackCredits:
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}

// BookClass godoc
// @Summary      Book a class
// @Description  Reserves one seat in the class instance. A CLASS_FULL rejection carries a waitlist suggestion.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        instanceID  path      string  true  "Class instance ID"
// @Success      201         {object}  Booking
// @Failure      400         {object}  Rejection
// @Failure      402         {object}  Rejection
// @Failure      403         {object}  Rejection
// @Failure      404         {object}  api.ErrorResponse
// @Failure      409         {object}  Rejection
// @Router       /classes/{instanceID}/book [post]
func (h *Handler) BookClass(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	booking, rejection, err := h.service.Create(c.Request.Context(), userID, c.Param("instanceID"))
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "class instance not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create booking"})
		return
	}

	if rejection != nil {
		c.JSON(rejectionStatus(rejection), rejection)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels the user's booking, frees the seat and promotes the waitlist.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	err := h.service.Cancel(c.Request.Context(), userID, c.Param("bookingID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "booking not found or already cancelled"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "you can only cancel your own bookings"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithClass
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListBookingsByInstance godoc
// @Summary      List bookings for a class instance
// @Description  Staff only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        instanceID  path      string  true  "Class instance ID"
// @Success      200         {array}   BookingWithClass
// @Failure      500         {object}  api.ErrorResponse
// @Router       /admin/classes/{instanceID}/bookings [get]
func (h *Handler) ListBookingsByInstance(c *gin.Context) {
	bookings, err := h.service.GetByInstance(c.Request.Context(), c.Param("instanceID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBookingAnalytics godoc
// @Summary      Booking analytics
// @Description  Aggregated confirmed-booking counts grouped by day or class. Staff only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        group_by  query     string  false  "Group by dimension (day or class)"
// @Param        from      query     string  true   "Start datetime (RFC3339)"
// @Param        to        query     string  true   "End datetime (RFC3339)"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  api.ErrorResponse
// @Router       /admin/analytics/bookings [get]
func (h *Handler) GetBookingAnalytics(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "day")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "from and to query params are required"})
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid from format, use RFC3339"})
		return
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid to format, use RFC3339"})
		return
	}

	switch groupBy {
	case "day":
		stats, err := h.service.GetStatsByDay(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "day", "from": from, "to": to, "data": stats})
	case "class":
		stats, err := h.service.GetStatsByClass(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "class", "from": from, "to": to, "data": stats})
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "group_by must be 'day' or 'class'"})
	}
}
