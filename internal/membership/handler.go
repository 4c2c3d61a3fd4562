package membership

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

// GetMyMembership godoc
// @Summary      Current user's active membership
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Membership
// @Failure      401  {object}  api.ErrorResponse
// @Router       /me/membership [get]
func (h *Handler) GetMyMembership(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	m, err := h.service.GetForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load membership"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// CreateMembership godoc
// @Summary      Create a membership for a user (staff only)
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        membership  body      CreateMembershipRequest  true  "Membership data"
// @Success      201         {object}  Membership
// @Failure      400         {object}  api.ErrorResponse
// @Router       /admin/memberships [post]
func (h *Handler) CreateMembership(c *gin.Context) {
	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid membership type"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create membership"})
		return
	}

	c.JSON(http.StatusCreated, m)
}
