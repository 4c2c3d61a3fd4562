package pack

import (
	"net/http"
	"strconv"

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

// GetBalance godoc
// @Summary      Current user's pack credit balance
// @Tags         packs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Balance
// @Failure      401  {object}  api.ErrorResponse
// @Router       /me/pack [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	b, err := h.service.GetBalance(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load balance"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// TopUp godoc
// @Summary      Add pack credits to the current user's balance
// @Tags         packs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        topup  body      TopUpRequest  true  "Credits to add"
// @Success      200    {object}  Balance
// @Failure      400    {object}  api.ErrorResponse
// @Router       /me/pack/topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.TopUp(c.Request.Context(), userID, req.Credits)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to top up"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// ListTransactions godoc
// @Summary      Current user's pack credit history
// @Tags         packs
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query     int  false  "Max results"   default(50)
// @Param        offset  query     int  false  "Result offset"  default(0)
// @Success      200     {array}   Transaction
// @Failure      401     {object}  api.ErrorResponse
// @Router       /me/pack/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.service.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}
