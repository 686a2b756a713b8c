package checkout

import (
	"net/http"
	"strconv"

	"coursemarket-app/internal/apperr"
	cartdomain "coursemarket-app/internal/domain/cart"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateCheckout(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	owner := cartdomain.OwnerFor(c.GetString("role"), userID)

	ck, err := h.svc.Create(c.Request.Context(), owner)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, ck)
}

func (h *Handler) GetCheckout(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout id"})
		return
	}

	ck, svcErr := h.svc.Get(c.Request.Context(), uint(id))
	if svcErr != nil {
		c.JSON(apperr.HTTPStatus(svcErr), gin.H{"error": apperr.Message(svcErr)})
		return
	}
	if ck.OwnerID() != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout not found"})
		return
	}
	c.JSON(http.StatusOK, ck)
}

func (h *Handler) ListCheckouts(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	owner := cartdomain.OwnerFor(c.GetString("role"), userID)

	list, err := h.svc.ListForOwner(c.Request.Context(), owner)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, list)
}
