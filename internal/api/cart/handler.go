package cart

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

func ownerFromClaims(c *gin.Context) (cartdomain.Owner, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return cartdomain.Owner{}, false
	}
	return cartdomain.OwnerFor(c.GetString("role"), userID), true
}

func (h *Handler) GetCart(c *gin.Context) {
	owner, ok := ownerFromClaims(c)
	if !ok {
		return
	}

	crt, err := h.svc.GetOrCreate(c.Request.Context(), owner)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, crt)
}

func (h *Handler) AddItem(c *gin.Context) {
	owner, ok := ownerFromClaims(c)
	if !ok {
		return
	}

	var input struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid product_id"})
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), owner, input.ProductID, input.Quantity)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	owner, ok := ownerFromClaims(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.svc.RemoveItem(c.Request.Context(), owner, uint(productID)); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
