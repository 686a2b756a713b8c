package admin

import (
	"context"
	"net/http"
	"strconv"

	billingapi "coursemarket-app/internal/api/billing"
	"coursemarket-app/internal/apperr"
	billingdomain "coursemarket-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

type Fulfiller interface {
	MarkPaid(ctx context.Context, checkoutID uint, paymentID string) error
}

type MarkPaidHandler struct {
	payments  billingapi.PaymentsRepository
	fulfiller Fulfiller
}

func NewMarkPaidHandler(payments billingapi.PaymentsRepository, fulfiller Fulfiller) *MarkPaidHandler {
	return &MarkPaidHandler{payments: payments, fulfiller: fulfiller}
}

// MarkPaid settles a checkout manually for cash/offline payments, bypassing
// the Stripe webhook but running the same fulfillment path.
func (h *MarkPaidHandler) MarkPaid(c *gin.Context) {
	checkoutID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout id"})
		return
	}

	var input struct {
		PaymentID string `json:"payment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment_id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.fulfiller.MarkPaid(ctx, uint(checkoutID), input.PaymentID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	payment := &billingdomain.Payment{
		CheckoutID:      uint(checkoutID),
		StripeSessionID: "manual-" + input.PaymentID,
		Status:          billingdomain.StatusCompleted,
	}
	if err := h.payments.UpsertByCheckoutID(ctx, payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout fulfilled but payment record failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "paid"})
}
