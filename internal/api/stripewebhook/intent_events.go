package stripewebhook

import (
	"context"
	"fmt"

	billingdomain "coursemarket-app/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
)

// handleIntentStatus records payment lifecycle changes. These events update
// the payment row only; fulfillment is triggered solely by
// checkout.session.completed.
func (h *Handler) handleIntentStatus(ctx context.Context, eventType string, intent *stripe.PaymentIntent) error {
	var status string
	switch eventType {
	case "payment_intent.payment_failed":
		status = billingdomain.StatusFailed
	case "payment_intent.processing":
		status = billingdomain.StatusPending
	case "payment_intent.amount_capturable_updated":
		status = billingdomain.StatusRequiresCapture
	default:
		return nil
	}

	if err := h.payments.UpdateStatusByIntentID(ctx, intent.ID, status); err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}
