package stripewebhook

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	billingdomain "coursemarket-app/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
)

// handleSessionCompleted upserts the payment (keyed by checkout id so
// redelivery converges on one row) and hands the checkout to fulfillment.
func (h *Handler) handleSessionCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	checkoutID, userID, err := idsFromMetadata(session.Metadata, session.ClientReferenceID)
	if err != nil {
		return err
	}

	paymentID := session.ID
	var intentID *string
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		paymentID = session.PaymentIntent.ID
		intentID = stripe.String(session.PaymentIntent.ID)
	}

	payment := &billingdomain.Payment{
		CheckoutID:            checkoutID,
		UserID:                userID,
		StripeSessionID:       session.ID,
		StripePaymentIntentID: intentID,
		Amount:                float64(session.AmountTotal) / 100,
		Status:                billingdomain.StatusCompleted,
	}
	if err := h.payments.UpsertByCheckoutID(ctx, payment); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	if err := h.fulfiller.MarkPaid(ctx, checkoutID, paymentID); err != nil {
		if alreadyHandled(err) {
			fmt.Printf("ℹ️ checkout %d already paid, redelivered event ignored\n", checkoutID)
			return nil
		}
		return fmt.Errorf("fulfillment failed: %w", err)
	}

	if h.notifyMail != nil {
		h.notifyMail()
	}
	return nil
}

// idsFromMetadata correlates the event back to our checkout: metadata
// preferred, client_reference_id as the owner fallback.
func idsFromMetadata(meta map[string]string, clientRef string) (checkoutID uint, ownerID uint, err error) {
	if meta == nil {
		return 0, 0, errors.New("missing checkout metadata")
	}

	rawCheckout := meta["checkout_id"]
	if rawCheckout == "" {
		return 0, 0, errors.New("missing checkout_id metadata")
	}
	ck64, err := strconv.ParseUint(rawCheckout, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid checkout_id %q: %w", rawCheckout, err)
	}

	rawOwner := meta["owner_id"]
	if rawOwner == "" {
		rawOwner = clientRef
	}
	if rawOwner == "" {
		return 0, 0, errors.New("missing owner_id (metadata.owner_id or client_reference_id)")
	}
	ow64, err := strconv.ParseUint(rawOwner, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid owner_id %q: %w", rawOwner, err)
	}

	return uint(ck64), uint(ow64), nil
}
