package stripewebhook

import (
	"context"
	"errors"
	"fmt"

	billingapi "coursemarket-app/internal/api/billing"
	outboxdomain "coursemarket-app/internal/domain/outbox"

	"github.com/stripe/stripe-go/v75"
)

// handleChargeSucceeded enriches the payment row with card metadata and
// queues a receipt email. The receipt is best effort: a lost email is never
// worth failing the webhook over.
func (h *Handler) handleChargeSucceeded(ctx context.Context, charge *stripe.Charge) error {
	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		fmt.Println("ℹ️ charge without payment intent, skipping")
		return nil
	}

	payment, err := h.payments.FindByIntentID(ctx, charge.PaymentIntent.ID)
	if err != nil {
		if errors.Is(err, billingapi.ErrNotFound) {
			// Charge arrived before checkout.session.completed; the
			// session handler will write the full row.
			fmt.Println("ℹ️ charge for unknown payment intent:", charge.PaymentIntent.ID)
			return nil
		}
		return fmt.Errorf("failed to load payment: %w", err)
	}

	if charge.PaymentMethodDetails != nil && charge.PaymentMethodDetails.Card != nil {
		payment.CardBrand = stripe.String(string(charge.PaymentMethodDetails.Card.Brand))
		payment.CardLast4 = stripe.String(charge.PaymentMethodDetails.Card.Last4)
	}
	if charge.ReceiptURL != "" {
		payment.ReceiptURL = stripe.String(charge.ReceiptURL)
	}
	if err := h.payments.Save(ctx, payment); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	h.sendReceipt(ctx, payment.UserID, charge)
	return nil
}

func (h *Handler) sendReceipt(ctx context.Context, userID uint, charge *stripe.Charge) {
	recipient := ""
	if charge.BillingDetails != nil {
		recipient = charge.BillingDetails.Email
	}
	if recipient == "" {
		user, err := h.users.GetUser(ctx, userID)
		if err != nil {
			fmt.Println("⚠️ receipt email skipped, user lookup failed:", err)
			return
		}
		recipient = user.Email
	}

	body := fmt.Sprintf(
		"<p>Thank you for your purchase.</p><p>Amount: %.2f %s</p>",
		float64(charge.Amount)/100, charge.Currency,
	)
	if charge.ReceiptURL != "" {
		body += fmt.Sprintf(`<p><a href="%s">View your receipt</a></p>`, charge.ReceiptURL)
	}

	msg := &outboxdomain.EmailMessage{
		Recipient: recipient,
		Subject:   "Your payment receipt",
		Body:      body,
	}
	if err := h.mail.EnqueueEmail(ctx, msg); err != nil {
		fmt.Println("⚠️ failed to enqueue receipt email:", err)
		return
	}
	if h.notifyMail != nil {
		h.notifyMail()
	}
}
