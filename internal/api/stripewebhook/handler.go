package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"coursemarket-app/internal/apperr"
	outboxdomain "coursemarket-app/internal/domain/outbox"
	usersdomain "coursemarket-app/internal/domain/users"

	billingapi "coursemarket-app/internal/api/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Fulfiller is the slice of the fulfillment service the webhook needs.
type Fulfiller interface {
	MarkPaid(ctx context.Context, checkoutID uint, paymentID string) error
}

type MailStore interface {
	EnqueueEmail(ctx context.Context, m *outboxdomain.EmailMessage) error
}

type UserStore interface {
	GetUser(ctx context.Context, id uint) (*usersdomain.User, error)
}

type Handler struct {
	secret     string
	payments   billingapi.PaymentsRepository
	users      UserStore
	mail       MailStore
	fulfiller  Fulfiller
	notifyMail func()
}

func NewHandler(secret string, payments billingapi.PaymentsRepository, users UserStore, mail MailStore, fulfiller Fulfiller, notifyMail func()) *Handler {
	return &Handler{
		secret:     secret,
		payments:   payments,
		users:      users,
		mail:       mail,
		fulfiller:  fulfiller,
		notifyMail: notifyMail,
	}
}

// StripeWebhook verifies the payload signature and dispatches payment
// lifecycle events. Signature failures are the only 400; once verification
// passes, business no-ops (redelivery, unknown events) return 200 so Stripe
// does not retry-storm on errors it cannot fix.
func (h *Handler) StripeWebhook(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		fmt.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := h.handleSessionCompleted(c.Request.Context(), &session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return

	case "charge.succeeded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse charge"})
			return
		}
		if err := h.handleChargeSucceeded(c.Request.Context(), &charge); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return

	case "payment_intent.payment_failed", "payment_intent.processing", "payment_intent.amount_capturable_updated":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		if err := h.handleIntentStatus(c.Request.Context(), string(event.Type), &intent); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return

	default:
		// Acknowledge unknown events to avoid retries
		fmt.Println("ℹ️ Ignoring stripe event:", event.Type)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}

// alreadyHandled reports business no-ops: an already-paid checkout means a
// redelivered event, which must succeed without side effects.
func alreadyHandled(err error) bool {
	var e *apperr.Error
	return errors.As(err, &e) && e.Kind == apperr.Conflict
}
