package billing

import (
	"fmt"
	"net/http"
	"strconv"

	"coursemarket-app/config"
	"coursemarket-app/internal/apperr"
	billingdomain "coursemarket-app/internal/domain/billing"
	cartdomain "coursemarket-app/internal/domain/cart"
	checkoutdomain "coursemarket-app/internal/domain/checkout"
	"coursemarket-app/internal/money"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	customer "github.com/stripe/stripe-go/v75/customer"
)

type Handler struct {
	repo     Repository
	payments PaymentsRepository
}

func NewHandler(repo Repository, payments PaymentsRepository) *Handler {
	return &Handler{repo: repo, payments: payments}
}

// BeginPayment opens a hosted Stripe checkout session for a PENDING
// checkout: one aggregate line item (frozen total + shipping, in cents) with
// {owner_id, checkout_id} metadata for webhook correlation. Nothing is
// marked paid here.
func (h *Handler) BeginPayment(c *gin.Context) {
	var body struct {
		ShippingOptionID uint `json:"shipping_option_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	checkoutID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout id"})
		return
	}

	ctx := c.Request.Context()
	ck, crt, err := h.repo.CheckoutWithCart(ctx, uint(checkoutID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout not found"})
		return
	}
	if ck.OwnerID() != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout not found"})
		return
	}
	if ck.Status != checkoutdomain.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Checkout is already paid"})
		return
	}

	shippingCost, err := resolveShippingCost(crt, body.ShippingOptionID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	user, err := h.repo.GetUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	// ensure stripe customer
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		cus, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(user.Email),
			Metadata: map[string]string{
				"user_id": fmt.Sprint(user.ID),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
			return
		}
		if err := h.repo.SaveStripeCustomerID(ctx, user.ID, cus.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe customer"})
			return
		}
		user.StripeCustomerID = stripe.String(cus.ID)
	}

	amount := decimal.NewFromFloat(ck.TotalAmount).Add(shippingCost)
	meta := map[string]string{
		"owner_id":    fmt.Sprint(ck.OwnerID()),
		"checkout_id": fmt.Sprint(ck.ID),
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/orders?paid=1"),
		CancelURL:  stripe.String(config.APP_URL + "/cart?canceled=1"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		Customer:   stripe.String(*user.StripeCustomerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyEUR)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Order #%d", ck.ID)),
					},
					UnitAmount: stripe.Int64(money.Cents(amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(ck.OwnerID())),

		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: meta,
		},
	}
	params.Metadata = meta

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	// Seed the payment row now; the webhook upserts into it later.
	amountFloat, _ := amount.Float64()
	payment := &billingdomain.Payment{
		CheckoutID:      ck.ID,
		UserID:          ck.OwnerID(),
		StripeSessionID: s.ID,
		Amount:          amountFloat,
		Status:          billingdomain.StatusPending,
	}
	if err := h.payments.UpsertByCheckoutID(ctx, payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

// resolveShippingCost finds the selected option among the cart's products.
// Zero means no shipping (digital-only order); an id that doesn't belong to
// any product in the cart is rejected.
func resolveShippingCost(crt *cartdomain.Cart, optionID uint) (decimal.Decimal, error) {
	if optionID == 0 {
		return decimal.Zero, nil
	}
	for _, item := range crt.Items {
		if item.Product == nil {
			continue
		}
		for _, opt := range item.Product.ShippingOptions {
			if opt.ID == optionID {
				return decimal.NewFromFloat(opt.Cost), nil
			}
		}
	}
	return decimal.Zero, apperr.New(apperr.InvalidArgument, "shipping option does not belong to this order")
}
