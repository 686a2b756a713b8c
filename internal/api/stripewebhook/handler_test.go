package stripewebhook

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	billingapi "coursemarket-app/internal/api/billing"
	"coursemarket-app/internal/apperr"
	billingdomain "coursemarket-app/internal/domain/billing"
	outboxdomain "coursemarket-app/internal/domain/outbox"
	usersdomain "coursemarket-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75/webhook"
)

const testSecret = "whsec_test"

type mockPayments struct {
	upserted      []*billingdomain.Payment
	byIntent      map[string]*billingdomain.Payment
	saved         []*billingdomain.Payment
	statusUpdates map[string]string
}

func newMockPayments() *mockPayments {
	return &mockPayments{
		byIntent:      map[string]*billingdomain.Payment{},
		statusUpdates: map[string]string{},
	}
}

func (m *mockPayments) UpsertByCheckoutID(_ context.Context, p *billingdomain.Payment) error {
	m.upserted = append(m.upserted, p)
	return nil
}

func (m *mockPayments) FindByIntentID(_ context.Context, intentID string) (*billingdomain.Payment, error) {
	p, ok := m.byIntent[intentID]
	if !ok {
		return nil, billingapi.ErrNotFound
	}
	return p, nil
}

func (m *mockPayments) UpdateStatusByIntentID(_ context.Context, intentID, status string) error {
	m.statusUpdates[intentID] = status
	return nil
}

func (m *mockPayments) Save(_ context.Context, p *billingdomain.Payment) error {
	m.saved = append(m.saved, p)
	return nil
}

func (m *mockPayments) ListByUser(_ context.Context, userID uint) ([]billingdomain.Payment, error) {
	return nil, nil
}

type mockUsers struct {
	users map[uint]*usersdomain.User
}

func (m *mockUsers) GetUser(_ context.Context, id uint) (*usersdomain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, billingapi.ErrNotFound
	}
	return u, nil
}

type mockMail struct {
	enqueued []*outboxdomain.EmailMessage
}

func (m *mockMail) EnqueueEmail(_ context.Context, msg *outboxdomain.EmailMessage) error {
	m.enqueued = append(m.enqueued, msg)
	return nil
}

type markPaidCall struct {
	checkoutID uint
	paymentID  string
}

type mockFulfiller struct {
	calls []markPaidCall
	err   error
}

func (m *mockFulfiller) MarkPaid(_ context.Context, checkoutID uint, paymentID string) error {
	m.calls = append(m.calls, markPaidCall{checkoutID, paymentID})
	return m.err
}

type fixture struct {
	handler   *Handler
	payments  *mockPayments
	users     *mockUsers
	mail      *mockMail
	fulfiller *mockFulfiller
	notified  int
}

func newFixture() *fixture {
	f := &fixture{
		payments:  newMockPayments(),
		users:     &mockUsers{users: map[uint]*usersdomain.User{}},
		mail:      &mockMail{},
		fulfiller: &mockFulfiller{},
	}
	f.handler = NewHandler(testSecret, f.payments, f.users, f.mail, f.fulfiller, func() { f.notified++ })
	return f
}

func sign(payload []byte, secret string) string {
	ts := time.Now()
	mac := webhook.ComputeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac))
}

func deliver(t *testing.T, h *Handler, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewReader(payload))
	c.Request.Header.Set("Stripe-Signature", signature)
	h.StripeWebhook(c)
	return w
}

func eventPayload(eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":%s}}`, eventType, object))
}

const completedSession = `{
	"id": "cs_test_1",
	"object": "checkout.session",
	"amount_total": 9000,
	"client_reference_id": "7",
	"metadata": {"checkout_id": "42", "owner_id": "7"},
	"payment_intent": "pi_123"
}`

func TestWebhookRejectsBadSignature(t *testing.T) {
	f := newFixture()
	payload := eventPayload("checkout.session.completed", completedSession)

	w := deliver(t, f.handler, payload, "t=1,v1=deadbeef")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.payments.upserted)
	assert.Empty(t, f.fulfiller.calls)
}

func TestWebhookAcknowledgesUnknownEvents(t *testing.T) {
	f := newFixture()
	payload := eventPayload("invoice.created", `{"id":"in_1"}`)

	w := deliver(t, f.handler, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.payments.upserted)
	assert.Empty(t, f.fulfiller.calls)
	assert.Empty(t, f.mail.enqueued)
}

func TestWebhookSessionCompleted(t *testing.T) {
	f := newFixture()
	payload := eventPayload("checkout.session.completed", completedSession)

	w := deliver(t, f.handler, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, f.payments.upserted, 1)
	p := f.payments.upserted[0]
	assert.Equal(t, uint(42), p.CheckoutID)
	assert.Equal(t, uint(7), p.UserID)
	assert.Equal(t, "cs_test_1", p.StripeSessionID)
	require.NotNil(t, p.StripePaymentIntentID)
	assert.Equal(t, "pi_123", *p.StripePaymentIntentID)
	assert.InDelta(t, 90.0, p.Amount, 0.001)
	assert.Equal(t, billingdomain.StatusCompleted, p.Status)

	require.Len(t, f.fulfiller.calls, 1)
	assert.Equal(t, markPaidCall{checkoutID: 42, paymentID: "pi_123"}, f.fulfiller.calls[0])
	assert.Equal(t, 1, f.notified)
}

func TestWebhookRedeliveryIsNoOp(t *testing.T) {
	f := newFixture()
	f.fulfiller.err = apperr.New(apperr.Conflict, "checkout is already paid")
	payload := eventPayload("checkout.session.completed", completedSession)

	w := deliver(t, f.handler, payload, sign(payload, testSecret))

	// already-paid is a redelivery, never an error to Stripe
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, f.notified)
}

func TestWebhookSessionWithoutMetadataFails(t *testing.T) {
	f := newFixture()
	payload := eventPayload("checkout.session.completed", `{"id":"cs_test_2","amount_total":100}`)

	w := deliver(t, f.handler, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, f.fulfiller.calls)
}

func TestWebhookIntentFailedUpdatesStatus(t *testing.T) {
	f := newFixture()
	payload := eventPayload("payment_intent.payment_failed", `{"id":"pi_123","object":"payment_intent"}`)

	w := deliver(t, f.handler, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, billingdomain.StatusFailed, f.payments.statusUpdates["pi_123"])
	assert.Empty(t, f.fulfiller.calls, "only checkout.session.completed triggers fulfillment")
}

func TestWebhookChargeBeforeSessionIsTolerated(t *testing.T) {
	f := newFixture()
	payload := eventPayload("charge.succeeded", `{"id":"ch_1","object":"charge","payment_intent":"pi_unknown"}`)

	w := deliver(t, f.handler, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.payments.saved)
	assert.Empty(t, f.mail.enqueued)
}

func TestWebhookChargeSucceededEnrichesPayment(t *testing.T) {
	f := newFixture()
	f.payments.byIntent["pi_123"] = &billingdomain.Payment{
		ID:         1,
		CheckoutID: 42,
		UserID:     7,
		Status:     billingdomain.StatusCompleted,
	}
	f.users.users[7] = &usersdomain.User{ID: 7, Email: "buyer@example.com"}

	payload := eventPayload("charge.succeeded", `{
		"id": "ch_1",
		"object": "charge",
		"amount": 9000,
		"currency": "eur",
		"payment_intent": "pi_123",
		"receipt_url": "https://stripe.test/receipt/1",
		"payment_method_details": {"card": {"brand": "visa", "last4": "4242"}}
	}`)

	w := deliver(t, f.handler, payload, sign(payload, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.payments.saved, 1)
	p := f.payments.saved[0]
	require.NotNil(t, p.CardBrand)
	assert.Equal(t, "visa", *p.CardBrand)
	require.NotNil(t, p.CardLast4)
	assert.Equal(t, "4242", *p.CardLast4)
	require.NotNil(t, p.ReceiptURL)

	require.Len(t, f.mail.enqueued, 1)
	assert.Equal(t, "buyer@example.com", f.mail.enqueued[0].Recipient)
	assert.Contains(t, f.mail.enqueued[0].Body, "90.00")
	assert.Equal(t, 1, f.notified)
}
