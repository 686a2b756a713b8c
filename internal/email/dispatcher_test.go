package email

import (
	"context"
	"errors"
	"testing"
	"time"

	outboxdomain "coursemarket-app/internal/domain/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	pending         []outboxdomain.EmailMessage
	sent            []uint
	failed          []uint
	credentialsSent []uint
}

func (m *mockStore) PendingEmails(_ context.Context, limit int) ([]outboxdomain.EmailMessage, error) {
	if len(m.pending) > limit {
		return m.pending[:limit], nil
	}
	return m.pending, nil
}

func (m *mockStore) MarkSent(_ context.Context, id uint, _ time.Time) error {
	m.sent = append(m.sent, id)
	return nil
}

func (m *mockStore) MarkFailed(_ context.Context, id uint) error {
	m.failed = append(m.failed, id)
	return nil
}

func (m *mockStore) MarkCredentialSent(_ context.Context, credentialID uint, _ time.Time) error {
	m.credentialsSent = append(m.credentialsSent, credentialID)
	return nil
}

type sentMail struct {
	subject   string
	recipient string
}

type mockSender struct {
	sent    []sentMail
	failFor map[string]bool
}

func (m *mockSender) Send(subject, recipient, html string) error {
	if m.failFor[recipient] {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, sentMail{subject, recipient})
	return nil
}

func credID(v uint) *uint { return &v }

func TestDrainDeliversPending(t *testing.T) {
	store := &mockStore{pending: []outboxdomain.EmailMessage{
		{ID: 1, Recipient: "a@example.com", Subject: "Welcome"},
		{ID: 2, Recipient: "b@example.com", Subject: "Your payment receipt"},
	}}
	sender := &mockSender{}
	d := NewDispatcher(store, sender, time.Minute)

	d.Drain(context.Background())

	require.Len(t, sender.sent, 2)
	assert.Equal(t, []uint{1, 2}, store.sent)
	assert.Empty(t, store.failed)
	assert.Empty(t, store.credentialsSent)
}

func TestDrainOneFailureDoesNotBlockTheRest(t *testing.T) {
	store := &mockStore{pending: []outboxdomain.EmailMessage{
		{ID: 1, Recipient: "bad@example.com"},
		{ID: 2, Recipient: "good@example.com"},
	}}
	sender := &mockSender{failFor: map[string]bool{"bad@example.com": true}}
	d := NewDispatcher(store, sender, time.Minute)

	d.Drain(context.Background())

	assert.Equal(t, []uint{1}, store.failed)
	assert.Equal(t, []uint{2}, store.sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "good@example.com", sender.sent[0].recipient)
}

func TestDrainFlagsCredentialDelivery(t *testing.T) {
	store := &mockStore{pending: []outboxdomain.EmailMessage{
		{ID: 1, Recipient: "acme@co.com", Subject: "Your employee access credentials", CredentialID: credID(9)},
		{ID: 2, Recipient: "buyer@example.com", Subject: "Your payment receipt"},
	}}
	sender := &mockSender{}
	d := NewDispatcher(store, sender, time.Minute)

	d.Drain(context.Background())

	assert.Equal(t, []uint{1, 2}, store.sent)
	assert.Equal(t, []uint{9}, store.credentialsSent)
}

func TestNotifyCoalesces(t *testing.T) {
	d := NewDispatcher(&mockStore{}, &mockSender{}, time.Minute)

	// must never block, no matter how often it is called
	for i := 0; i < 10; i++ {
		d.Notify()
	}

	select {
	case <-d.wake:
	default:
		t.Fatal("expected a pending wake")
	}
	select {
	case <-d.wake:
		t.Fatal("wakes must coalesce into one")
	default:
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	d := NewDispatcher(&mockStore{}, &mockSender{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
