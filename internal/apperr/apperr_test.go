package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "checkout not found")))
	assert.Equal(t, Conflict, KindOf(Wrap(Conflict, "already paid", errors.New("db"))))

	// anything outside the taxonomy collapses to Internal
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
	assert.Equal(t, Internal, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := New(NotFound, "product not found")
	outer := fmt.Errorf("adding item: %w", inner)
	assert.Equal(t, NotFound, KindOf(outer))
	assert.True(t, errors.Is(outer, &Error{Kind: NotFound}))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(InvalidArgument, "")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(New(NotFound, "")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(New(Conflict, "")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(New(InvalidState, "")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(Unauthenticated, "")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(New(ResourceExhausted, "")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "cart is empty", Message(New(InvalidState, "cart is empty")))
	assert.Equal(t, "Internal server error", Message(Wrap(Internal, "pq: connection refused", errors.New("dial tcp"))))
	assert.Equal(t, "Internal server error", Message(errors.New("raw")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "already paid", New(Conflict, "already paid").Error())
	assert.Equal(t, "load user: sql: no rows", Wrap(NotFound, "load user", errors.New("sql: no rows")).Error())
}
