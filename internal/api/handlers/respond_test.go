package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Code string `json:"code"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"A"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "A", dst.Code)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"A","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "-1"})
	_, err = PathInt64(r, "id")
	assert.Error(t, err)
}

func TestRespondPromoInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondPromoInvalid(rec, "Promo code has expired", "expired")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodePromoInvalid, body.Code)
	assert.Equal(t, "expired", body.Reason)
}
