package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestDecodeObject(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"isbn":"1","pages":10}`))

	obj, raw, err := httpx.DecodeObject(req)
	require.NoError(t, err)
	assert.Equal(t, "1", obj["isbn"])
	assert.Equal(t, float64(10), obj["pages"])
	assert.JSONEq(t, `{"isbn":"1","pages":10}`, string(raw))
}

func TestDecodeObject_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"empty":  "  ",
		"array":  `[1,2]`,
		"null":   `null`,
		"broken": `{"isbn":`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(body))
			_, _, err := httpx.DecodeObject(req)

			var ae *apperr.Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, http.StatusBadRequest, ae.Status)
		})
	}
}

func TestDecodeObject_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(`{"title":"`+strings.Repeat("a", 64)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	_, _, err := httpx.DecodeObject(req)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusRequestEntityTooLarge, ae.Status)
}
