package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{}, &Meta{Page: 1, Limit: 20})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"success":true,"data":[],"meta":{"page":1,"limit":20,"total_items":0,"total_pages":0}}`,
		rec.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"date": "must be YYYY-MM-DD"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Success)
	require.NotNil(t, got.Error)
	assert.Equal(t, CodeValidation, got.Error.Code)
	assert.Equal(t, "must be YYYY-MM-DD", got.Error.Details["date"])
	assert.Nil(t, got.Meta)
}

func TestStream(t *testing.T) {
	rec := httptest.NewRecorder()
	Stream(rec, "image/jpeg", "private, max-age=60", strings.NewReader("jpeg-bytes"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "private, max-age=60", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}
