package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_Ingest(t *testing.T) {
	d := &fakeDispatcher{active: true}
	router := NewRouter("/events", d, zerolog.Nop())

	body := `{"protocol":{"name":"http"}}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set(HeaderCorrelationID, "corr-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "corr-1", rec.Header().Get(HeaderCorrelationID))
	assert.NotEmpty(t, rec.Header().Get(HeaderLatency))

	require.Equal(t, []string{body}, d.received())
	assert.Equal(t, "corr-1", d.corrIDs[0])
}

func TestRouter_IngestAlwaysAccepts(t *testing.T) {
	d := &fakeDispatcher{active: false}
	router := NewRouter("/events", d, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("lixo"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(HeaderCorrelationID), "correlation id deve ser gerado")
	assert.Equal(t, []string{"lixo"}, d.received())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	d := &fakeDispatcher{}
	router := NewRouter("/events", d, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, d.received())
}

func TestRouter_Health(t *testing.T) {
	tests := []struct {
		active bool
		want   string
	}{
		{true, `{"active":true}`},
		{false, `{"active":false}`},
	}

	for _, tt := range tests {
		router := NewRouter("/events", &fakeDispatcher{active: tt.active}, zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, tt.want, rec.Body.String())
	}
}
