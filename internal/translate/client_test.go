package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LazizbekQuvondiqov/Tarjimon-bot/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(testutil.NewTestLogger())
	c.BaseURL = srv.URL
	return c
}

func TestClient_TranslateSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("sl"))
		assert.Equal(t, "uz", r.URL.Query().Get("tl"))
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		w.Write([]byte(`[[["olma","apple",null,null,10]],null,"en"]`))
	})

	got, err := c.Translate(context.Background(), "apple", "en", "uz")
	assert.NoError(t, err)
	assert.Equal(t, "olma", got)
}

func TestClient_TranslateJoinsSegments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[["Salom, ","Hello, "],["dunyo","world"]],null,"en"]`))
	})

	got, err := c.Translate(context.Background(), "Hello, world", "en", "uz")
	assert.NoError(t, err)
	assert.Equal(t, "Salom, dunyo", got)
}

func TestClient_TranslateHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Translate(context.Background(), "apple", "en", "uz")
	assert.Error(t, err)
}

func TestClient_TranslateMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})

	_, err := c.Translate(context.Background(), "apple", "en", "uz")
	assert.Error(t, err)
}

func TestClient_DetectSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "auto", r.URL.Query().Get("sl"))
		w.Write([]byte(`[[["apple","olma"]],null,"uz"]`))
	})

	assert.Equal(t, "uz", c.Detect(context.Background(), "olma"))
}

func TestClient_DetectFallsBackOnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Equal(t, FallbackLanguage, c.Detect(context.Background(), "15"))
}

func TestClient_DetectFallsBackOnUnknownCode(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "undetermined", body: `[[["15","15"]],null,"und"]`},
		{name: "missing slot", body: `[[["15","15"]]]`},
		{name: "null slot", body: `[[["15","15"]],null,null]`},
		{name: "unsupported code", body: `[[["x","x"]],null,"zz"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			assert.Equal(t, FallbackLanguage, c.Detect(context.Background(), "15"))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("en"))
	assert.True(t, IsSupported("uz"))
	assert.False(t, IsSupported("und"))
	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("EN"))
}
