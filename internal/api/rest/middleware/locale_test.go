package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/signup-server/internal/i18n"
)

func TestLocale_SetsContextFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   i18n.Locale
	}{
		{name: "absent header", header: "", want: i18n.LocaleEN},
		{name: "alternate locale", header: "tr-TR,tr;q=0.9", want: i18n.LocaleTR},
		{name: "unsupported locale", header: "fr", want: i18n.LocaleEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got i18n.Locale
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = LocaleFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodPost, "/api/1.0/users", nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}

			Locale(next).ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocaleFromContext_DefaultWithoutMiddleware(t *testing.T) {
	assert.Equal(t, i18n.DefaultLocale, LocaleFromContext(context.Background()))
}
