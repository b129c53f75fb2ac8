package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/signup-server/internal/i18n"
)

type contextKey struct{}

var localeKey contextKey

// Locale resolves the request locale from the Accept-Language header and
// stores it in the request context. Unknown or absent languages fall back
// to the default locale.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := i18n.Match(r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), localeKey, locale)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleFromContext returns the locale resolved for the request, or the
// default locale when the middleware did not run.
func LocaleFromContext(ctx context.Context) i18n.Locale {
	if locale, ok := ctx.Value(localeKey).(i18n.Locale); ok {
		return locale
	}
	return i18n.DefaultLocale
}
