// Package i18n holds the locale message catalogs for validation errors and
// response summaries. Keys are enumerated rather than free-form so that
// Validate can prove every locale is complete at process start.
package i18n

import (
	"fmt"
	"strings"
)

// Locale identifies a supported message language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleTR Locale = "tr"

	// DefaultLocale is used when the requested locale is unknown or absent.
	DefaultLocale = LocaleEN
)

// Key identifies one catalog message.
type Key string

const (
	KeyUsernameNull    Key = "username_null"
	KeyUsernameSize    Key = "username_size"
	KeyEmailNull       Key = "email_null"
	KeyEmailInvalid    Key = "email_invalid"
	KeyEmailInUse      Key = "email_in_use"
	KeyPasswordNull    Key = "password_null"
	KeyPasswordSize    Key = "password_size"
	KeyPasswordPattern Key = "password_pattern"

	KeyUserCreated       Key = "user_created"
	KeyValidationFailure Key = "validation_failure"
	KeyEmailFailure      Key = "email_failure"
	KeyTokenInvalid      Key = "token_invalid"
	KeyAccountActivated  Key = "account_activated"
	KeyInternalFailure   Key = "internal_failure"
)

var allKeys = []Key{
	KeyUsernameNull, KeyUsernameSize,
	KeyEmailNull, KeyEmailInvalid, KeyEmailInUse,
	KeyPasswordNull, KeyPasswordSize, KeyPasswordPattern,
	KeyUserCreated, KeyValidationFailure, KeyEmailFailure,
	KeyTokenInvalid, KeyAccountActivated, KeyInternalFailure,
}

var catalogs = map[Locale]map[Key]string{
	LocaleEN: {
		KeyUsernameNull:    "cannot be null",
		KeyUsernameSize:    "must be at least 4 and at most 32 characters",
		KeyEmailNull:       "cannot be null",
		KeyEmailInvalid:    "is not valid",
		KeyEmailInUse:      "in use",
		KeyPasswordNull:    "cannot be null",
		KeyPasswordSize:    "must be at least 8 and at most 50 characters",
		KeyPasswordPattern: "must include at least 1 lowercase, 1 uppercase, 1 number, and 1 symbol",

		KeyUserCreated:       "User created",
		KeyValidationFailure: "Validation failure",
		KeyEmailFailure:      "Email failure",
		KeyTokenInvalid:      "Activation token is not valid",
		KeyAccountActivated:  "Account activated",
		KeyInternalFailure:   "Unexpected failure",
	},
	LocaleTR: {
		KeyUsernameNull:    "boş olamaz",
		KeyUsernameSize:    "en az 4 en fazla 32 karakter olmalı",
		KeyEmailNull:       "boş olamaz",
		KeyEmailInvalid:    "geçerli değil",
		KeyEmailInUse:      "kullanılıyor",
		KeyPasswordNull:    "boş olamaz",
		KeyPasswordSize:    "en az 8 en fazla 50 karakter olmalı",
		KeyPasswordPattern: "en az 1 küçük harf, 1 büyük harf, 1 rakam ve 1 sembol içermeli",

		KeyUserCreated:       "Kullanıcı oluşturuldu",
		KeyValidationFailure: "Doğrulama hatası",
		KeyEmailFailure:      "E-Posta hatası",
		KeyTokenInvalid:      "Aktivasyon kodu geçerli değil",
		KeyAccountActivated:  "Hesap aktifleştirildi",
		KeyInternalFailure:   "Beklenmeyen hata",
	},
}

// Message returns the message for key in the given locale. An unknown
// locale falls back to DefaultLocale.
func Message(locale Locale, key Key) string {
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = catalogs[DefaultLocale]
	}
	return catalog[key]
}

// Match resolves an Accept-Language style header value to a supported
// locale, falling back to DefaultLocale. Only the primary subtag of the
// first listed language is considered.
func Match(header string) Locale {
	lang := strings.TrimSpace(header)
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	if i := strings.IndexByte(lang, '-'); i >= 0 {
		lang = lang[:i]
	}
	locale := Locale(strings.ToLower(lang))
	if _, ok := catalogs[locale]; ok {
		return locale
	}
	return DefaultLocale
}

// Validate checks that every locale defines every message key. It is run
// at process start so an incomplete catalog fails fast instead of leaking
// untranslated keys at request time.
func Validate() error {
	for locale, catalog := range catalogs {
		for _, key := range allKeys {
			if _, ok := catalog[key]; !ok {
				return fmt.Errorf("locale %q is missing message %q", locale, key)
			}
		}
		if len(catalog) != len(allKeys) {
			return fmt.Errorf("locale %q defines %d messages, want %d", locale, len(catalog), len(allKeys))
		}
	}
	return nil
}
