// Package validation implements field-level validation for registration
// input. All checks are pure except the email uniqueness pre-check, which
// is isolated behind the EmailChecker interface and invoked at most once
// per submission.
package validation

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dtroode/signup-server/internal/i18n"
	"github.com/dtroode/signup-server/internal/model"
)

const (
	usernameMinLen = 4
	usernameMaxLen = 32
	passwordMinLen = 8
	passwordMaxLen = 50
)

// EmailChecker reports whether an account with the given email already
// exists. The check is advisory; the store's unique constraint remains
// authoritative under races.
type EmailChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Input carries raw registration fields. Nil means the field was absent
// or explicitly null in the request.
type Input struct {
	Username *string
	Email    *string
	Password *string
}

// Validator checks registration input against the field rules.
type Validator struct {
	emails EmailChecker
}

// New creates a Validator backed by the given email existence checker.
func New(emails EmailChecker) *Validator {
	return &Validator{emails: emails}
}

// Validate evaluates every field independently and returns one localized
// message per failing field, in field evaluation order. A non-nil error is
// returned only when the uniqueness pre-check itself fails.
func (v *Validator) Validate(ctx context.Context, in Input, locale i18n.Locale) (model.FieldErrors, error) {
	var fieldErrors model.FieldErrors

	if key, ok := checkUsername(in.Username); !ok {
		fieldErrors = append(fieldErrors, model.FieldError{Field: "username", Message: i18n.Message(locale, key)})
	}

	key, ok, err := v.checkEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if !ok {
		fieldErrors = append(fieldErrors, model.FieldError{Field: "email", Message: i18n.Message(locale, key)})
	}

	if key, ok := checkPassword(in.Password); !ok {
		fieldErrors = append(fieldErrors, model.FieldError{Field: "password", Message: i18n.Message(locale, key)})
	}

	return fieldErrors, nil
}

func checkUsername(username *string) (i18n.Key, bool) {
	if username == nil {
		return i18n.KeyUsernameNull, false
	}
	if n := utf8.RuneCountInString(*username); n < usernameMinLen || n > usernameMaxLen {
		return i18n.KeyUsernameSize, false
	}
	return "", true
}

// checkEmail runs the null and syntax checks first; the store lookup only
// happens for a syntactically valid address.
func (v *Validator) checkEmail(ctx context.Context, email *string) (i18n.Key, bool, error) {
	if email == nil {
		return i18n.KeyEmailNull, false, nil
	}
	if !validEmailSyntax(*email) {
		return i18n.KeyEmailInvalid, false, nil
	}
	exists, err := v.emails.ExistsByEmail(ctx, *email)
	if err != nil {
		return "", false, err
	}
	if exists {
		return i18n.KeyEmailInUse, false, nil
	}
	return "", true, nil
}

func checkPassword(password *string) (i18n.Key, bool) {
	if password == nil {
		return i18n.KeyPasswordNull, false
	}
	if n := utf8.RuneCountInString(*password); n < passwordMinLen || n > passwordMaxLen {
		return i18n.KeyPasswordSize, false
	}
	var lower, upper, digit, symbol bool
	for _, r := range *password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return i18n.KeyPasswordPattern, false
	}
	return "", true
}

// validEmailSyntax accepts a bare RFC 5322 address with a dotted domain.
func validEmailSyntax(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return strings.Contains(email[at+1:], ".")
}
