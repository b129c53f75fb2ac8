package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailConflict = errors.New("email already taken")
	ErrInvalidToken  = errors.New("activation token is not valid")
	ErrEmailDelivery = errors.New("activation email delivery failed")
)

// FieldError is a single failed validation rule for one input field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is an ordered collection of field validation failures.
// Order follows field evaluation order (username, email, password), which
// survives JSON serialization.
type FieldErrors []FieldError

// Get returns the message recorded for field, or "" when the field passed.
func (fe FieldErrors) Get(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// MarshalJSON renders the errors as a JSON object preserving field order.
func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range fe {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Message)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object back into ordered field errors,
// preserving the key order of the document.
func (fe *FieldErrors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("expected JSON object for field errors, got %v", tok)
	}

	var out FieldErrors
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		var msg string
		if err := dec.Decode(&msg); err != nil {
			return err
		}
		out = append(out, FieldError{Field: keyTok.(string), Message: msg})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*fe = out
	return nil
}

// ValidationError reports one or more rejected input fields. Registration
// performs no side effect when it is returned.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}
