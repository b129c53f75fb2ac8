package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_MarshalJSON_PreservesOrder(t *testing.T) {
	fe := FieldErrors{
		{Field: "username", Message: "cannot be null"},
		{Field: "email", Message: "cannot be null"},
	}

	data, err := json.Marshal(fe)
	require.NoError(t, err)
	assert.Equal(t, `{"username":"cannot be null","email":"cannot be null"}`, string(data))
}

func TestFieldErrors_RoundTrip(t *testing.T) {
	fe := FieldErrors{
		{Field: "username", Message: "cannot be null"},
		{Field: "email", Message: "is not valid"},
		{Field: "password", Message: "must be at least 8 and at most 50 characters"},
	}

	data, err := json.Marshal(fe)
	require.NoError(t, err)

	var decoded FieldErrors
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fe, decoded)
}

func TestFieldErrors_Get(t *testing.T) {
	fe := FieldErrors{{Field: "email", Message: "in use"}}

	assert.Equal(t, "in use", fe.Get("email"))
	assert.Equal(t, "", fe.Get("username"))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{{Field: "email", Message: "in use"}}}
	assert.Equal(t, "validation failed on 1 field(s)", err.Error())
}
