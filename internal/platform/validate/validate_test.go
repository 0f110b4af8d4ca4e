// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Tablon", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.New()
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.New()
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_LenBetween checks both bounds, counting runes rather than bytes.
*/
func TestValidator_LenBetween(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"at_min", "abc", true},
		{"at_max", "abcdefghij", true},
		{"below_min", "ab", false},
		{"above_max", "abcdefghijk", false},
		{"multibyte_runes", "ñandúes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validate.New()
			v.LenBetween("username", tt.value, 3, 10)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks membership in an allowed set.
*/
func TestValidator_OneOf(t *testing.T) {
	v := validate.New()
	v.OneOf("role", "moderator", "admin", "moderator", "user")
	assert.False(t, v.HasErrors())

	v = validate.New()
	v.OneOf("role", "superuser", "admin", "moderator", "user")
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := validate.New()

	// Multi-rule validation
	err := v.
		Required("username", "rocio").
		MinLen("username", "rocio", 3).
		MaxLen("username", "rocio", 10).
		Email("email", "rocio@tablon.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := validate.New()

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)

	// The top-level message is the first violation's text, not a generic one.
	assert.Equal(t, ae.Details[0].Message, ae.Message)
}

/*
TestValidator_Custom tests arbitrary conditions, like password confirmation.
*/
func TestValidator_Custom(t *testing.T) {
	v := validate.New()
	err := v.Custom("confirmPassword", "abc123" != "abc124", "Passwords do not match").Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "confirmPassword", ae.Details[0].Field)
	assert.Equal(t, "Passwords do not match", ae.Details[0].Message)
}

/*
TestRequiredError covers the single-field shortcut constructor.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("query", "Search query must be at least 2 characters")

	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "query", err.Details[0].Field)
	assert.Equal(t, "Search query must be at least 2 characters", err.Message)
}
