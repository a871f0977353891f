package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Username string `validate:"required,min=3"`
	Password string `validate:"required"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(signup{Username: "ab"})
	msg := FormatValidationError(err)

	assert.Contains(t, msg, "username must be at least 3 characters")
	assert.Contains(t, msg, "password is required")
}

func TestFormatValidationErrorPassthrough(t *testing.T) {
	assert.Equal(t, "EOF", FormatValidationError(errors.New("EOF")))
}
