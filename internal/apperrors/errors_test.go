package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	v := Validation("amount", "must be positive")
	nf := NotFound("expense", "abc-123")
	im := Immutable("currency")

	assert.True(t, IsValidation(v))
	assert.False(t, IsValidation(nf))
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsNotFound(im))
	assert.True(t, IsImmutableField(im))
	assert.False(t, IsImmutableField(v))
}

func TestErrorClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create failed: %w", Validation("date", "cannot be in the future"))
	assert.True(t, IsValidation(wrapped))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "amount: must be positive", Validation("amount", "must be positive").Error())
	assert.Equal(t, "expense not found: abc-123", NotFound("expense", "abc-123").Error())
	assert.Equal(t, "currency cannot be changed after creation", Immutable("currency").Error())
}
