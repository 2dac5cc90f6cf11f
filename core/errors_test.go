package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "c0 controls stripped", in: "a\x00b\x1fc\nd", want: "abcd"},
		{name: "c1 controls stripped", in: "x\x7fyz", want: "xyz"},
		{name: "unicode preserved", in: "café", want: "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestWithTurnPreservesKind(t *testing.T) {
	err := WithTurn(NewValidationError("image URL cannot be empty"), 2)

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "turn 2: image URL cannot be empty", err.Error())
}

func TestWithTurnWrapsPlainError(t *testing.T) {
	cause := errors.New("boom")
	err := WithTurn(cause, 0)

	assert.Equal(t, KindUnclassified, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestClassify(t *testing.T) {
	t.Run("keeps kind and turn annotation", func(t *testing.T) {
		orig := WithTurn(NewFetchError("http://x/cat.jpg", errors.New("connection refused")), 1)
		classified := Classify(fmt.Errorf("wrapped: %w", orig))

		assert.Equal(t, KindFetch, classified.Kind)
		assert.Equal(t, 1, classified.TurnIndex)
	})

	t.Run("plain error becomes unclassified with printable message", func(t *testing.T) {
		classified := Classify(errors.New("raw \x00\x01 bytes"))

		assert.Equal(t, KindUnclassified, classified.Kind)
		assert.Equal(t, "raw  bytes", classified.Message)
		assert.Equal(t, -1, classified.TurnIndex)
	})
}

func TestFetchErrorCarriesURLAndCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewFetchError("http://example.com/a.png", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "http://example.com/a.png")
	assert.Equal(t, KindFetch, err.Kind)
}
