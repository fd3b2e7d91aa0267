package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{InvalidInput("bad"), CodeInvalidInput},
		{InvalidInputf("bad %d", 1), CodeInvalidInput},
		{UnsupportedInput("shape"), CodeUnsupportedInput},
		{NoSuitableTest("none"), CodeNoSuitableTest},
		{ValidationError("blocked"), CodeValidationError},
		{DatabaseError("insert failed", stderrors.New("conn reset")), CodeDatabaseError},
		{ConfigInvalid("bad port"), CodeConfigInvalid},
		{InternalError("panic"), CodeInternalError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, GetCode(tc.err))
	}
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWrapPreservesCodeAndCause(t *testing.T) {
	base := UnsupportedInput("needs 2 groups")
	wrapped := Wrap(base, "selection failed")

	assert.Equal(t, CodeUnsupportedInput, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "selection failed")
	assert.Contains(t, wrapped.Error(), "needs 2 groups")

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.ErrorIs(t, wrapped, base)
}

func TestWrapPlainError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	wrapped := Wrap(cause, "save failed")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}
