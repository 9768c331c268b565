package cerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf_ClassifiedError(t *testing.T) {
	err := New(CodeUsage, "missing chain")
	assert.Equal(t, CodeUsage, CodeOf(err))
}

func TestCodeOf_WrappedChain(t *testing.T) {
	inner := New(CodeRateLimited, "slow down")
	outer := fmt.Errorf("fetching pools: %w", inner)
	assert.Equal(t, CodeRateLimited, CodeOf(outer))
}

func TestCodeOf_UnclassifiedDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestError_MessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUnavailable, "all HTTP transports failed", cause)

	assert.Equal(t, "all HTTP transports failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := Newf(CodeUnsupported, "unsupported action: %q", "mintBlocks")
	assert.ErrorIs(t, err, New(CodeUnsupported, ""))
	assert.NotErrorIs(t, err, New(CodeUsage, ""))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(New(CodeRateLimited, "")))
	assert.True(t, Retryable(New(CodeUnavailable, "")))
	assert.False(t, Retryable(New(CodeUsage, "")))
	assert.False(t, Retryable(New(CodeInternal, "")))
	assert.False(t, Retryable(New(CodeUnsupported, "")))
}

func TestAs_ExtractsFromChain(t *testing.T) {
	inner := New(CodeUsage, "invalid amountRaw")
	wrapped := fmt.Errorf("handler failed: %w", inner)

	extracted, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeUsage, extracted.Code)

	_, ok = As(nil)
	assert.False(t, ok)
}
