// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSourceUnavailable_CoversSourceFamily(t *testing.T) {
	assert.True(t, IsSourceUnavailable(NewSourceUnavailableError(fmt.Errorf("dial tcp: refused"))))
	assert.True(t, IsSourceUnavailable(NewSheetParseFailedError(fmt.Errorf("bad csv"))))
	assert.True(t, IsSourceUnavailable(NewSheetColumnMissingError("Housing Weight")))

	assert.False(t, IsSourceUnavailable(NewTypologyUnknownError("Retail")))
	assert.False(t, IsSourceUnavailable(NewSessionNotFoundError("abc")))
	assert.False(t, IsSourceUnavailable(fmt.Errorf("plain error")))
}

func TestIsSourceUnavailable_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading criteria: %w", NewSourceUnavailableError(fmt.Errorf("timeout")))
	assert.True(t, IsSourceUnavailable(wrapped))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewSourceUnavailableError(fmt.Errorf("timeout"))))
	assert.True(t, IsRetryable(NewCacheUnavailableError(fmt.Errorf("conn reset"))))
	assert.False(t, IsRetryable(NewSheetColumnMissingError("Criterion")))
	assert.False(t, IsRetryable(fmt.Errorf("plain error")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeRegistryInvalid, CodeOf(NewRegistryInvalidError("duplicate id")))
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain error")))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SOURCE", GetErrorCategory(ErrCodeSourceUnavailable))
	assert.Equal(t, "SOURCE", GetErrorCategory(ErrCodeSheetParseFailed))
	assert.Equal(t, "REGISTRY", GetErrorCategory(ErrCodeTypologyUnknown))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "SESSION", GetErrorCategory(ErrCodeSessionNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrorCode("SOMETHING_ELSE")))
}
