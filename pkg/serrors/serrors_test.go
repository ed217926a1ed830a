package serrors_test

import (
	"errors"
	"phishmetrics/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrBadRequest,
		serrors.ErrNotFound,
		serrors.ErrTimeout,
		serrors.ErrUpstream,
		serrors.ErrUnavailable,
		serrors.ErrInternal,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	require.NotEqual(t, serrors.ErrTimeout, serrors.ErrUpstream, "Timeout should not equal Upstream")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrUpstream, "HTTP %d: %s", 502, "bad gateway")
	require.Equal(t, "HTTP 502: bad gateway", e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrUnavailable, base, "querying records")
	require.Equal(t, "querying records: connection refused", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrTimeout)
	require.Equal(t, "TIMEOUT", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrUpstream, base, "classifying")

	require.ErrorIs(t, e, serrors.ErrUpstream)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrTimeout, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrBadRequest, base, "parsing")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrBadRequest, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrInternal, base, "building report")
	require.Equal(t, serrors.ErrInternal, e.Kind())
	require.Equal(t, "building report", e.Message())
	require.Equal(t, base, e.Cause())
}
