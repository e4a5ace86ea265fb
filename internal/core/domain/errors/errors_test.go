package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilArgumentError(t *testing.T) {
	require.EqualError(t, NewNilArgumentError("store"), "argument 'store' must not be nil")
}

func TestInvalidStateErrorf(t *testing.T) {
	err := NewInvalidStateErrorf("reminder %s: next reminder is before creation", "abc")
	require.EqualError(t, err, "reminder abc: next reminder is before creation")
}
