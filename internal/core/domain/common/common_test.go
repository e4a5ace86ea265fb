package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	assert := require.New(t)

	optionalInt := NewOptional(42, true)
	assert.Equal(42, optionalInt.Value)
	assert.True(optionalInt.IsPresent)

	optionalString := NewOptional("foo", false)
	assert.Equal("foo", optionalString.Value)
	assert.False(optionalString.IsPresent)
}

func TestOptionalValueOr(t *testing.T) {
	assert := require.New(t)

	assert.Equal("note", NewOptional("note", true).ValueOr("fallback"))
	assert.Equal("fallback", NewOptional("note", false).ValueOr("fallback"))
	assert.Equal(0, Optional[int]{}.ValueOr(0))
}
