package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSourceSequence(t *testing.T) {
	src := NewTokenSource("tok-1", "tok-2")

	assert.Equal(t, "tok-1", src.Generate())
	assert.Equal(t, "tok-2", src.Generate())
	assert.Panics(t, func() { src.Generate() },
		"an exhausted source fails fast instead of repeating")
}

func TestTokenSourceEmptyRepeats(t *testing.T) {
	src := NewTokenSource()

	require.Equal(t, "test-token", src.Generate())
	require.Equal(t, "test-token", src.Generate())
}
