package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMath_MinMax(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(3, Min(3, 5))
	assert.Equal(3, Min(5, 3))
	assert.Equal(-1.5, Min(-1.5, 2.5))
	assert.Equal("a", Min("a", "b"))

	assert.Equal(5, Max(3, 5))
	assert.Equal(5, Max(5, 3))
	assert.Equal(2.5, Max(-1.5, 2.5))
	assert.Equal("b", Max("a", "b"))
}

func TestMath_Abs(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(3, Abs(-3))
	assert.Equal(3, Abs(3))
	assert.Equal(2.5, Abs(-2.5))
	assert.Equal(0, Abs(0))
}

func TestMath_Clamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(5, Clamp(5, 0, 10))
	assert.Equal(0, Clamp(-3, 0, 10))
	assert.Equal(10, Clamp(42, 0, 10))
	assert.Equal(0.25, Clamp(0.25, 0.0, 1.0))
}

func TestMath_Contains(t *testing.T) {
	assert := assert.New(t)

	modes := []string{"normal", "darken", "lighten"}
	assert.True(Contains(modes, "darken"))
	assert.False(Contains(modes, "screen"))
	assert.False(Contains(nil, "normal"))
	assert.True(Contains([]int{1, 2, 3}, 2))
}
