package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCarouselClamps(t *testing.T) {
	tests := []struct {
		index, n, want int
	}{
		{0, 3, 0},
		{2, 3, 2},
		{5, 3, 2},
		{-1, 3, 0},
		{4, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewCarousel(tt.index, tt.n).Index, "index=%d n=%d", tt.index, tt.n)
	}
}

func TestCarouselBounds(t *testing.T) {
	c := NewCarousel(0, 3)
	assert.False(t, c.HasPrev())
	assert.True(t, c.HasNext())
	assert.Equal(t, 0, c.Prev().Index, "prev at the first step stays put")

	c = c.Next().Next()
	assert.Equal(t, 2, c.Index)
	assert.True(t, c.HasPrev())
	assert.False(t, c.HasNext())
	assert.Equal(t, 2, c.Next().Index, "next at the last step stays put")
	assert.Equal(t, 3, c.Position())
}

func TestCarouselSingleStep(t *testing.T) {
	c := NewCarousel(0, 1)
	assert.False(t, c.HasPrev())
	assert.False(t, c.HasNext())
}

func TestCarouselEmpty(t *testing.T) {
	c := NewCarousel(3, 0)
	assert.False(t, c.HasPrev())
	assert.False(t, c.HasNext())
	assert.Equal(t, 0, c.Next().Index)
}
