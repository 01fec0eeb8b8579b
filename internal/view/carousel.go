package view

// Carousel is a position within Len steps. Index always stays within [0, Len-1],
// or is 0 when there are no steps.
type Carousel struct {
	Index int
	Len   int
}

// NewCarousel clamps index into range.
func NewCarousel(index, n int) Carousel {
	if n <= 0 {
		return Carousel{}
	}
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}
	return Carousel{Index: index, Len: n}
}

func (c Carousel) HasPrev() bool {
	return c.Index > 0
}

func (c Carousel) HasNext() bool {
	return c.Index < c.Len-1
}

func (c Carousel) Prev() Carousel {
	return NewCarousel(c.Index-1, c.Len)
}

func (c Carousel) Next() Carousel {
	return NewCarousel(c.Index+1, c.Len)
}

// Position is the 1-based step number shown to the user.
func (c Carousel) Position() int {
	return c.Index + 1
}
