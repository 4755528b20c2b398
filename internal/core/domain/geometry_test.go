package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingBox_NormalizesCorners(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Rect
	}{
		{
			name: "top-left to bottom-right",
			a:    Point{X: 10, Y: 20},
			b:    Point{X: 110, Y: 90},
			want: Rect{X: 10, Y: 20, Width: 100, Height: 70},
		},
		{
			name: "bottom-right to top-left",
			a:    Point{X: 110, Y: 90},
			b:    Point{X: 10, Y: 20},
			want: Rect{X: 10, Y: 20, Width: 100, Height: 70},
		},
		{
			name: "leftward drag",
			a:    Point{X: 110, Y: 20},
			b:    Point{X: 10, Y: 90},
			want: Rect{X: 10, Y: 20, Width: 100, Height: 70},
		},
		{
			name: "same point",
			a:    Point{X: 5, Y: 5},
			b:    Point{X: 5, Y: 5},
			want: Rect{X: 5, Y: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundingBox(tt.a, tt.b))
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	assert.True(t, r.Contains(Point{X: 10, Y: 10}), "top-left edge is inside")
	assert.True(t, r.Contains(Point{X: 29, Y: 29}))
	assert.False(t, r.Contains(Point{X: 30, Y: 30}), "bottom-right edge is outside")
	assert.False(t, r.Contains(Point{X: 9, Y: 15}))
}

func TestRect_ClampTo(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		w, h float64
		want Rect
	}{
		{
			name: "inside is unchanged",
			in:   Rect{X: 5, Y: 5, Width: 10, Height: 10},
			w:    40, h: 100,
			want: Rect{X: 5, Y: 5, Width: 10, Height: 10},
		},
		{
			name: "left overhang moves origin, right edge caps width",
			in:   Rect{X: -5, Y: 0, Width: 50, Height: 30},
			w:    40, h: 100,
			want: Rect{X: 0, Y: 0, Width: 40, Height: 30},
		},
		{
			name: "left overhang alone keeps width",
			in:   Rect{X: -5, Y: 50, Width: 35, Height: 50},
			w:    600, h: 700,
			want: Rect{X: 0, Y: 50, Width: 35, Height: 50},
		},
		{
			name: "fully outside pins to the last column",
			in:   Rect{X: 200, Y: 10, Width: 20, Height: 20},
			w:    100, h: 100,
			want: Rect{X: 99, Y: 10, Width: 1, Height: 20},
		},
		{
			name: "negative size clamps to zero",
			in:   Rect{X: 10, Y: 10, Width: -5, Height: 8},
			w:    100, h: 100,
			want: Rect{X: 10, Y: 10, Width: 0, Height: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ClampTo(tt.w, tt.h))
		})
	}
}

func TestRect_Translate(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	assert.Equal(t, Rect{X: 15, Y: 15, Width: 30, Height: 40}, r.Translate(5, -5))
}

func TestPoint_Sub(t *testing.T) {
	p := Point{X: 150, Y: 240}
	origin := Point{X: 50, Y: 40}
	assert.Equal(t, Point{X: 100, Y: 200}, p.Sub(origin))
}

func TestClampPointTo(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 800, Height: 600}

	t.Run("inside is unchanged", func(t *testing.T) {
		got := ClampPointTo(Point{X: 100, Y: 100}, 200, 150, bounds)
		assert.Equal(t, Point{X: 100, Y: 100}, got)
	})

	t.Run("editor pulled back inside the right edge", func(t *testing.T) {
		got := ClampPointTo(Point{X: 700, Y: 100}, 200, 150, bounds)
		assert.Equal(t, Point{X: 600, Y: 100}, got)
	})

	t.Run("editor pulled back inside the bottom edge", func(t *testing.T) {
		got := ClampPointTo(Point{X: 100, Y: 580}, 200, 150, bounds)
		assert.Equal(t, Point{X: 100, Y: 450}, got)
	})

	t.Run("editor wider than bounds pins to the origin", func(t *testing.T) {
		got := ClampPointTo(Point{X: 300, Y: 100}, 1000, 150, bounds)
		assert.Equal(t, Point{X: 0, Y: 100}, got)
	})
}
