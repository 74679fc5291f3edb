package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertNear(t *testing.T, want, got Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
}

func TestSolve2x2(t *testing.T) {
	tests := []struct {
		name                       string
		a11, a12, a21, a22, b1, b2 float64
		wantX, wantY               float64
		wantOK                     bool
	}{
		{"identity", 1, 0, 0, 1, 3, 4, 3, 4, true},
		{"mixed", 2, 1, 1, 3, 5, 10, 1, 3, true},
		{"singular", 1, 2, 2, 4, 1, 2, 0, 0, false},
		{"zero", 0, 0, 0, 0, 1, 1, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := Solve2x2(tt.a11, tt.a12, tt.a21, tt.a22, tt.b1, tt.b2)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.wantX, x, tol)
				assert.InDelta(t, tt.wantY, y, tol)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	got, ok := Intersect(Vec2{0, 1}, Vec2{1, 0}, Vec2{3, 0}, Vec2{0, 1})
	require.True(t, ok)
	assertNear(t, Vec2{3, 1}, got)

	_, ok = Intersect(Vec2{0, 0}, Vec2{1, 1}, Vec2{0, 1}, Vec2{2, 2})
	assert.False(t, ok, "parallel lines")
}

func TestParam(t *testing.T) {
	tp, ok := Param(Vec2{0, -1}, Vec2{1, 0}, Vec2{0, 0}, Vec2{1, -1})
	require.True(t, ok)
	assert.InDelta(t, 1, tp, tol)
}

func TestCircleCenters(t *testing.T) {
	left, right, ok := CircleCenters(5, Vec2{-3, 0}, Vec2{3, 0})
	require.True(t, ok)
	assertNear(t, Vec2{0, 4}, left)
	assertNear(t, Vec2{0, -4}, right)

	_, _, ok = CircleCenters(1, Vec2{0, 0}, Vec2{5, 0})
	assert.False(t, ok, "radius too small")
	_, _, ok = CircleCenters(1, Vec2{2, 2}, Vec2{2, 2})
	assert.False(t, ok, "coincident points")
}
