package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBExtend(t *testing.T) {
	box := NewAABB(mgl64.Vec3{1, 1, 1})
	if box.Min != box.Max {
		t.Fatalf("NewAABB should be degenerate, got %v .. %v", box.Min, box.Max)
	}

	box = box.Extend(mgl64.Vec3{-1, 2, 0})
	box = box.Extend(mgl64.Vec3{3, -5, 1})

	expectedMin := mgl64.Vec3{-1, -5, 0}
	expectedMax := mgl64.Vec3{3, 2, 1}
	if box.Min != expectedMin || box.Max != expectedMax {
		t.Errorf("Extend: got %v .. %v, want %v .. %v", box.Min, box.Max, expectedMin, expectedMax)
	}

	expectedSize := mgl64.Vec3{4, 7, 1}
	if box.Size() != expectedSize {
		t.Errorf("Size() = %v, want %v", box.Size(), expectedSize)
	}

	expectedCenter := mgl64.Vec3{1, -1.5, 0.5}
	if box.Center() != expectedCenter {
		t.Errorf("Center() = %v, want %v", box.Center(), expectedCenter)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{name: "interior", point: mgl64.Vec3{0.5, 0.5, 0.5}, expected: true},
		{name: "corner", point: mgl64.Vec3{0, 0, 0}, expected: true},
		{name: "face", point: mgl64.Vec3{1, 0.5, 0.5}, expected: true},
		{name: "outside x", point: mgl64.Vec3{1.1, 0.5, 0.5}, expected: false},
		{name: "outside negative y", point: mgl64.Vec3{0.5, -0.1, 0.5}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := box.ContainsPoint(tt.point); result != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, result, tt.expected)
			}
		})
	}
}
