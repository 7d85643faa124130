package main

import (
	"fmt"
	"math/rand"

	"github.com/akmonengine/quickhull"
	"github.com/go-gl/mathgl/mgl64"
)

// Builds the hull of a unit cube with a cloud of interior points mixed
// in, then prints the faces and a few queries against the result.
func main() {
	rng := rand.New(rand.NewSource(42))

	points := []mgl64.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
	for i := 0; i < 20; i++ {
		points = append(points, mgl64.Vec3{
			0.1 + 0.8*rng.Float64(),
			0.1 + 0.8*rng.Float64(),
			0.1 + 0.8*rng.Float64(),
		})
	}

	qh := quickhull.New()
	if err := qh.Build(points); err != nil {
		fmt.Printf("build failed: %v\n", err)
		return
	}

	faces, err := qh.CollectFaces(false)
	if err != nil {
		fmt.Printf("collect failed: %v\n", err)
		return
	}

	fmt.Printf("input points:  %d\n", len(points))
	fmt.Printf("hull faces:    %d\n", len(faces))
	fmt.Printf("tolerance:     %g\n", qh.Tolerance())
	fmt.Printf("bounds:        %v .. %v\n", qh.Bounds().Min, qh.Bounds().Max)

	indices, _ := qh.VertexIndices()
	fmt.Printf("hull vertices: %v\n", indices)

	for _, face := range faces {
		fmt.Printf("  face %v\n", face)
	}

	center := mgl64.Vec3{0.5, 0.5, 0.5}
	outside := mgl64.Vec3{2, 2, 2}
	fmt.Printf("contains %v: %v\n", center, qh.ContainsPoint(center))
	fmt.Printf("contains %v: %v\n", outside, qh.ContainsPoint(outside))
}
