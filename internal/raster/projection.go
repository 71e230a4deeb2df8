package raster

import (
	"math"

	"skelplot/internal/mathutil"
	"skelplot/internal/scene"
)

// projector maps world points to canvas pixels with an orthographic view.
type projector struct {
	view   mathutil.Mat3
	center [2]float64
	scale  float64
	half   float64
}

// newProjector fits the projected corners of bounds into a size×size
// canvas, leaving margin pixels on every side.
func newProjector(b scene.Bounds, view mathutil.Mat3, size int, margin float64) projector {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners(b) {
		t := view.MulVec3(c)
		minX, maxX = math.Min(minX, t[0]), math.Max(maxX, t[0])
		minY, maxY = math.Min(minY, t[1]), math.Max(maxY, t[1])
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span < 0.001 {
		span = 0.001
	}
	avail := float64(size) - 2*margin
	if avail < 1 {
		avail = 1
	}

	return projector{
		view:   view,
		center: [2]float64{(minX + maxX) / 2, (minY + maxY) / 2},
		scale:  avail / span,
		half:   float64(size) / 2,
	}
}

// project returns canvas x, y (y down) and depth (larger is nearer).
func (p projector) project(v mathutil.Vec3) (float64, float64, float64) {
	t := p.view.MulVec3(v)
	x := (t[0]-p.center[0])*p.scale + p.half
	y := -(t[1]-p.center[1])*p.scale + p.half
	return x, y, t[2]
}

// corners lists the eight box vertices; index bits select max on x, y, z.
func corners(b scene.Bounds) [8]mathutil.Vec3 {
	var out [8]mathutil.Vec3
	for i := 0; i < 8; i++ {
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				out[i][k] = b.Max[k]
			} else {
				out[i][k] = b.Min[k]
			}
		}
	}
	return out
}

// boxEdges pairs corner indices that differ in exactly one axis.
func boxEdges() [][2]int {
	var edges [][2]int
	for i := 0; i < 8; i++ {
		for k := 0; k < 3; k++ {
			j := i | 1<<k
			if j != i {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}
