package mathutil

import "math"

// Default camera angles of a matplotlib 3D axes, in degrees.
const (
	DefaultAzimuth   = -60.0
	DefaultElevation = 30.0
)

// ViewMatrix returns the orthographic view rotation for a Z-up scene seen
// from azimuth/elevation (degrees). Rows are screen right, screen up, and
// the direction toward the viewer, so MulVec3 yields (x, y, depth) with
// larger depth closer to the camera.
func ViewMatrix(azimDeg, elevDeg float64) Mat3 {
	a, e := Deg2Rad(azimDeg), Deg2Rad(elevDeg)
	ca, sa := math.Cos(a), math.Sin(a)
	ce, se := math.Cos(e), math.Sin(e)

	right := Vec3{-sa, ca, 0}
	up := Vec3{-se * ca, -se * sa, ce}
	toward := Vec3{ce * ca, ce * sa, se}
	return Mat3FromRows(right, up, toward)
}
