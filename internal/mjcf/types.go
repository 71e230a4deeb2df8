package mjcf

import "skelplot/internal/mathutil"

// Body is one <body> element in depth-first order.
type Body struct {
	Name     string
	Parent   int // index into Model.Bodies, -1 for the root
	Pos      mathutil.Vec3
	Rotation mathutil.Quat
	Joints   []Joint
}

// Joint is a degree of freedom declared inside a body.
type Joint struct {
	Name  string
	Type  string // "hinge" when the attribute is absent
	Axis  mathutil.Vec3
	Range [2]float64 // radians; zero when unlimited
}

// Model is the skeleton-relevant part of an MJCF document.
type Model struct {
	Name   string
	Bodies []Body
}
