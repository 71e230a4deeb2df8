// Package skeleton holds the joint hierarchy and the poses evaluated over it.
package skeleton

import "skelplot/internal/mathutil"

// Hierarchy is the read-only parent/child structure over named joints.
// Joint order is stable; indices returned by Index match NodeNames.
type Hierarchy interface {
	Len() int
	NodeNames() []string
	// ParentOf returns the parent name of a joint. ok is false for the
	// root and for unknown joints.
	ParentOf(name string) (parent string, ok bool)
	Index(name string) (int, bool)
}

// Pose evaluates global joint transforms over a hierarchy.
type Pose interface {
	Hierarchy() Hierarchy
	GlobalTransforms() []mathutil.Mat4
	GlobalPositions() []mathutil.Vec3
}
