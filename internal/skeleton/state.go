package skeleton

import (
	"github.com/pkg/errors"

	"skelplot/internal/mathutil"
)

// State is a pose over a Tree: one local rotation per joint plus the root
// translation. Global transforms are computed once at construction.
type State struct {
	tree            *Tree
	localRotations  []mathutil.Quat
	rootTranslation mathutil.Vec3
	worlds          []mathutil.Mat4
}

// ZeroPose returns the pose with no rotation applied on top of the rest
// configuration and the root at the origin.
func ZeroPose(tree *Tree) *State {
	rots := make([]mathutil.Quat, tree.Len())
	for i := range rots {
		rots[i] = mathutil.QuatIdentity()
	}
	s := &State{tree: tree, localRotations: rots}
	s.worlds = s.buildWorldMatrices()
	return s
}

// NewState builds a pose from per-joint local rotations applied after each
// joint's rest orientation.
func NewState(tree *Tree, localRotations []mathutil.Quat, rootTranslation mathutil.Vec3) (*State, error) {
	if len(localRotations) != tree.Len() {
		return nil, errors.Errorf("skeleton: %d rotations for %d joints", len(localRotations), tree.Len())
	}
	s := &State{
		tree:            tree,
		localRotations:  append([]mathutil.Quat(nil), localRotations...),
		rootTranslation: rootTranslation,
	}
	s.worlds = s.buildWorldMatrices()
	return s, nil
}

// buildWorldMatrices chains each joint's local transform onto its parent.
// Preorder guarantees the parent's world matrix is ready first.
func (s *State) buildWorldMatrices() []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, s.tree.Len())

	for i, j := range s.tree.joints {
		rest := mathutil.QuatToMat3(j.LocalRotation.Normalize())
		rot := mathutil.Mat3Mul(rest, mathutil.QuatToMat3(s.localRotations[i].Normalize()))

		pos := j.LocalTranslation
		if j.Parent < 0 {
			pos = s.rootTranslation
		}
		local := mathutil.FromMat3Translation(rot, pos)

		if j.Parent >= 0 {
			worlds[i] = mathutil.Mat4Mul(worlds[j.Parent], local)
		} else {
			worlds[i] = local
		}
	}

	return worlds
}

func (s *State) Hierarchy() Hierarchy {
	return s.tree
}

// Tree returns the concrete tree the pose was built over.
func (s *State) Tree() *Tree {
	return s.tree
}

func (s *State) GlobalTransforms() []mathutil.Mat4 {
	return append([]mathutil.Mat4(nil), s.worlds...)
}

func (s *State) GlobalPositions() []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(s.worlds))
	for i, w := range s.worlds {
		out[i] = w.Translation()
	}
	return out
}
