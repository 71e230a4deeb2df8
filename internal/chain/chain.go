// Package chain extracts ordered runs of joint positions, such as
// hand-chest-hand, from a pose.
package chain

import (
	"github.com/pkg/errors"

	"skelplot/internal/mathutil"
	"skelplot/internal/skeleton"
)

var (
	ErrIndexOutOfRange = errors.New("chain: joint index out of range")
	ErrUnknownJoint    = errors.New("chain: unknown joint")
)

// Set groups the three body chains drawn together.
type Set struct {
	Spine []mathutil.Vec3 // pelvis → chest → head
	Hands []mathutil.Vec3 // left hand → chest → right hand
	Legs  []mathutil.Vec3 // left foot → pelvis → right foot
}

// Dots returns points[indices[k]] for every k, in order. Indices may repeat.
func Dots(points []mathutil.Vec3, indices []int) ([]mathutil.Vec3, error) {
	out := make([]mathutil.Vec3, len(indices))
	for k, idx := range indices {
		if idx < 0 || idx >= len(points) {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d at position %d (%d joints)", idx, k, len(points))
		}
		out[k] = points[idx]
	}
	return out, nil
}

// Chains applies Dots to the spine, hands and legs index lists.
func Chains(points []mathutil.Vec3, spine, hands, legs []int) (Set, error) {
	var (
		s   Set
		err error
	)
	if s.Spine, err = Dots(points, spine); err != nil {
		return Set{}, errors.Wrap(err, "spine")
	}
	if s.Hands, err = Dots(points, hands); err != nil {
		return Set{}, errors.Wrap(err, "hands")
	}
	if s.Legs, err = Dots(points, legs); err != nil {
		return Set{}, errors.Wrap(err, "legs")
	}
	return s, nil
}

// Indices resolves joint names to hierarchy indices.
func Indices(h skeleton.Hierarchy, names []string) ([]int, error) {
	out := make([]int, len(names))
	for k, name := range names {
		i, ok := h.Index(name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownJoint, "%q", name)
		}
		out[k] = i
	}
	return out, nil
}

// ByName resolves names against h and extracts the matching points.
func ByName(h skeleton.Hierarchy, points []mathutil.Vec3, names []string) ([]mathutil.Vec3, error) {
	idx, err := Indices(h, names)
	if err != nil {
		return nil, err
	}
	return Dots(points, idx)
}
