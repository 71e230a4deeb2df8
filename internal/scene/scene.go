// Package scene turns a posed skeleton into render data: labels, bone
// segments, a height-shaded scatter and fixed axis bounds. It draws
// nothing itself.
package scene

import (
	"maps"
	"slices"

	"github.com/pkg/errors"

	"skelplot/internal/chain"
	"skelplot/internal/mathutil"
	"skelplot/internal/skeleton"
)

// DefaultAxisRange is the half-width of the cubic axis bounds.
const DefaultAxisRange = 1.0

var (
	ErrUnknownJoint    = errors.New("scene: unknown joint")
	ErrIndexOutOfRange = errors.New("scene: joint index out of range")
)

// Label is a joint name placed at the joint position.
type Label struct {
	Name string
	Pos  mathutil.Vec3
}

// Segment is a bone drawn from a joint to its parent.
type Segment struct {
	Child  string
	Parent string
	From   mathutil.Vec3
	To     mathutil.Vec3
}

// Marker is one scatter point. Shade is the value fed to the colormap.
type Marker struct {
	Pos   mathutil.Vec3
	Shade float64
}

// Bounds is the axis-aligned box shown on all three axes.
type Bounds struct {
	Min, Max mathutil.Vec3
}

// Cube returns [-r, r] on every axis.
func Cube(r float64) Bounds {
	return Bounds{Min: mathutil.Vec3{-r, -r, -r}, Max: mathutil.Vec3{r, r, r}}
}

// Polyline is a named chain overlay.
type Polyline struct {
	Name   string
	Points []mathutil.Vec3
}

// Scene is everything a renderer needs for one skeleton figure.
type Scene struct {
	Labels   []Label
	Segments []Segment
	Scatter  []Marker
	Chains   []Polyline
	Bounds   Bounds
}

// Build walks h in order. Every joint gets a label; every joint with a
// parent gets a segment to that parent. On failure the scene built so far
// is returned with the error.
func Build(h skeleton.Hierarchy, positions []mathutil.Vec3, axisRange float64) (*Scene, error) {
	names := h.NodeNames()
	s := &Scene{
		Labels:   make([]Label, 0, len(names)),
		Segments: make([]Segment, 0, len(names)),
		Bounds:   Cube(axisRange),
	}

	for i, name := range names {
		if i >= len(positions) {
			return s, errors.Wrapf(ErrIndexOutOfRange, "joint %q index %d (%d positions)", name, i, len(positions))
		}
		s.Labels = append(s.Labels, Label{Name: name, Pos: positions[i]})
	}

	for i, name := range names {
		parent, ok := h.ParentOf(name)
		if !ok {
			continue
		}
		pi, ok := h.Index(parent)
		if !ok {
			return s, errors.Wrapf(ErrUnknownJoint, "parent %q of %q", parent, name)
		}
		if pi < 0 || pi >= len(positions) {
			return s, errors.Wrapf(ErrIndexOutOfRange, "parent %q index %d (%d positions)", parent, pi, len(positions))
		}
		s.Segments = append(s.Segments, Segment{
			Child:  name,
			Parent: parent,
			From:   positions[i],
			To:     positions[pi],
		})
	}

	s.Scatter = make([]Marker, len(names))
	for i := range names {
		s.Scatter[i] = Marker{Pos: positions[i], Shade: positions[i][2]}
	}

	return s, nil
}

// FromPose builds the scene of a pose's global joint positions.
func FromPose(p skeleton.Pose, axisRange float64) (*Scene, error) {
	return Build(p.Hierarchy(), p.GlobalPositions(), axisRange)
}

// AddChains extracts each named chain from the scene's joints and appends
// it as an overlay. Names are resolved against h.
func (s *Scene) AddChains(h skeleton.Hierarchy, positions []mathutil.Vec3, chains map[string][]string) error {
	for _, name := range slices.Sorted(maps.Keys(chains)) {
		pts, err := chain.ByName(h, positions, chains[name])
		if err != nil {
			return errors.Wrapf(err, "chain %q", name)
		}
		s.Chains = append(s.Chains, Polyline{Name: name, Points: pts})
	}
	return nil
}

// ShadeRange returns the min and max scatter shade.
func (s *Scene) ShadeRange() (lo, hi float64) {
	for i, m := range s.Scatter {
		if i == 0 || m.Shade < lo {
			lo = m.Shade
		}
		if i == 0 || m.Shade > hi {
			hi = m.Shade
		}
	}
	return lo, hi
}
