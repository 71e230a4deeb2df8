package skeleton

import (
	"github.com/pkg/errors"

	"skelplot/internal/mathutil"
)

var (
	ErrEmptyTree     = errors.New("skeleton: tree has no joints")
	ErrDuplicateName = errors.New("skeleton: duplicate joint name")
	ErrBadParent     = errors.New("skeleton: parent must precede child")
	ErrRootCount     = errors.New("skeleton: tree must have exactly one root")
)

// Joint describes one node of a skeleton tree in rest configuration.
type Joint struct {
	Name             string
	Parent           int // -1 for the root
	LocalTranslation mathutil.Vec3
	LocalRotation    mathutil.Quat // rest orientation relative to the parent
}

// Tree is a skeleton hierarchy stored in preorder: every parent index is
// smaller than its child's.
type Tree struct {
	joints []Joint
	index  map[string]int
}

// NewTree validates joints and builds the name index.
func NewTree(joints []Joint) (*Tree, error) {
	if len(joints) == 0 {
		return nil, ErrEmptyTree
	}

	t := &Tree{
		joints: make([]Joint, len(joints)),
		index:  make(map[string]int, len(joints)),
	}
	roots := 0
	for i, j := range joints {
		if _, dup := t.index[j.Name]; dup {
			return nil, errors.Wrapf(ErrDuplicateName, "%q", j.Name)
		}
		if j.Parent < 0 {
			roots++
			j.Parent = -1
		} else if j.Parent >= i {
			return nil, errors.Wrapf(ErrBadParent, "joint %q (index %d) has parent %d", j.Name, i, j.Parent)
		}
		if j.LocalRotation == (mathutil.Quat{}) {
			j.LocalRotation = mathutil.QuatIdentity()
		}
		t.joints[i] = j
		t.index[j.Name] = i
	}
	if roots != 1 {
		return nil, errors.Wrapf(ErrRootCount, "found %d", roots)
	}
	return t, nil
}

func (t *Tree) Len() int {
	return len(t.joints)
}

func (t *Tree) NodeNames() []string {
	names := make([]string, len(t.joints))
	for i, j := range t.joints {
		names[i] = j.Name
	}
	return names
}

func (t *Tree) ParentOf(name string) (string, bool) {
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	p := t.joints[i].Parent
	if p < 0 {
		return "", false
	}
	return t.joints[p].Name, true
}

func (t *Tree) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Joint returns the joint at index i.
func (t *Tree) Joint(i int) Joint {
	return t.joints[i]
}

// ParentIndices returns the parent index of every joint, -1 for the root.
func (t *Tree) ParentIndices() []int {
	parents := make([]int, len(t.joints))
	for i, j := range t.joints {
		parents[i] = j.Parent
	}
	return parents
}

// LocalTranslations returns the rest offsets of every joint from its parent.
func (t *Tree) LocalTranslations() []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(t.joints))
	for i, j := range t.joints {
		out[i] = j.LocalTranslation
	}
	return out
}
