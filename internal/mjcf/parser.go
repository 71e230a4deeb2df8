// Package mjcf loads the body tree of a MuJoCo MJCF robot description.
package mjcf

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"skelplot/internal/mathutil"
	"skelplot/internal/skeleton"
)

var (
	ErrNoBodies      = errors.New("mjcf: worldbody has no body")
	ErrDuplicateBody = errors.New("mjcf: duplicate body name")
	ErrBadAttribute  = errors.New("mjcf: malformed attribute")
)

// xmlMujoco matches the subset of the MJCF schema we read.
type xmlMujoco struct {
	XMLName   xml.Name     `xml:"mujoco"`
	Model     string       `xml:"model,attr"`
	Compiler  xmlCompiler  `xml:"compiler"`
	WorldBody xmlWorldBody `xml:"worldbody"`
}

type xmlCompiler struct {
	Angle    string `xml:"angle,attr"`
	EulerSeq string `xml:"eulerseq,attr"`
}

type xmlWorldBody struct {
	Bodies []xmlBody `xml:"body"`
}

type xmlBody struct {
	Name      string         `xml:"name,attr"`
	Pos       string         `xml:"pos,attr"`
	Quat      string         `xml:"quat,attr"`
	AxisAngle string         `xml:"axisangle,attr"`
	Euler     string         `xml:"euler,attr"`
	Joints    []xmlJoint     `xml:"joint"`
	FreeJoint []xmlFreeJoint `xml:"freejoint"`
	Bodies    []xmlBody      `xml:"body"`
}

type xmlJoint struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr"`
	Axis  string `xml:"axis,attr"`
	Range string `xml:"range,attr"`
}

type xmlFreeJoint struct {
	Name string `xml:"name,attr"`
}

// Load reads an MJCF file and returns its body tree.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mjcf: read %s", path)
	}
	m, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "mjcf: parse %s", path)
	}
	return m, nil
}

// Parse decodes MJCF XML. Only the first body under <worldbody> is used as
// the skeleton root; its descendants are visited depth first.
func Parse(data []byte) (*Model, error) {
	var doc xmlMujoco
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "mjcf: decode")
	}
	if len(doc.WorldBody.Bodies) == 0 {
		return nil, ErrNoBodies
	}

	b := builder{
		degrees:  !strings.EqualFold(doc.Compiler.Angle, "radian"),
		eulerSeq: doc.Compiler.EulerSeq,
		seen:     make(map[string]bool),
	}
	if b.eulerSeq == "" {
		b.eulerSeq = "xyz"
	}
	if err := b.add(doc.WorldBody.Bodies[0], -1); err != nil {
		return nil, err
	}

	return &Model{Name: doc.Model, Bodies: b.bodies}, nil
}

type builder struct {
	degrees  bool
	eulerSeq string
	bodies   []Body
	seen     map[string]bool
}

func (b *builder) add(x xmlBody, parent int) error {
	idx := len(b.bodies)
	name := x.Name
	if name == "" {
		name = fmt.Sprintf("body%d", idx)
	}
	if b.seen[name] {
		return errors.Wrapf(ErrDuplicateBody, "%q", name)
	}
	b.seen[name] = true

	pos, err := parseVec3(x.Pos)
	if err != nil {
		return errors.Wrapf(err, "body %q pos", name)
	}
	rot, err := b.orientation(x)
	if err != nil {
		return errors.Wrapf(err, "body %q", name)
	}

	body := Body{Name: name, Parent: parent, Pos: pos, Rotation: rot}
	for _, fj := range x.FreeJoint {
		body.Joints = append(body.Joints, Joint{Name: fj.Name, Type: "free"})
	}
	for _, xj := range x.Joints {
		j, err := b.joint(xj)
		if err != nil {
			return errors.Wrapf(err, "body %q joint %q", name, xj.Name)
		}
		body.Joints = append(body.Joints, j)
	}
	b.bodies = append(b.bodies, body)

	for _, child := range x.Bodies {
		if err := b.add(child, idx); err != nil {
			return err
		}
	}
	return nil
}

// orientation honors the first of quat, axisangle or euler that is set.
func (b *builder) orientation(x xmlBody) (mathutil.Quat, error) {
	switch {
	case x.Quat != "":
		v, err := parseFloats(x.Quat, 4)
		if err != nil {
			return mathutil.Quat{}, errors.Wrap(err, "quat")
		}
		return mathutil.QuatFromWXYZ(v[0], v[1], v[2], v[3]).Normalize(), nil

	case x.AxisAngle != "":
		v, err := parseFloats(x.AxisAngle, 4)
		if err != nil {
			return mathutil.Quat{}, errors.Wrap(err, "axisangle")
		}
		return mathutil.QuatFromAxisAngle(mathutil.Vec3{v[0], v[1], v[2]}, b.angle(v[3])), nil

	case x.Euler != "":
		v, err := parseFloats(x.Euler, 3)
		if err != nil {
			return mathutil.Quat{}, errors.Wrap(err, "euler")
		}
		return eulerToQuat(b.eulerSeq, b.angle(v[0]), b.angle(v[1]), b.angle(v[2]))
	}
	return mathutil.QuatIdentity(), nil
}

func (b *builder) joint(x xmlJoint) (Joint, error) {
	j := Joint{Name: x.Name, Type: x.Type, Axis: mathutil.Vec3{0, 0, 1}}
	if j.Type == "" {
		j.Type = "hinge"
	}
	if x.Axis != "" {
		axis, err := parseVec3(x.Axis)
		if err != nil {
			return Joint{}, errors.Wrap(err, "axis")
		}
		j.Axis = axis
	}
	if x.Range != "" {
		r, err := parseFloats(x.Range, 2)
		if err != nil {
			return Joint{}, errors.Wrap(err, "range")
		}
		// Slide joint ranges are lengths, not angles.
		if j.Type == "slide" {
			j.Range = [2]float64{r[0], r[1]}
		} else {
			j.Range = [2]float64{b.angle(r[0]), b.angle(r[1])}
		}
	}
	return j, nil
}

func (b *builder) angle(v float64) float64 {
	if b.degrees {
		return mathutil.Deg2Rad(v)
	}
	return v
}

// Tree converts the body list into a skeleton tree whose joint order
// matches Bodies.
func (m *Model) Tree() (*skeleton.Tree, error) {
	joints := make([]skeleton.Joint, len(m.Bodies))
	for i, b := range m.Bodies {
		joints[i] = skeleton.Joint{
			Name:             b.Name,
			Parent:           b.Parent,
			LocalTranslation: b.Pos,
			LocalRotation:    b.Rotation,
		}
	}
	return skeleton.NewTree(joints)
}

func parseVec3(s string) (mathutil.Vec3, error) {
	if strings.TrimSpace(s) == "" {
		return mathutil.Vec3{}, nil
	}
	v, err := parseFloats(s, 3)
	if err != nil {
		return mathutil.Vec3{}, err
	}
	return mathutil.Vec3{v[0], v[1], v[2]}, nil
}

// parseFloats splits a whitespace-separated MJCF vector of exactly n values.
func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, errors.Wrapf(ErrBadAttribute, "want %d values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrBadAttribute, "%q", f)
		}
		out[i] = v
	}
	return out, nil
}
