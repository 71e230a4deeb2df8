package mjcf

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skelplot/internal/mathutil"
	"skelplot/internal/scene"
	"skelplot/internal/skeleton"
)

var humanoidOrder = []string{
	"pelvis", "torso", "head",
	"right_upper_arm", "right_lower_arm", "right_hand",
	"left_upper_arm", "left_lower_arm", "left_hand",
	"right_thigh", "right_shin", "right_foot",
	"left_thigh", "left_shin", "left_foot",
}

func TestLoadHumanoid(t *testing.T) {
	m, err := Load("testdata/amp_humanoid.xml")
	require.NoError(t, err)

	assert.Equal(t, "humanoid", m.Name)
	require.Len(t, m.Bodies, len(humanoidOrder))
	for i, name := range humanoidOrder {
		assert.Equal(t, name, m.Bodies[i].Name)
	}

	assert.Equal(t, -1, m.Bodies[0].Parent)
	assert.Equal(t, mathutil.Vec3{0, 0, 1}, m.Bodies[0].Pos)
	require.Len(t, m.Bodies[0].Joints, 1)
	assert.Equal(t, "free", m.Bodies[0].Joints[0].Type)

	elbow := m.Bodies[4].Joints[0]
	assert.Equal(t, "right_elbow", elbow.Name)
	assert.Equal(t, "hinge", elbow.Type)
	assert.Equal(t, mathutil.Vec3{0, 1, 0}, elbow.Axis)
	assert.InDelta(t, -160*math.Pi/180, elbow.Range[0], 1e-12)
	assert.Empty(t, m.Bodies[5].Joints)
}

func TestHumanoidZeroPose(t *testing.T) {
	m, err := Load("testdata/amp_humanoid.xml")
	require.NoError(t, err)
	tree, err := m.Tree()
	require.NoError(t, err)

	pose := skeleton.ZeroPose(tree)
	pos := pose.GlobalPositions()

	head, _ := tree.Index("head")
	assert.Equal(t, mathutil.Vec3{}, pos[0], "root sits at the origin")
	assert.True(t, pos[head].ApproxEqual(mathutil.Vec3{0, 0, 0.460045}, 1e-9), "head %v", pos[head])

	foot, _ := tree.Index("left_foot")
	assert.True(t, pos[foot].ApproxEqual(mathutil.Vec3{0, 0.084887, -0.421546 - 0.409870}, 1e-9), "foot %v", pos[foot])

	p, ok := tree.ParentOf("right_hand")
	assert.True(t, ok)
	assert.Equal(t, "right_lower_arm", p)
}

func TestHumanoidZeroPoseFitsDefaultAxes(t *testing.T) {
	m, err := Load("testdata/amp_humanoid.xml")
	require.NoError(t, err)
	tree, err := m.Tree()
	require.NoError(t, err)

	cube := scene.Cube(scene.DefaultAxisRange)
	names := tree.NodeNames()
	for i, p := range skeleton.ZeroPose(tree).GlobalPositions() {
		for k := 0; k < 3; k++ {
			assert.GreaterOrEqual(t, p[k], cube.Min[k], "%s axis %d", names[i], k)
			assert.LessOrEqual(t, p[k], cube.Max[k], "%s axis %d", names[i], k)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want error
	}{
		{"no bodies", `<mujoco><worldbody><geom/></worldbody></mujoco>`, ErrNoBodies},
		{"duplicate", `<mujoco><worldbody><body name="a"><body name="a"/></body></worldbody></mujoco>`, ErrDuplicateBody},
		{"short pos", `<mujoco><worldbody><body name="a" pos="1 2"/></worldbody></mujoco>`, ErrBadAttribute},
		{"bad number", `<mujoco><worldbody><body name="a" quat="1 0 0 x"/></worldbody></mujoco>`, ErrBadAttribute},
		{"bad eulerseq", `<mujoco><compiler eulerseq="xyw"/><worldbody><body name="a" euler="0 0 0"/></worldbody></mujoco>`, ErrBadAttribute},
		{"bad range", `<mujoco><worldbody><body name="a"><joint name="j" range="1"/></body></worldbody></mujoco>`, ErrBadAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.xml))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err := Parse([]byte("<mujoco"))
	assert.Error(t, err)

	_, err = Load("testdata/missing.xml")
	assert.Error(t, err)
}

func TestParseDefaultsAndNaming(t *testing.T) {
	m, err := Parse([]byte(`<mujoco><worldbody>
		<body><body name="child" pos="0 0 1"/></body>
		<body name="ignored"/>
	</worldbody></mujoco>`))
	require.NoError(t, err)

	require.Len(t, m.Bodies, 2)
	assert.Equal(t, "body0", m.Bodies[0].Name)
	assert.Equal(t, mathutil.Vec3{}, m.Bodies[0].Pos)
	assert.Equal(t, mathutil.QuatIdentity(), m.Bodies[0].Rotation)
	assert.Equal(t, 0, m.Bodies[1].Parent)
}

func TestOrientationAttributes(t *testing.T) {
	rotated := func(t *testing.T, doc string) mathutil.Vec3 {
		t.Helper()
		m, err := Parse([]byte(doc))
		require.NoError(t, err)
		tree, err := m.Tree()
		require.NoError(t, err)
		return skeleton.ZeroPose(tree).GlobalPositions()[1]
	}
	want := mathutil.Vec3{0, 1, 0}

	t.Run("quat", func(t *testing.T) {
		got := rotated(t, `<mujoco><worldbody><body name="r" quat="0.7071068 0 0 0.7071068">
			<body name="c" pos="1 0 0"/></body></worldbody></mujoco>`)
		assert.True(t, got.ApproxEqual(want, 1e-6), "%v", got)
	})

	t.Run("axisangle degrees", func(t *testing.T) {
		got := rotated(t, `<mujoco><worldbody><body name="r" axisangle="0 0 1 90">
			<body name="c" pos="1 0 0"/></body></worldbody></mujoco>`)
		assert.True(t, got.ApproxEqual(want, 1e-9), "%v", got)
	})

	t.Run("euler radians", func(t *testing.T) {
		got := rotated(t, `<mujoco><compiler angle="radian"/><worldbody><body name="r" euler="0 0 1.5707963267948966">
			<body name="c" pos="1 0 0"/></body></worldbody></mujoco>`)
		assert.True(t, got.ApproxEqual(want, 1e-9), "%v", got)
	})
}

func TestEulerSequenceOrder(t *testing.T) {
	a, b := math.Pi/2, math.Pi/2

	intrinsic, err := eulerToQuat("xyz", a, b, 0)
	require.NoError(t, err)
	extrinsic, err := eulerToQuat("XYZ", a, b, 0)
	require.NoError(t, err)

	wantIntrinsic := mathutil.Mat3Mul(mathutil.RotX(a), mathutil.RotY(b))
	wantExtrinsic := mathutil.Mat3Mul(mathutil.RotY(b), mathutil.RotX(a))

	gotI := mathutil.QuatToMat3(intrinsic)
	gotE := mathutil.QuatToMat3(extrinsic)
	for i := range gotI {
		assert.InDelta(t, wantIntrinsic[i], gotI[i], 1e-9)
		assert.InDelta(t, wantExtrinsic[i], gotE[i], 1e-9)
	}
}
