package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestMat4MulChainsTranslations(t *testing.T) {
	parent := FromMat3Translation(Mat3Identity(), Vec3{0, 0, 1})
	child := FromMat3Translation(Mat3Identity(), Vec3{0.5, 0, 0})

	world := Mat4Mul(parent, child)
	assert.True(t, world.Translation().ApproxEqual(Vec3{0.5, 0, 1}, eps))
}

func TestMat4RotatedParentMovesChild(t *testing.T) {
	parent := FromMat3Translation(RotZ(math.Pi/2), Vec3{})
	child := FromMat3Translation(Mat3Identity(), Vec3{1, 0, 0})

	world := Mat4Mul(parent, child)
	assert.True(t, world.Translation().ApproxEqual(Vec3{0, 1, 0}, eps))
}

func TestQuatConversions(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, Mat3Identity(), QuatToMat3(QuatFromWXYZ(1, 0, 0, 0)))
	})

	t.Run("axis angle matches RotZ", func(t *testing.T) {
		q := QuatFromAxisAngle(Vec3{0, 0, 2}, math.Pi/3)
		got := QuatToMat3(q)
		want := RotZ(math.Pi / 3)
		for i := range got {
			assert.InDelta(t, want[i], got[i], eps)
		}
	})

	t.Run("zero axis is identity", func(t *testing.T) {
		assert.Equal(t, QuatIdentity(), QuatFromAxisAngle(Vec3{}, 1))
	})

	t.Run("normalize", func(t *testing.T) {
		q := Quat{0, 0, 0, 2}.Normalize()
		assert.Equal(t, QuatIdentity(), q)
		assert.Equal(t, QuatIdentity(), Quat{}.Normalize())
	})
}

func TestViewMatrix(t *testing.T) {
	t.Run("side view", func(t *testing.T) {
		m := ViewMatrix(0, 0)
		assert.True(t, m.MulVec3(Vec3{0, 1, 0}).ApproxEqual(Vec3{1, 0, 0}, eps))
		assert.True(t, m.MulVec3(Vec3{0, 0, 1}).ApproxEqual(Vec3{0, 1, 0}, eps))
		assert.True(t, m.MulVec3(Vec3{1, 0, 0}).ApproxEqual(Vec3{0, 0, 1}, eps))
	})

	t.Run("top view looks down z", func(t *testing.T) {
		m := ViewMatrix(DefaultAzimuth, 90)
		got := m.MulVec3(Vec3{0, 0, 1})
		assert.InDelta(t, 0, got[0], eps)
		assert.InDelta(t, 0, got[1], eps)
		assert.InDelta(t, 1, got[2], eps)
	})

	t.Run("preserves length", func(t *testing.T) {
		m := ViewMatrix(DefaultAzimuth, DefaultElevation)
		for _, v := range []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, -2, 3}} {
			assert.InDelta(t, v.Len(), m.MulVec3(v).Len(), eps)
		}
	})
}

func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	assert.True(t, a.ApproxEqual(Vec3{1, 2, 3 + 1e-12}, eps))
	assert.False(t, a.ApproxEqual(b, eps))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, b.Normalize().Len(), eps)
}

func TestMat3ToQuatRoundTrip(t *testing.T) {
	for _, m := range []Mat3{
		Mat3Identity(),
		RotX(2.5),
		RotY(-3.0),
		RotZ(math.Pi),
		Mat3Mul(RotZ(0.3), Mat3Mul(RotY(1.2), RotX(-0.7))),
	} {
		got := QuatToMat3(Mat3ToQuat(m))
		for i := range m {
			assert.InDelta(t, m[i], got[i], 1e-9)
		}
	}
}
