package mjcf

import (
	"github.com/pkg/errors"

	"skelplot/internal/mathutil"
)

// eulerToQuat composes three axis rotations in MJCF eulerseq order.
// Lowercase axes rotate with the frame (intrinsic), uppercase axes stay
// fixed (extrinsic).
func eulerToQuat(seq string, a0, a1, a2 float64) (mathutil.Quat, error) {
	if len(seq) != 3 {
		return mathutil.Quat{}, errors.Wrapf(ErrBadAttribute, "eulerseq %q", seq)
	}

	m := mathutil.Mat3Identity()
	for i, angle := range [3]float64{a0, a1, a2} {
		var r mathutil.Mat3
		switch seq[i] {
		case 'x', 'X':
			r = mathutil.RotX(angle)
		case 'y', 'Y':
			r = mathutil.RotY(angle)
		case 'z', 'Z':
			r = mathutil.RotZ(angle)
		default:
			return mathutil.Quat{}, errors.Wrapf(ErrBadAttribute, "eulerseq %q", seq)
		}
		if seq[i] >= 'a' {
			m = mathutil.Mat3Mul(m, r)
		} else {
			m = mathutil.Mat3Mul(r, m)
		}
	}
	return mathutil.Mat3ToQuat(m), nil
}
