// Package rotation provides the shared quaternion primitives used by the
// attitude integrators: the exponential map from rotation vectors to unit
// quaternions, and an orthonormal-basis fallback for degenerate geometry.
package rotation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation vectors shorter than this are treated with the first-order
// quaternion approximation to avoid dividing by a near-zero magnitude.
const smallAngle = 1e-10

// ExpMap converts an axis-angle vector v = θ·n̂ into the unit quaternion for
// a rotation of θ radians about n̂.
func ExpMap(v mgl64.Vec3) mgl64.Quat {
	theta := v.Len()
	if theta < smallAngle {
		q := mgl64.Quat{W: 1, V: v.Mul(0.5)}
		return q.Normalize()
	}
	return mgl64.QuatRotate(theta, v.Mul(1/theta))
}

// ToWorld rotates a body-frame vector into the world frame through the
// body→world orientation q.
func ToWorld(q mgl64.Quat, v mgl64.Vec3) mgl64.Vec3 {
	return q.Rotate(v)
}

// ToBody rotates a world-frame vector into the body frame. q must be unit.
func ToBody(q mgl64.Quat, v mgl64.Vec3) mgl64.Vec3 {
	return q.Conjugate().Rotate(v)
}

// Orthonormal returns two unit vectors t1, t2 such that {t1, t2, n̂} is a
// right-handed orthonormal basis. When n is near-parallel to the z axis an
// alternate reference axis is picked, so the result is always well defined
// and never NaN.
func Orthonormal(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	nHat := n.Normalize()
	ref := mgl64.Vec3{0, 0, 1}
	if math.Abs(nHat.Dot(ref)) > 0.9 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	t1 := ref.Cross(nHat).Normalize()
	t2 := nHat.Cross(t1)
	return t1, t2
}
