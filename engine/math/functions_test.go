package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance float32 = 1e-5

func TestMat4TranslationInverse(t *testing.T) {
	tr := NewMat4Translation(NewVec3(3.5, -2.0, 7.25))
	got := tr.Mul(tr.Inverse())
	assert.True(t, got.Compare(NewMat4Identity(), tolerance))
}

func TestMat4EulerRotationInverse(t *testing.T) {
	cases := map[string]Mat4{
		"x": NewMat4EulerX(0.7),
		"y": NewMat4EulerY(-1.2),
		"z": NewMat4EulerZ(2.4),
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			got := r.Mul(r.Inverse())
			assert.True(t, got.Compare(NewMat4Identity(), tolerance))
		})
	}
}

func TestMat4RotationInverseIsTranspose(t *testing.T) {
	r := NewMat4EulerXYZ(0.3, 1.1, -0.8)
	assert.True(t, r.Inverse().Compare(r.Transposed(), tolerance))
}

func TestMat4MulAssociativity(t *testing.T) {
	a := NewMat4Translation(NewVec3(1, 2, 3))
	b := NewMat4EulerY(0.9)
	c := NewMat4Scale(NewVec3(2, 2, 2))
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	assert.True(t, left.Compare(right, tolerance))
}

func TestMat4MulAppliesRightOperandFirst(t *testing.T) {
	translation := NewVec3(4, 0, 0)
	tr := NewMat4Translation(translation)
	sc := NewMat4Scale(NewVec3(2, 2, 2))

	// Scale first, translate second: translation column stays untouched.
	ts := tr.Mul(sc)
	assert.InDelta(t, 4.0, ts.Data[12], float64(tolerance))

	// Translate first, scale second: the translation is scaled too.
	st := sc.Mul(tr)
	assert.InDelta(t, 8.0, st.Data[12], float64(tolerance))
}

func TestMat4MulIdentity(t *testing.T) {
	a := NewMat4EulerXYZ(0.4, 0.5, 0.6)
	assert.True(t, a.Mul(NewMat4Identity()).Compare(a, tolerance))
	assert.True(t, NewMat4Identity().Mul(a).Compare(a, tolerance))
}

func TestMat4PerspectiveDepthRange(t *testing.T) {
	near := float32(0.1)
	far := float32(1000.0)
	p := NewMat4Perspective(K_PI/4.0, 16.0/9.0, near, far)

	// Depth must land in [0, 1]: m[10] = far/(near-far), m[14] = near*far/(near-far).
	assert.InDelta(t, float64(far/(near-far)), float64(p.Data[10]), float64(tolerance))
	assert.InDelta(t, float64(near*far/(near-far)), float64(p.Data[14]), float64(tolerance))
	assert.InDelta(t, -1.0, float64(p.Data[11]), float64(tolerance))
	// No translation in x/y.
	assert.Zero(t, p.Data[12])
	assert.Zero(t, p.Data[13])
}

func TestMat4EulerXYZAppliesXFirst(t *testing.T) {
	x, y, z := float32(0.3), float32(-0.7), float32(1.2)
	composed := NewMat4EulerZ(z).Mul(NewMat4EulerY(y)).Mul(NewMat4EulerX(x))
	assert.True(t, NewMat4EulerXYZ(x, y, z).Compare(composed, tolerance))
}

func TestMat4BasisVectors(t *testing.T) {
	// An identity view looks down -Z.
	view := NewMat4Identity()
	require.True(t, view.Forward().Compare(NewVec3(0, 0, -1), tolerance))
	require.True(t, view.Backward().Compare(NewVec3(0, 0, 1), tolerance))
	require.True(t, view.Left().Compare(NewVec3(-1, 0, 0), tolerance))
	require.True(t, view.Right().Compare(NewVec3(1, 0, 0), tolerance))

	// Yawed 90 degrees left, forward swings to -X.
	rot := NewMat4EulerY(K_HALF_PI)
	viewYawed := rot.Inverse()
	assert.True(t, viewYawed.Forward().Compare(NewVec3(-1, 0, 0), 1e-4))
}

func TestVec3Ops(t *testing.T) {
	v := NewVec3(3, 4, 0)
	assert.InDelta(t, 5.0, float64(v.Length()), float64(tolerance))
	assert.InDelta(t, 1.0, float64(v.Normalized().Length()), float64(tolerance))

	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)
	assert.True(t, a.Cross(b).Compare(NewVec3(0, 0, 1), tolerance))
	assert.Zero(t, a.Dot(b))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.Equal(t, 3, Clamp(3, 0, 5))
	assert.InDelta(t, 1.0/30.0, Clamp(0.05, 0.0, 1.0/30.0), 1e-9)
}
