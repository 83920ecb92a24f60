package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func TestLocalRotateZeroAngle(t *testing.T) {
	m := LocalRotate(mgl32.Vec3{3, -2, 5}, AxisZ, 0)
	if d := mat4Diff(m, mgl32.Ident4()); d > eps {
		t.Errorf("zero rotation should be identity, got %v", m)
	}
}

func TestLocalRotateKeepsPivot(t *testing.T) {
	pivot := mgl32.Vec3{1, 2, 3}
	m := LocalRotate(pivot, AxisZ, 73)

	got := mgl32.TransformCoordinate(pivot, m)
	if d := vec3Diff(got, pivot); d > eps {
		t.Errorf("pivot moved: got %v, want %v", got, pivot)
	}
}

func TestLocalRotateAboutPivot(t *testing.T) {
	// 90 degrees about Z through (1,0,0): (2,0,0) -> (1,1,0)
	m := SpinZ(mgl32.Vec3{1, 0, 0}, 90)
	got := mgl32.TransformCoordinate(mgl32.Vec3{2, 0, 0}, m)
	want := mgl32.Vec3{1, 1, 0}
	if d := vec3Diff(got, want); d > eps {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLocalRotateZeroAxis(t *testing.T) {
	m := LocalRotate(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 45)
	if m != mgl32.Ident4() {
		t.Errorf("zero axis should give identity, got %v", m)
	}
}

func TestSpinIsAdditive(t *testing.T) {
	pivot := mgl32.Vec3{0.5, -1, 2}
	for _, theta := range []float32{1, 17.5, 90, -33} {
		twice := SpinZ(pivot, theta).Mul4(SpinZ(pivot, theta))
		once := SpinZ(pivot, 2*theta)
		if d := mat4Diff(twice, once); d > eps {
			t.Errorf("theta=%v: spin(θ)·spin(θ) != spin(2θ)\n%v\n%v", theta, twice, once)
		}
	}
}

func TestSpinFullTurn(t *testing.T) {
	pivot := mgl32.Vec3{2, 3, 0}
	m := mgl32.Ident4()
	for i := 0; i < 360; i++ {
		m = SpinZ(pivot, 1).Mul4(m)
	}
	if d := mat4Diff(m, mgl32.Ident4()); d > 1e-3 {
		t.Errorf("360 one-degree steps should return to identity, got %v", m)
	}
}

func TestTranslation(t *testing.T) {
	m := mgl32.Translate3D(5, 10, 15).Mul4(mgl32.HomogRotate3DY(0.3))
	got := Translation(m)
	if got != (mgl32.Vec3{5, 10, 15}) {
		t.Errorf("Translation: got %v, want (5, 10, 15)", got)
	}
}

func TestNormalMatrixRotation(t *testing.T) {
	r := mgl32.HomogRotate3D(0.7, mgl32.Vec3{1, 1, 0}.Normalize())
	got := NormalMatrix(r)
	if d := mat3Diff(got, r.Mat3()); d > eps {
		t.Errorf("normal matrix of a rotation should be the rotation\n%v\n%v", got, r.Mat3())
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	r := mgl32.HomogRotate3D(1.1, mgl32.Vec3{0, 1, 1}.Normalize())
	model := r.Mul4(mgl32.Scale3D(3, 3, 3))

	// Uniform scale only changes length, never direction.
	got := NormalMatrix(model).Mul(3)
	if d := mat3Diff(got, r.Mat3()); d > eps {
		t.Errorf("uniform scale should not distort normals\n%v\n%v", got, r.Mat3())
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	model := mgl32.Scale3D(1, 4, 1)
	got := NormalMatrix(model)
	if d := mat3Diff(got, model.Mat3()); d < eps {
		t.Errorf("non-uniform scale should differ from the naive upper 3x3, got %v", got)
	}

	// A 45 degree surface normal must stay perpendicular to the scaled surface.
	tangent := mgl32.Vec3{1, -1, 0}
	normal := mgl32.Vec3{1, 1, 0}
	scaledTangent := model.Mat3().Mul3x1(tangent)
	scaledNormal := got.Mul3x1(normal)
	if d := scaledTangent.Dot(scaledNormal); abs(d) > eps {
		t.Errorf("transformed normal not perpendicular to surface, dot=%f", d)
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	got := NormalMatrix(mgl32.Scale3D(0, 1, 1))
	if got != mgl32.Ident3() {
		t.Errorf("singular matrix should yield identity, got %v", got)
	}
}

func TestAspect(t *testing.T) {
	tests := []struct {
		w, h int
		want float32
	}{
		{800, 800, 1},
		{1600, 800, 2},
		{0, 600, 1},
		{600, 0, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := Aspect(tt.w, tt.h); got != tt.want {
			t.Errorf("Aspect(%d, %d) = %f, want %f", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestFromColumnMajor64(t *testing.T) {
	in := [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		5, 10, 15, 1,
	}
	got := FromColumnMajor64(in)
	if got != mgl32.Translate3D(5, 10, 15) {
		t.Errorf("got %v", got)
	}
}

func TestComposeDefaults(t *testing.T) {
	got := Compose([3]float64{}, [4]float64{}, [3]float64{})
	if got != mgl32.Ident4() {
		t.Errorf("empty TRS should be identity, got %v", got)
	}
}

func TestComposeOrder(t *testing.T) {
	// 90 degrees about Y as x, y, z, w
	s := math.Sqrt(0.5)
	got := Compose([3]float64{1, 2, 3}, [4]float64{0, s, 0, s}, [3]float64{2, 2, 2})

	// T * R * S applied to (1,0,0): scale -> (2,0,0), rotate -> (0,0,-2), translate.
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, got)
	want := mgl32.Vec3{1, 2, 1}
	if d := vec3Diff(p, want); d > eps {
		t.Errorf("got %v, want %v", p, want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// maxDiff is the largest absolute element difference. mgl32's ApproxEqual
// helpers are relative and reject tiny residues against an exact zero.
func maxDiff(a, b []float32) float32 {
	var d float32
	for i := range a {
		if x := abs(a[i] - b[i]); x > d {
			d = x
		}
	}
	return d
}

func mat4Diff(a, b mgl32.Mat4) float32 { return maxDiff(a[:], b[:]) }
func mat3Diff(a, b mgl32.Mat3) float32 { return maxDiff(a[:], b[:]) }
func vec3Diff(a, b mgl32.Vec3) float32 { return maxDiff(a[:], b[:]) }
