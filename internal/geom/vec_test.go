package geom

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 2}

	if got := a.Add(b); got != (Vec3{5, 1, 5}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 3, 1}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Dot(b); got != 8 {
		t.Errorf("Dot: got %f, expected 8", got)
	}
	if got := a.AddScaled(2, b); got != (Vec3{9, 0, 7}) {
		t.Errorf("AddScaled: got %v", got)
	}
}

func TestNorm(t *testing.T) {
	v := Vec3{3, 4, 0}
	if v.Norm2() != 25 {
		t.Errorf("Norm2: got %f", v.Norm2())
	}
	if v.Norm() != 5 {
		t.Errorf("Norm: got %f", v.Norm())
	}
	n := v.Normalize()
	if math.Abs(n.Norm()-1) > 1e-15 {
		t.Errorf("Normalize: norm %f", n.Norm())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("Normalize of zero vector should be zero")
	}
}

func TestCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if got := x.Cross(y); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross: got %v", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{0, math.Inf(1), 0}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 7) != 0 {
		t.Error("Clamp below range")
	}
	if Clamp(9, 0, 7) != 7 {
		t.Error("Clamp above range")
	}
	if Clamp(3, 0, 7) != 3 {
		t.Error("Clamp inside range")
	}
}
