package material

import (
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
)

func TestPhong_DiffuseTerm(t *testing.T) {
	phong := NewPhong(core.NewVec3(1, 0.5, 0), core.Vec3{})
	n := core.NewVec3(0, 0, -1)
	white := core.NewVec3(1, 1, 1)

	tests := []struct {
		name     string
		l        core.Vec3
		expected core.Vec3
	}{
		{"head on", core.NewVec3(0, 0, -1), core.NewVec3(1, 0.5, 0)},
		{"grazing 60 degrees", core.NewVec3(math.Sin(math.Pi/3), 0, -math.Cos(math.Pi/3)), core.NewVec3(0.5, 0.25, 0)},
		{"perpendicular", core.NewVec3(1, 0, 0), core.Vec3{}},
		{"behind", core.NewVec3(0, 0, 1), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := phong.DiffuseTerm(n, tt.l, white)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPhong_DiffuseTermUsesLightColor(t *testing.T) {
	phong := NewPhong(core.NewVec3(1, 1, 1), core.Vec3{})
	n := core.NewVec3(0, 1, 0)
	got := phong.DiffuseTerm(n, n, core.NewVec3(0.2, 0.4, 0.6))
	if got.Subtract(core.NewVec3(0.2, 0.4, 0.6)).Length() > 1e-12 {
		t.Errorf("Expected light color to modulate diffuse, got %v", got)
	}
}

func TestPhong_SpecularTerm(t *testing.T) {
	phong := NewPhong(core.Vec3{}, core.NewVec3(1, 1, 1))
	white := core.NewVec3(1, 1, 1)
	// Surface facing the camera at the origin; light direction tilted 30 degrees
	n := core.NewVec3(0, 0, -1)
	l := core.NewVec3(0.5, 0, -math.Sqrt(3)/2)

	// R = L - 2(N·L)N mirrors the z component
	r := Reflect(l, n)
	expectedR := core.NewVec3(0.5, 0, math.Sqrt(3)/2)
	if r.Subtract(expectedR).Length() > 1e-12 {
		t.Fatalf("Expected reflection %v, got %v", expectedR, r)
	}

	t.Run("aligned with view", func(t *testing.T) {
		got := phong.SpecularTerm(n, l, expectedR, white, 20)
		if math.Abs(got.X-1) > 1e-9 {
			t.Errorf("Expected full highlight, got %v", got)
		}
	})

	t.Run("exponent falloff", func(t *testing.T) {
		v := core.NewVec3(0, 0, 1)
		vr := v.Dot(expectedR)
		got := phong.SpecularTerm(n, l, v, white, 10)
		if math.Abs(got.Y-math.Pow(vr, 10)) > 1e-9 {
			t.Errorf("Expected %f, got %f", math.Pow(vr, 10), got.Y)
		}
	})

	t.Run("reflection away from viewer", func(t *testing.T) {
		got := phong.SpecularTerm(n, l, expectedR.Multiply(-1), white, 20)
		if !got.IsZero() {
			t.Errorf("Expected zero specular, got %v", got)
		}
	})

	t.Run("light behind surface", func(t *testing.T) {
		got := phong.SpecularTerm(n, l.Multiply(-1), expectedR, white, 20)
		if !got.IsZero() {
			t.Errorf("Expected zero specular when N·L <= 0, got %v", got)
		}
	})
}
