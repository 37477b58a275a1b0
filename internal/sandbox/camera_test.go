package sandbox

import (
	"math"
	"testing"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestDeriveTransform(t *testing.T) {
	player := vec.Vec3Float{X: 0, Y: 1, Z: 0}
	orbit := OrbitCamera{Angle: 0, Elevation: 15 * math.Pi / 180, Radius: 5}

	cam := DeriveTransform(player, orbit, 2)

	assert.InDelta(t, 0, cam.Eye.X, 1e-12)
	assert.InDelta(t, 1+5*math.Sin(orbit.Elevation)+2, cam.Eye.Y, 1e-12)
	assert.InDelta(t, 5*math.Cos(orbit.Elevation), cam.Eye.Z, 1e-12)
	assert.Equal(t, player, cam.LookAt)
}

func TestDeriveTransform_Yaw(t *testing.T) {
	orbit := OrbitCamera{Angle: math.Pi / 2, Elevation: MinElevation, Radius: 4}
	cam := DeriveTransform(vec.Vec3Float{}, orbit, 0)

	// При повороте на 90° камера уходит на +X
	assert.InDelta(t, 4*math.Cos(MinElevation), cam.Eye.X, 1e-12)
	assert.InDelta(t, 0, cam.Eye.Z, 1e-12)
}

func TestCameraTransform_View(t *testing.T) {
	cam := DeriveTransform(vec.Vec3Float{X: 3, Y: 1, Z: -2}, OrbitCamera{Angle: 0.7, Elevation: 0.4, Radius: 6}, 2)
	view := cam.View()

	eye := view.Mul4x1(cam.Eye.ToMgl().Vec4(1))
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-9, "Камера в начале координат вида")

	target := view.Mul4x1(cam.LookAt.ToMgl().Vec4(1))
	assert.InDelta(t, 0, target.X(), 1e-9)
	assert.InDelta(t, 0, target.Y(), 1e-9)
	assert.InDelta(t, -cam.Eye.DistanceTo(cam.LookAt), target.Z(), 1e-9, "Цель лежит на оси -Z")

	assert.Equal(t, 1.0, view.At(3, 3))
}

func TestOrbitCamera_Tilt(t *testing.T) {
	o := OrbitCamera{Elevation: 1}
	o.Tilt(10)
	assert.Equal(t, MaxElevation, o.Elevation)
	o.Tilt(-10)
	assert.Equal(t, MinElevation, o.Elevation)
}

func assertFinite(t *testing.T, m mgl64.Mat4) {
	t.Helper()
	for i, v := range m {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "элемент %d = %v", i, v)
	}
}

func TestCameraTransform_ViewDegenerate(t *testing.T) {
	player := vec.Vec3Float{X: 1, Y: 1, Z: 1}

	// Радиус 0 без смещения: камера в точке игрока
	cam := DeriveTransform(player, OrbitCamera{Angle: 0, Elevation: 0.3, Radius: 0}, 0)
	assert.Equal(t, mgl64.Ident4(), cam.View())

	// Радиус 0 со смещением: камера строго над игроком
	cam = DeriveTransform(player, OrbitCamera{Angle: 0, Elevation: 0.3, Radius: 0}, 2)
	view := cam.View()
	assertFinite(t, view)
	eye := view.Mul4x1(cam.Eye.ToMgl().Vec4(1))
	assert.InDelta(t, 0, eye.Vec3().Len(), 1e-9)
	target := view.Mul4x1(cam.LookAt.ToMgl().Vec4(1))
	assert.InDelta(t, -2, target.Z(), 1e-9)

	assertFinite(t, DeriveTransform(player, OrbitCamera{Elevation: MaxElevation, Radius: 5}, 2).View())
}
