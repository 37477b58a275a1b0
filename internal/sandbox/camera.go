package sandbox

import (
	"math"

	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// Пределы наклона камеры
const (
	MinElevation = 0.1
	MaxElevation = math.Pi / 2
)

// OrbitCamera параметры камеры, вращающейся вокруг игрока
type OrbitCamera struct {
	Angle     float64 // Рыскание, радианы
	Elevation float64 // Наклон, радианы, [MinElevation, MaxElevation]
	Radius    float64 // Расстояние до игрока, не ограничено
}

// Tilt меняет наклон с ограничением
func (o *OrbitCamera) Tilt(delta float64) {
	o.Elevation = clamp(o.Elevation+delta, MinElevation, MaxElevation)
}

// CameraTransform положение камеры и точка, на которую она смотрит
type CameraTransform struct {
	Eye    vec.Vec3Float
	LookAt vec.Vec3Float
}

// DeriveTransform вычисляет камеру по позиции игрока
func DeriveTransform(player vec.Vec3Float, o OrbitCamera, verticalOffset float64) CameraTransform {
	cosEl := math.Cos(o.Elevation)
	eye := vec.Vec3Float{
		X: player.X + o.Radius*math.Sin(o.Angle)*cosEl,
		Y: player.Y + o.Radius*math.Sin(o.Elevation) + verticalOffset,
		Z: player.Z + o.Radius*math.Cos(o.Angle)*cosEl,
	}
	return CameraTransform{Eye: eye, LookAt: player}
}

// viewEpsilon меньшие расстояния считаются совпадением точек
const viewEpsilon = 1e-9

// View матрица вида для рендерера.
// При нулевом радиусе камера совпадает с игроком: возвращается единичная матрица.
// Если камера ровно над игроком, «верх» берётся по -Z.
func (c CameraTransform) View() mgl64.Mat4 {
	dir := c.LookAt.Sub(c.Eye)
	if dir.Length() < viewEpsilon {
		return mgl64.Ident4()
	}

	up := vec.Up
	if dir.Normalized().Cross(up).Length() < viewEpsilon {
		up = vec.Vec3Float{Z: -1}
	}
	return mgl64.LookAtV(c.Eye.ToMgl(), c.LookAt.ToMgl(), up.ToMgl())
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
