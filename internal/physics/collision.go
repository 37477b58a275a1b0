package physics

import (
	"math"

	"github.com/annel0/voxel-sandbox/internal/vec"
)

// AABB представляет выровненный по осям ограничивающий параллелепипед
type AABB struct {
	Min vec.Vec3Float
	Max vec.Vec3Float
}

// FromCenter создаёт AABB по центру и полному размеру по каждой оси
func FromCenter(center, size vec.Vec3Float) AABB {
	half := size.Mul(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// Center возвращает центр параллелепипеда
func (b AABB) Center() vec.Vec3Float {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size возвращает размеры параллелепипеда
func (b AABB) Size() vec.Vec3Float {
	return b.Max.Sub(b.Min)
}

// Intersects проверяет пересечение двух коллайдеров.
// Касание гранями считается пересечением.
func (b AABB) Intersects(other AABB) bool {
	return !(other.Max.X < b.Min.X || other.Min.X > b.Max.X ||
		other.Max.Y < b.Min.Y || other.Min.Y > b.Max.Y ||
		other.Max.Z < b.Min.Z || other.Min.Z > b.Max.Z)
}

// UnitOverlap проверяет, перекрываются ли два единичных куба с центрами a и b.
// Расстояние между центрами по каждой оси должно быть строго меньше 1.
func UnitOverlap(a, b vec.Vec3Float) bool {
	return math.Abs(a.X-b.X) < 1 &&
		math.Abs(a.Y-b.Y) < 1 &&
		math.Abs(a.Z-b.Z) < 1
}
