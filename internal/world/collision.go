package world

import (
	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/vec"
)

// CollisionResolver отвечает на вопросы о столкновениях с блоками мира
type CollisionResolver interface {
	// TestCollision проверяет, пересекается ли единичный куб с центром pos
	// хотя бы с одним блоком мира
	TestCollision(pos vec.Vec3Float) bool

	// ResolveVertical возвращает высоту, на которую нужно поставить центр box,
	// если он пересекает какой-либо блок
	ResolveVertical(box physics.AABB) (float64, bool)
}

// LinearResolver перебирает все блоки мира по порядку.
// O(n) на запрос; при большом количестве блоков заменяется на сеточный индекс.
type LinearResolver struct {
	world *World
}

// NewLinearResolver создаёт резолвер поверх мира
func NewLinearResolver(w *World) *LinearResolver {
	return &LinearResolver{world: w}
}

// TestCollision использует упрощённый единичный тест для всех блоков,
// включая землю, независимо от её настоящих размеров.
func (r *LinearResolver) TestCollision(pos vec.Vec3Float) bool {
	hit := false
	r.world.Each(func(b Block) bool {
		if physics.UnitOverlap(pos, b.Position) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

// ResolveVertical берёт первый по порядку добавления блок, чей AABB
// пересекает box, и возвращает верх блока плюс половину высоты box.
func (r *LinearResolver) ResolveVertical(box physics.AABB) (float64, bool) {
	halfHeight := box.Size().Y / 2
	var (
		rest  float64
		found bool
	)
	r.world.Each(func(b Block) bool {
		bounds := b.Bounds()
		if box.Intersects(bounds) {
			rest = bounds.Max.Y + halfHeight
			found = true
			return false
		}
		return true
	})
	return rest, found
}
