package entity

import (
	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/vec"
)

// EntityType представляет тип сущности
type EntityType uint16

const (
	EntityTypePlayer EntityType = iota
)

// Entity представляет базовую сущность в мире
type Entity struct {
	ID       uint64        // Уникальный идентификатор сущности
	Type     EntityType    // Тип сущности
	Position vec.Vec3Float // Центр хитбокса
	Size     vec.Vec3Float // Размер хитбокса
}

// Bounds возвращает AABB сущности в текущей позиции
func (e *Entity) Bounds() physics.AABB {
	return physics.FromCenter(e.Position, e.Size)
}

// HalfHeight возвращает половину высоты хитбокса
func (e *Entity) HalfHeight() float64 {
	return e.Size.Y / 2
}
