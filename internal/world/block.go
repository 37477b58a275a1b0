package world

import (
	"github.com/annel0/voxel-sandbox/internal/physics"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/google/uuid"
)

// UnitSize размер обычного блока
var UnitSize = vec.Vec3Float{X: 1, Y: 1, Z: 1}

// Block представляет собой блок в игровом мире.
// Идентичность блока определяется ID, а не позицией: блоки могут стоять в одной точке.
type Block struct {
	ID        uuid.UUID        // Уникальный идентификатор блока
	Position  vec.Vec3Float    // Центр блока
	Size      vec.Vec3Float    // Полный размер по осям
	Color     block.ColorIndex // Номер цвета в палитре (0 у невидимой земли)
	Permanent bool             // Неудаляемый блок (земля)
}

// NewBlock создаёт единичный блок указанного цвета
func NewBlock(pos vec.Vec3Float, color block.ColorIndex) Block {
	return Block{
		ID:       uuid.New(),
		Position: pos,
		Size:     UnitSize,
		Color:    color,
	}
}

// NewGround создаёт постоянную плиту земли
func NewGround(center, size vec.Vec3Float) Block {
	return Block{
		ID:        uuid.New(),
		Position:  center,
		Size:      size,
		Permanent: true,
	}
}

// Bounds возвращает настоящий AABB блока
func (b Block) Bounds() physics.AABB {
	return physics.FromCenter(b.Position, b.Size)
}

// RGB возвращает цвет блока из палитры
func (b Block) RGB() (uint32, bool) {
	return block.Color(b.Color)
}

// Removable предикат для команд удаления: всё, кроме постоянных блоков
func Removable(b Block) bool {
	return !b.Permanent
}
