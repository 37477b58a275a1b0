package sandbox

import (
	"math"

	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/vec"
)

// PreviewColor цвет полупрозрачного блока предпросмотра
const PreviewColor uint32 = 0x063970

// PlacementTuning настройки точки установки относительно игрока
type PlacementTuning struct {
	ForwardDistance float64 // [config.MinForwardDistance, config.MaxForwardDistance]
	HeightOffset    float64 // [config.MinHeightOffset, config.MaxHeightOffset]
}

// AdjustDistance меняет дистанцию установки с ограничением
func (t *PlacementTuning) AdjustDistance(delta float64) {
	t.ForwardDistance = clamp(t.ForwardDistance+delta, config.MinForwardDistance, config.MaxForwardDistance)
}

// AdjustHeight меняет смещение по высоте с ограничением
func (t *PlacementTuning) AdjustHeight(delta float64) {
	t.HeightOffset = clamp(t.HeightOffset+delta, config.MinHeightOffset, config.MaxHeightOffset)
}

// Forward направление «вперёд» на плоскости XZ для рыскания angle
func Forward(angle float64) vec.Vec3Float {
	return vec.Vec3Float{X: -math.Sin(angle), Y: 0, Z: -math.Cos(angle)}
}

// Right направление «вправо»: up × forward
func Right(forward vec.Vec3Float) vec.Vec3Float {
	return vec.Up.Cross(forward).Normalized()
}

// ComputeAnchor центр блока, который будет поставлен
func ComputeAnchor(player vec.Vec3Float, angle float64, t PlacementTuning) vec.Vec3Float {
	offset := Forward(angle).Mul(t.ForwardDistance)
	return vec.Vec3Float{
		X: player.X + offset.X,
		Y: player.Y + t.HeightOffset,
		Z: player.Z + offset.Z,
	}
}
