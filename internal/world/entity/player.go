package entity

import (
	"github.com/annel0/voxel-sandbox/internal/vec"
)

// Player управляемый игроком куб.
// Создаётся один раз при старте сессии и не удаляется.
type Player struct {
	Entity
	VerticalVelocity float64 // Вертикальная скорость за тик
	Airborne         bool    // Игрок не стоит на верхней грани блока
}

// NewPlayer создает игрока в точке появления
func NewPlayer(id uint64, spawn vec.Vec3Float, size float64) *Player {
	return &Player{
		Entity: Entity{
			ID:       id,
			Type:     EntityTypePlayer,
			Position: spawn,
			Size:     vec.Vec3Float{X: size, Y: size, Z: size},
		},
	}
}

// ApplyGravity интегрирует вертикальное движение за один тик
func (p *Player) ApplyGravity(gravity float64) {
	p.VerticalVelocity += gravity
	p.Position.Y += p.VerticalVelocity
}

// Land ставит игрока на опору высотой restY
func (p *Player) Land(restY float64) {
	p.Position.Y = restY
	p.VerticalVelocity = 0
	p.Airborne = false
}

// Jump придаёт импульс, если игрок стоит на опоре
func (p *Player) Jump(impulse float64) bool {
	if p.Airborne {
		return false
	}
	p.VerticalVelocity = impulse
	p.Airborne = true
	return true
}

// MoveHorizontal переносит игрока по X и Z, не трогая высоту
func (p *Player) MoveHorizontal(x, z float64) {
	p.Position.X = x
	p.Position.Z = z
}
