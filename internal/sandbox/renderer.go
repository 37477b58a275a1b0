package sandbox

import (
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/annel0/voxel-sandbox/internal/world/entity"
)

// Renderer получает изменения сцены. Вызовы идут из потока симуляции.
type Renderer interface {
	SpawnBlock(b world.Block)
	RemoveBlock(b world.Block)
	Render(f Frame)
}

// UIState видимость элементов интерфейса
type UIState struct {
	MenuVisible   bool
	DrawUIVisible bool
	Controls      []string // Строки меню управления, заполняются при MenuVisible
}

// Frame всё, что нужно для отрисовки одного тика
type Frame struct {
	Tick          uint64
	Player        entity.Player
	Blocks        []world.Block // В порядке вставки, земля первая
	Preview       vec.Vec3Float
	Camera        CameraTransform
	SelectedColor block.ColorIndex
	SelectedLabel string
	UI            UIState
}

// NopRenderer ничего не рисует
type NopRenderer struct{}

func (NopRenderer) SpawnBlock(world.Block)  {}
func (NopRenderer) RemoveBlock(world.Block) {}
func (NopRenderer) Render(Frame)            {}
