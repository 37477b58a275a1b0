package render

import (
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/sandbox"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
)

// LogRenderer пишет события сцены в лог.
// Кадры логируются раз в FrameEvery тиков (0 — никогда).
type LogRenderer struct {
	FrameEvery uint64
	log        *logging.Logger
}

// NewLogRenderer создаёт рендерер поверх логгера компонента render
func NewLogRenderer(frameEvery uint64) *LogRenderer {
	return &LogRenderer{FrameEvery: frameEvery, log: logging.GetRenderLogger()}
}

func (r *LogRenderer) SpawnBlock(b world.Block) {
	if b.Permanent {
		r.log.Info("🌍 Земля %.0fx%.0fx%.0f в %+v", b.Size.X, b.Size.Y, b.Size.Z, b.Position)
		return
	}
	r.log.Debug("➕ Блок %s (%s) в (%.2f, %.2f, %.2f)",
		b.ID, block.ColorName(b.Color), b.Position.X, b.Position.Y, b.Position.Z)
}

func (r *LogRenderer) RemoveBlock(b world.Block) {
	r.log.Debug("➖ Блок %s удалён из (%.2f, %.2f, %.2f)", b.ID, b.Position.X, b.Position.Y, b.Position.Z)
}

func (r *LogRenderer) Render(f sandbox.Frame) {
	if r.FrameEvery == 0 || f.Tick%r.FrameEvery != 0 {
		return
	}
	p := f.Player.Position
	r.log.Info("🎥 Тик %d: игрок (%.2f, %.2f, %.2f) airborne=%t, блоков %d, %s",
		f.Tick, p.X, p.Y, p.Z, f.Player.Airborne, len(f.Blocks), f.SelectedLabel)
}

// Fanout раздаёт вызовы нескольким рендерерам по порядку
type Fanout []sandbox.Renderer

func (f Fanout) SpawnBlock(b world.Block) {
	for _, r := range f {
		r.SpawnBlock(b)
	}
}

func (f Fanout) RemoveBlock(b world.Block) {
	for _, r := range f {
		r.RemoveBlock(b)
	}
}

func (f Fanout) Render(frame sandbox.Frame) {
	for _, r := range f {
		r.Render(frame)
	}
}
