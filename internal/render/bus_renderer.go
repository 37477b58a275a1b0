package render

import (
	"context"
	"encoding/json"

	"github.com/annel0/voxel-sandbox/internal/eventbus"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/sandbox"
	"github.com/annel0/voxel-sandbox/internal/world"
)

// Типы событий рендера
const (
	EventBlockSpawned  = "BlockSpawned"
	EventBlockRemoved  = "BlockRemoved"
	EventFrameRendered = "FrameRendered"
)

// Source имя источника событий рендера
const Source = "sandbox"

// BlockPayload полезная нагрузка BlockSpawned/BlockRemoved
type BlockPayload struct {
	ID        string     `json:"id"`
	Position  [3]float64 `json:"position"`
	Size      [3]float64 `json:"size"`
	Color     uint8      `json:"color"`
	RGB       uint32     `json:"rgb,omitempty"`
	Permanent bool       `json:"permanent,omitempty"`
}

// FramePayload полезная нагрузка FrameRendered
type FramePayload struct {
	Tick          uint64      `json:"tick"`
	Player        [3]float64  `json:"player"`
	Airborne      bool        `json:"airborne"`
	Blocks        int         `json:"blocks"`
	Preview       [3]float64  `json:"preview"`
	PreviewRGB    uint32      `json:"preview_rgb"`
	Eye           [3]float64  `json:"eye"`
	LookAt        [3]float64  `json:"look_at"`
	View          [16]float64 `json:"view"` // Матрица вида, по столбцам
	SelectedColor uint8       `json:"selected_color"`
	SelectedLabel string      `json:"selected_label"`
	MenuVisible   bool        `json:"menu_visible"`
	DrawUIVisible bool        `json:"draw_ui_visible"`
	Controls      []string    `json:"controls,omitempty"`
}

// BusRenderer публикует изменения сцены в шину событий.
// Кадры идут с низким приоритетом и могут отбрасываться, события блоков — нет.
type BusRenderer struct {
	ctx context.Context
	bus eventbus.EventBus
	log *logging.Logger
}

// NewBusRenderer создаёт рендерер; ctx ограничивает ожидание места в шине
func NewBusRenderer(ctx context.Context, bus eventbus.EventBus) *BusRenderer {
	return &BusRenderer{ctx: ctx, bus: bus, log: logging.GetRenderLogger()}
}

func (r *BusRenderer) SpawnBlock(b world.Block) {
	r.publish(EventBlockSpawned, eventbus.PriorityHigh, NewBlockPayload(b))
}

func (r *BusRenderer) RemoveBlock(b world.Block) {
	r.publish(EventBlockRemoved, eventbus.PriorityHigh, NewBlockPayload(b))
}

func (r *BusRenderer) Render(f sandbox.Frame) {
	r.publish(EventFrameRendered, eventbus.PriorityLow, NewFramePayload(f))
}

func (r *BusRenderer) publish(eventType string, priority int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.log.Error("Ошибка сериализации %s: %v", eventType, err)
		return
	}
	if err := r.bus.Publish(r.ctx, eventbus.NewEnvelope(Source, eventType, priority, data)); err != nil {
		r.log.Warn("Событие %s не опубликовано: %v", eventType, err)
	}
}

// NewBlockPayload преобразует блок в полезную нагрузку события
func NewBlockPayload(b world.Block) BlockPayload {
	rgb, _ := b.RGB()
	return BlockPayload{
		ID:        b.ID.String(),
		Position:  [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
		Size:      [3]float64{b.Size.X, b.Size.Y, b.Size.Z},
		Color:     uint8(b.Color),
		RGB:       rgb,
		Permanent: b.Permanent,
	}
}

// NewFramePayload преобразует кадр в полезную нагрузку события.
// Список блоков не передаётся: он восстанавливается из BlockSpawned/BlockRemoved.
func NewFramePayload(f sandbox.Frame) FramePayload {
	p := f.Player.Position
	return FramePayload{
		Tick:          f.Tick,
		Player:        [3]float64{p.X, p.Y, p.Z},
		Airborne:      f.Player.Airborne,
		Blocks:        len(f.Blocks),
		Preview:       [3]float64{f.Preview.X, f.Preview.Y, f.Preview.Z},
		PreviewRGB:    sandbox.PreviewColor,
		Eye:           [3]float64{f.Camera.Eye.X, f.Camera.Eye.Y, f.Camera.Eye.Z},
		LookAt:        [3]float64{f.Camera.LookAt.X, f.Camera.LookAt.Y, f.Camera.LookAt.Z},
		View:          [16]float64(f.Camera.View()),
		SelectedColor: uint8(f.SelectedColor),
		SelectedLabel: f.SelectedLabel,
		MenuVisible:   f.UI.MenuVisible,
		DrawUIVisible: f.UI.DrawUIVisible,
		Controls:      f.UI.Controls,
	}
}
