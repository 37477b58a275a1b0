package sandbox

import (
	"context"
	"math"
	"testing"

	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/input"
	"github.com/annel0/voxel-sandbox/internal/metrics"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer запоминает вызовы рендерера
type recordingRenderer struct {
	spawned []world.Block
	removed []world.Block
	frames  []Frame
}

func (r *recordingRenderer) SpawnBlock(b world.Block)  { r.spawned = append(r.spawned, b) }
func (r *recordingRenderer) RemoveBlock(b world.Block) { r.removed = append(r.removed, b) }
func (r *recordingRenderer) Render(f Frame)            { r.frames = append(r.frames, f) }

type harness struct {
	t        *testing.T
	session  *Session
	input    *input.State
	renderer *recordingRenderer
	metrics  *metrics.SimMetrics
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	r := &recordingRenderer{}
	m := metrics.NewSimMetrics(prometheus.NewRegistry())
	s, err := NewSession(cfg, Options{Renderer: r, Metrics: m})
	require.NoError(t, err)
	return &harness{t: t, session: s, input: input.NewState(s.Bindings()), renderer: r, metrics: m}
}

func (h *harness) step(n int) Frame {
	var f Frame
	for i := 0; i < n; i++ {
		f = h.session.Step(context.Background(), h.input.Snapshot())
	}
	return f
}

// tap нажимает и отпускает клавиши в пределах одного тика
func (h *harness) tap(keys ...input.Key) Frame {
	for _, k := range keys {
		h.input.Press(k)
	}
	for _, k := range keys {
		h.input.Release(k)
	}
	return h.step(1)
}

func (h *harness) placed() int {
	return h.session.World.Stats().Placed
}

func TestNewSession(t *testing.T) {
	h := newHarness(t, nil)
	s := h.session

	assert.Equal(t, 1, s.World.Len(), "Мир начинается с земли")
	assert.True(t, s.World.Ground().Permanent)
	assert.Equal(t, vec.Vec3Float{X: 0, Y: 0.5, Z: 0}, s.Player.Position)
	assert.Equal(t, block.ColorIndex(1), s.SelectedColor)
	assert.InDelta(t, 15*math.Pi/180, s.Orbit.Elevation, 1e-12)
	require.Len(t, h.renderer.spawned, 1, "Земля передаётся рендереру")
	assert.True(t, h.renderer.spawned[0].Permanent)
}

func TestNewSession_InvalidControls(t *testing.T) {
	cfg := config.Default()
	cfg.Controls = map[string][]string{"fly": {"KeyF"}}
	_, err := NewSession(cfg, Options{})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestStep_SettlesOnGround(t *testing.T) {
	h := newHarness(t, nil)

	f := h.step(1)
	assert.InDelta(t, 1.0, f.Player.Position.Y, 1e-12, "Верх земли 0.5 плюс половина игрока")
	assert.False(t, f.Player.Airborne)
	assert.Zero(t, f.Player.VerticalVelocity)

	f = h.step(10)
	assert.InDelta(t, 1.0, f.Player.Position.Y, 1e-12, "Игрок стоит на месте")
	assert.Equal(t, uint64(11), f.Tick)
	assert.Len(t, h.renderer.frames, 11)
}

func TestStep_FreeFallClosedForm(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Player.Spawn = [3]float64{0, 10, 0} })
	g := -0.01

	for n := 1; n <= 20; n++ {
		f := h.step(1)
		want := 10 + g*float64(n*(n+1))/2
		assert.InDelta(t, want, f.Player.Position.Y, 1e-9, "тик %d", n)
		assert.True(t, f.Player.Airborne)
	}
}

func TestStep_JumpOnlyFromGround(t *testing.T) {
	h := newHarness(t, nil)
	h.step(1)

	h.input.Press(input.KeySpace)
	f := h.step(1)
	assert.True(t, f.Player.Airborne)
	assert.InDelta(t, 0.15, f.Player.VerticalVelocity, 1e-12)

	// Пробел удерживается, но в воздухе прыжок не повторяется
	f = h.step(1)
	assert.True(t, f.Player.Airborne)
	assert.InDelta(t, 0.14, f.Player.VerticalVelocity, 1e-12)
	assert.InDelta(t, 1.14, f.Player.Position.Y, 1e-12)

	h.input.Release(input.KeySpace)
	for i := 0; i < 100 && h.session.Player.Airborne; i++ {
		h.step(1)
	}
	assert.False(t, h.session.Player.Airborne, "Игрок приземлился")
	assert.InDelta(t, 1.0, h.session.Player.Position.Y, 1e-12)
}

func TestStep_HorizontalMovement(t *testing.T) {
	tests := []struct {
		name  string
		keys  []input.Key
		wantX float64
		wantZ float64
	}{
		{"forward", []input.Key{input.KeyW}, 0, -0.1},
		{"back", []input.Key{input.KeyS}, 0, 0.1},
		{"left", []input.Key{input.KeyA}, -0.1, 0},
		{"right", []input.Key{input.KeyD}, 0.1, 0},
		{"opposite cancel", []input.Key{input.KeyW, input.KeyS}, 0, 0},
		{"diagonal sums", []input.Key{input.KeyW, input.KeyA}, -0.1, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			h.step(1)
			for _, k := range tt.keys {
				h.input.Press(k)
			}
			f := h.step(1)
			assert.InDelta(t, tt.wantX, f.Player.Position.X, 1e-12)
			assert.InDelta(t, tt.wantZ, f.Player.Position.Z, 1e-12)
		})
	}
}

func TestStep_MovementBlockedByBlock(t *testing.T) {
	h := newHarness(t, nil)
	h.step(1)
	b := h.session.Place(context.Background())
	assert.InDelta(t, -1, b.Position.Z, 1e-12)

	h.input.Press(input.KeyW)
	f := h.step(5)
	assert.InDelta(t, 0, f.Player.Position.Z, 1e-12, "Сдвиг в блок отменяется целиком")
	// Опора проверяется и в тиках с отклонённым сдвигом
	assert.InDelta(t, 1.0, f.Player.Position.Y, 1e-12)
	assert.False(t, f.Player.Airborne)
	assert.Zero(t, f.Player.VerticalVelocity)

	// Боковое движение остаётся свободным
	h.input.Release(input.KeyW)
	h.input.Press(input.KeyD)
	f = h.step(1)
	assert.InDelta(t, 0.1, f.Player.Position.X, 1e-12)
}

func TestStep_PlacementScenario(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	first := h.session.Place(ctx)
	assert.InDelta(t, 0, first.Position.X, 1e-12)
	assert.InDelta(t, 0.5, first.Position.Y, 1e-12)
	assert.InDelta(t, -1, first.Position.Z, 1e-12)
	rgb, ok := first.RGB()
	require.True(t, ok)
	assert.Equal(t, block.Palette()[0], rgb)

	second := h.session.Place(ctx)
	assert.Equal(t, first.Position, second.Position, "Повторная установка ставит блок в ту же точку")
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, h.placed())
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.BlocksPlaced))
}

func TestStep_PlaceKey(t *testing.T) {
	h := newHarness(t, nil)
	h.step(1)

	// Быстрое нажатие внутри тика не теряется
	f := h.tap(input.KeyEnter)
	require.Equal(t, 1, h.placed())
	assert.InDelta(t, 1.0, f.Blocks[1].Position.Y, 1e-12)

	// Удержание ставит по блоку за тик
	h.input.Press(input.KeyEnter)
	h.step(3)
	assert.Equal(t, 4, h.placed())

	h.input.Release(input.KeyEnter)
	h.step(3)
	assert.Equal(t, 4, h.placed())
}

func TestStep_TriggerPlace(t *testing.T) {
	h := newHarness(t, nil)
	h.input.TriggerPlace()
	h.step(1)
	assert.Equal(t, 1, h.placed())
	h.step(1)
	assert.Equal(t, 1, h.placed(), "Разовый триггер срабатывает один раз")
}

func TestStep_ColorSelect(t *testing.T) {
	h := newHarness(t, nil)

	f := h.tap(input.DigitKey(3))
	assert.Equal(t, block.ColorIndex(3), f.SelectedColor)
	assert.Equal(t, "Selected Block: 3", f.SelectedLabel)
	assert.Equal(t, 3.0, testutil.ToFloat64(h.metrics.SelectedColor))

	b := h.session.Place(context.Background())
	assert.Equal(t, block.ColorIndex(3), b.Color)

	f = h.tap(input.DigitKey(9))
	assert.Equal(t, "Selected Block: 9", f.SelectedLabel)
}

func TestStep_RemoveLast(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.session.Place(ctx)
	h.session.Place(ctx)
	last := h.session.Place(ctx)

	h.input.Press(input.KeyR)
	h.step(1)
	assert.Equal(t, 2, h.placed())
	require.Len(t, h.renderer.removed, 1)
	assert.Equal(t, last.ID, h.renderer.removed[0].ID, "Удаляется последний поставленный")

	// Удержание R не удаляет повторно
	h.step(5)
	assert.Equal(t, 2, h.placed())

	h.input.Release(input.KeyR)
	h.tap(input.KeyR)
	h.tap(input.KeyR)
	h.tap(input.KeyR)
	assert.Equal(t, 0, h.placed())
	assert.Equal(t, 1, h.session.World.Len(), "Земля не удаляется")
	assert.Len(t, h.renderer.removed, 3)
}

func TestStep_RemoveAll(t *testing.T) {
	for _, n := range []int{0, 1, 1000} {
		h := newHarness(t, nil)
		for i := 0; i < n; i++ {
			h.session.Place(context.Background())
		}

		h.input.Press(input.KeyShiftLeft)
		h.tap(input.KeyR)

		assert.Equal(t, 1, h.session.World.Len(), "n=%d", n)
		assert.True(t, h.session.World.Blocks()[0].Permanent)
		assert.Len(t, h.renderer.removed, n)
		assert.Equal(t, float64(n), testutil.ToFloat64(h.metrics.BlocksRemoved))
	}
}

func TestStep_OrbitControls(t *testing.T) {
	h := newHarness(t, nil)

	h.input.Press(input.KeyArrowUp)
	h.step(100)
	assert.Equal(t, MaxElevation, h.session.Orbit.Elevation)

	h.input.Release(input.KeyArrowUp)
	h.input.Press(input.KeyArrowDown)
	h.step(100)
	assert.Equal(t, MinElevation, h.session.Orbit.Elevation)
	h.input.Release(input.KeyArrowDown)

	h.input.Press(input.KeyArrowRight)
	h.step(10)
	assert.InDelta(t, -0.3, h.session.Orbit.Angle, 1e-9)
	h.input.Release(input.KeyArrowRight)

	// Радиус не ограничен
	h.input.Press(input.KeyQ)
	h.step(60)
	assert.InDelta(t, -1, h.session.Orbit.Radius, 1e-9)
}

func TestStep_MovementFollowsYaw(t *testing.T) {
	h := newHarness(t, nil)
	h.step(1)
	h.session.Orbit.Angle = math.Pi / 2

	h.input.Press(input.KeyW)
	f := h.step(1)
	assert.InDelta(t, -0.1, f.Player.Position.X, 1e-12)
	assert.InDelta(t, 0, f.Player.Position.Z, 1e-12)
	assert.InDelta(t, -1.1, f.Preview.X, 1e-12)
}

func TestStep_TuningKeys(t *testing.T) {
	h := newHarness(t, nil)

	h.input.Press(input.KeyT)
	h.input.Press(input.KeyY)
	h.step(300)
	assert.Equal(t, config.MaxForwardDistance, h.session.Tuning.ForwardDistance)
	assert.Equal(t, config.MaxHeightOffset, h.session.Tuning.HeightOffset)

	h.input.ReleaseAll()
	h.input.Press(input.KeyB)
	h.input.Press(input.KeyN)
	h.step(300)
	assert.Equal(t, config.MinForwardDistance, h.session.Tuning.ForwardDistance)
	assert.Equal(t, config.MinHeightOffset, h.session.Tuning.HeightOffset)
}

func TestStep_UIToggles(t *testing.T) {
	h := newHarness(t, nil)

	f := h.tap(input.KeyDigit0)
	assert.True(t, f.UI.MenuVisible)
	assert.NotEmpty(t, f.UI.Controls)
	assert.Equal(t, block.ColorIndex(1), f.SelectedColor, "0 не выбирает цвет")

	f = h.tap(input.KeyO)
	assert.True(t, f.UI.DrawUIVisible)

	f = h.tap(input.KeyDigit0)
	assert.False(t, f.UI.MenuVisible)
	assert.Empty(t, f.UI.Controls)
}

func TestStep_FrameContents(t *testing.T) {
	h := newHarness(t, nil)
	f := h.step(1)

	assert.Equal(t, f.Player.Position, f.Camera.LookAt)
	assert.Equal(t, h.session.Preview(), f.Preview)
	require.Len(t, f.Blocks, 1)

	// Кадр не разделяет память с миром
	f.Blocks[0].Permanent = false
	assert.True(t, h.session.World.Ground().Permanent)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Ticks))
}

func TestStep_ZoomToZeroKeepsViewFinite(t *testing.T) {
	h := newHarness(t, nil)
	h.input.Press(input.KeyQ)
	f := h.step(50)
	assert.InDelta(t, 0, h.session.Orbit.Radius, 1e-9)
	assertFinite(t, f.Camera.View())
}
