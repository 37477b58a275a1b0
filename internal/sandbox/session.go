package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/input"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/metrics"
	"github.com/annel0/voxel-sandbox/internal/observability"
	"github.com/annel0/voxel-sandbox/internal/vec"
	"github.com/annel0/voxel-sandbox/internal/world"
	"github.com/annel0/voxel-sandbox/internal/world/block"
	"github.com/annel0/voxel-sandbox/internal/world/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const playerID uint64 = 1

// Options зависимости сессии. Нулевые значения заменяются заглушками.
type Options struct {
	Renderer Renderer
	Metrics  *metrics.SimMetrics
	// Resolver позволяет подменить стратегию коллизий (по умолчанию линейный перебор)
	Resolver func(*world.World) world.CollisionResolver
}

// Session состояние одной песочницы: мир, игрок, камера и выбор блока.
// Не потокобезопасна: Step вызывается из одного потока.
type Session struct {
	World         *world.World
	Player        *entity.Player
	Orbit         OrbitCamera
	Tuning        PlacementTuning
	SelectedColor block.ColorIndex
	UI            UIState

	physics        config.PhysicsConfig
	turnSpeed      float64
	zoomSpeed      float64
	tuningStep     float64
	verticalOffset float64

	bindings input.Bindings
	resolver world.CollisionResolver
	renderer Renderer
	metrics  *metrics.SimMetrics
	tracer   trace.Tracer
	log      *logging.Logger
	tick     uint64
}

// NewSession создаёт мир с землёй и игрока в точке появления
func NewSession(cfg *config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bindings := input.DefaultBindings()
	if err := bindings.Override(cfg.Controls); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	ground := world.NewGround(vec.Vec3Float{}, vec.Vec3Float{
		X: cfg.Ground.Width,
		Y: cfg.Ground.Height,
		Z: cfg.Ground.Depth,
	})
	w, err := world.NewWorld(ground)
	if err != nil {
		return nil, err
	}

	if opts.Renderer == nil {
		opts.Renderer = NopRenderer{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewSimMetrics(nil)
	}
	var resolver world.CollisionResolver = world.NewLinearResolver(w)
	if opts.Resolver != nil {
		resolver = opts.Resolver(w)
	}

	spawn := vec.Vec3Float{X: cfg.Player.Spawn[0], Y: cfg.Player.Spawn[1], Z: cfg.Player.Spawn[2]}
	s := &Session{
		World:  w,
		Player: entity.NewPlayer(playerID, spawn, cfg.Player.Size),
		Orbit: OrbitCamera{
			Angle:     cfg.Camera.InitialAngle,
			Elevation: clamp(cfg.Camera.InitialElevation(), MinElevation, MaxElevation),
			Radius:    cfg.Camera.InitialRadius,
		},
		Tuning: PlacementTuning{
			ForwardDistance: cfg.Placement.ForwardDistance,
			HeightOffset:    cfg.Placement.HeightOffset,
		},
		SelectedColor:  block.ColorIndex(cfg.Placement.InitialColor),
		physics:        cfg.Physics,
		turnSpeed:      cfg.Camera.TurnSpeed,
		zoomSpeed:      cfg.Camera.ZoomSpeed,
		tuningStep:     cfg.Placement.Step,
		verticalOffset: cfg.Camera.VerticalOffset,
		bindings:       bindings,
		resolver:       resolver,
		renderer:       opts.Renderer,
		metrics:        opts.Metrics,
		tracer:         observability.Tracer(),
		log:            logging.GetSimLogger(),
	}
	s.metrics.SelectedColor.Set(float64(s.SelectedColor))
	s.renderer.SpawnBlock(ground)
	s.log.Info("🧱 Сессия создана: земля %.0fx%.0fx%.0f, игрок в %+v",
		cfg.Ground.Width, cfg.Ground.Height, cfg.Ground.Depth, spawn)
	return s, nil
}

// Bindings раскладка клавиш сессии (умолчания с переопределениями из конфига)
func (s *Session) Bindings() input.Bindings {
	return s.bindings
}

// Tick номер последнего выполненного тика
func (s *Session) Tick() uint64 {
	return s.tick
}

// Step выполняет один тик симуляции и передаёт кадр рендереру.
// Порядок фаз фиксирован: камера, настройки установки, движение, гравитация,
// опора, прыжок, цвет, удаление, установка, кадр.
func (s *Session) Step(ctx context.Context, in input.Snapshot) Frame {
	start := time.Now()
	s.tick++
	ctx, span := s.tracer.Start(ctx, "sandbox.step",
		trace.WithAttributes(attribute.Int64("sandbox.tick", int64(s.tick))))
	defer span.End()

	s.applyCommands(in.Commands)
	s.updateOrbit(in)
	s.updateTuning(in)

	forward := Forward(s.Orbit.Angle)
	right := Right(forward)
	s.moveHorizontal(in, forward, right)

	s.Player.ApplyGravity(s.physics.Gravity)
	s.resolveVertical()

	if in.Held(input.ActionJump) && s.Player.Jump(s.physics.JumpImpulse) {
		s.log.Trace("прыжок на тике %d", s.tick)
	}

	s.selectColor(in)
	s.handleRemoval(ctx, in)
	if in.PlacingActive {
		s.Place(ctx)
	}

	frame := s.frame()
	s.renderer.Render(frame)

	span.SetAttributes(
		attribute.Int("sandbox.blocks", s.World.Len()),
		attribute.Bool("sandbox.airborne", s.Player.Airborne),
	)
	s.metrics.ObserveTick(time.Since(start), s.World.Len(), s.Player.Airborne)
	return frame
}

func (s *Session) applyCommands(cmds []input.Command) {
	for _, cmd := range cmds {
		switch cmd {
		case input.CommandToggleMenu:
			s.UI.MenuVisible = !s.UI.MenuVisible
		case input.CommandToggleDrawUI:
			s.UI.DrawUIVisible = !s.UI.DrawUIVisible
		}
		s.log.Debug("UI команда %s", cmd)
	}
}

func (s *Session) updateOrbit(in input.Snapshot) {
	if in.Held(input.ActionTurnRight) {
		s.Orbit.Angle -= s.turnSpeed
	}
	if in.Held(input.ActionTurnLeft) {
		s.Orbit.Angle += s.turnSpeed
	}

	var tilt float64
	if in.Held(input.ActionLookDown) {
		tilt -= s.turnSpeed
	}
	if in.Held(input.ActionLookUp) {
		tilt += s.turnSpeed
	}
	s.Orbit.Tilt(tilt)

	if in.Held(input.ActionZoomIn) {
		s.Orbit.Radius -= s.zoomSpeed
	}
	if in.Held(input.ActionZoomOut) {
		s.Orbit.Radius += s.zoomSpeed
	}
}

func (s *Session) updateTuning(in input.Snapshot) {
	if in.Held(input.ActionDistanceUp) {
		s.Tuning.AdjustDistance(s.tuningStep)
	}
	if in.Held(input.ActionDistanceDown) {
		s.Tuning.AdjustDistance(-s.tuningStep)
	}
	if in.Held(input.ActionHeightUp) {
		s.Tuning.AdjustHeight(s.tuningStep)
	}
	if in.Held(input.ActionHeightDown) {
		s.Tuning.AdjustHeight(-s.tuningStep)
	}
}

// moveHorizontal суммирует направления и применяет сдвиг целиком или никак
func (s *Session) moveHorizontal(in input.Snapshot, forward, right vec.Vec3Float) {
	speed := s.physics.MoveSpeed
	candidate := s.Player.Position

	if in.Held(input.ActionMoveForward) {
		candidate = candidate.Add(forward.Mul(speed))
	}
	if in.Held(input.ActionMoveBack) {
		candidate = candidate.Add(forward.Mul(-speed))
	}
	if in.Held(input.ActionStrafeLeft) {
		candidate = candidate.Add(right.Mul(speed))
	}
	if in.Held(input.ActionStrafeRight) {
		candidate = candidate.Add(right.Mul(-speed))
	}

	// Высота проверяется текущая: вертикаль решается отдельно
	if !s.resolver.TestCollision(candidate.WithY(s.Player.Position.Y)) {
		s.Player.MoveHorizontal(candidate.X, candidate.Z)
	}
}

func (s *Session) resolveVertical() {
	if restY, ok := s.resolver.ResolveVertical(s.Player.Bounds()); ok {
		s.Player.Land(restY)
		return
	}
	s.Player.Airborne = true
}

func (s *Session) selectColor(in input.Snapshot) {
	for i := int(block.FirstColor); i <= int(block.LastColor); i++ {
		if in.JustPressed(input.ColorAction(i)) {
			s.SelectedColor = block.ColorIndex(i)
		}
	}
	s.metrics.SelectedColor.Set(float64(s.SelectedColor))
}

func (s *Session) handleRemoval(ctx context.Context, in input.Snapshot) {
	if !in.JustPressed(input.ActionRemove) {
		return
	}

	if in.Held(input.ActionModifier) {
		removed := s.World.RemoveAll(world.Removable)
		for _, b := range removed {
			s.renderer.RemoveBlock(b)
		}
		s.metrics.BlocksRemoved.Add(float64(len(removed)))
		trace.SpanFromContext(ctx).AddEvent("remove_all",
			trace.WithAttributes(attribute.Int("sandbox.removed", len(removed))))
		s.log.Debug("🧹 Удалено блоков: %d", len(removed))
		return
	}

	if b, ok := s.World.RemoveLast(world.Removable); ok {
		s.renderer.RemoveBlock(b)
		s.metrics.BlocksRemoved.Inc()
		s.log.Debug("Удалён блок %s в %+v", b.ID, b.Position)
	}
}

// Place ставит блок выбранного цвета в точку установки
func (s *Session) Place(ctx context.Context) world.Block {
	b := world.NewBlock(s.Preview(), s.SelectedColor)
	if err := s.World.Insert(b); err != nil {
		// NewBlock всегда создаёт удаляемый блок
		s.log.Error("Не удалось поставить блок: %v", err)
		return b
	}
	s.renderer.SpawnBlock(b)
	s.metrics.BlocksPlaced.Inc()
	trace.SpanFromContext(ctx).AddEvent("place")
	s.log.Trace("Блок %s цвета %d в %+v", b.ID, b.Color, b.Position)
	return b
}

// Preview точка, куда встанет следующий блок
func (s *Session) Preview() vec.Vec3Float {
	return ComputeAnchor(s.Player.Position, s.Orbit.Angle, s.Tuning)
}

// Camera текущая камера
func (s *Session) Camera() CameraTransform {
	return DeriveTransform(s.Player.Position, s.Orbit, s.verticalOffset)
}

func (s *Session) frame() Frame {
	ui := s.UI
	if ui.MenuVisible {
		ui.Controls = input.DescribeControls(s.bindings)
	}
	return Frame{
		Tick:          s.tick,
		Player:        *s.Player,
		Blocks:        s.World.Blocks(),
		Preview:       s.Preview(),
		Camera:        s.Camera(),
		SelectedColor: s.SelectedColor,
		SelectedLabel: block.Label(s.SelectedColor),
		UI:            ui,
	}
}
