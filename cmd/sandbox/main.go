package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxel-sandbox/internal/autopilot"
	"github.com/annel0/voxel-sandbox/internal/config"
	"github.com/annel0/voxel-sandbox/internal/eventbus"
	"github.com/annel0/voxel-sandbox/internal/input"
	"github.com/annel0/voxel-sandbox/internal/logging"
	"github.com/annel0/voxel-sandbox/internal/metrics"
	"github.com/annel0/voxel-sandbox/internal/observability"
	"github.com/annel0/voxel-sandbox/internal/render"
	"github.com/annel0/voxel-sandbox/internal/sandbox"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (default: $SANDBOX_CONFIG or built-in defaults)")
		ticks      = flag.Int("ticks", 0, "Run N ticks back to back and exit (0 = run until signal)")
		pilot      = flag.Bool("autopilot", false, "Drive input with Perlin noise")
		seed       = flag.Int64("seed", 1, "Autopilot seed")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitDefaultLogger("sandbox", logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	if err := run(cfg, *ticks, *pilot, *seed); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
}

func run(cfg *config.Config, ticks int, pilot bool, seed int64) error {
	logging.Info("🎮 Запуск песочницы (tick rate %d Hz)", cfg.Loop.TickRateHz)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТЕЛЕМЕТРИЯ ===
	shutdownTracing, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logging.Error("Ошибка остановки телеметрии: %v", err)
		}
	}()

	// === МЕТРИКИ ===
	reg := prometheus.NewRegistry()
	simMetrics := metrics.NewSimMetrics(reg)
	sampler := metrics.NewProcessSampler(reg)
	sampler.Start(5 * time.Second)
	defer sampler.Stop()

	// === ШИНА СОБЫТИЙ ===
	bus := eventbus.NewMemoryBus(1024)
	busExporter := eventbus.NewMetricsExporter(bus, reg)
	busExporter.Start(time.Second)
	if _, err := eventbus.StartLoggingListener(bus, eventbus.Filter{
		Types: []string{render.EventBlockSpawned, render.EventBlockRemoved},
	}); err != nil {
		return fmt.Errorf("start bus listener: %w", err)
	}

	if cfg.Metrics.Enabled {
		addr := fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort())
		srv := metrics.StartHTTP(addr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logging.Error("Ошибка остановки /metrics: %v", err)
			}
		}()
	}

	// === СЕССИЯ ===
	renderer := render.Fanout{
		render.NewBusRenderer(ctx, bus),
		render.NewLogRenderer(uint64(cfg.Loop.TickRateHz) * 10),
	}
	session, err := sandbox.NewSession(cfg, sandbox.Options{Renderer: renderer, Metrics: simMetrics})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	for _, line := range input.DescribeControls(session.Bindings()) {
		logging.Debug("   %s", line)
	}

	loop := &sandbox.Loop{
		Session:  session,
		Input:    input.NewState(session.Bindings()),
		Interval: time.Second / time.Duration(cfg.Loop.TickRateHz),
	}
	if pilot {
		driver := autopilot.New(seed)
		loop.BeforeTick = driver.Drive
		logging.Info("🤖 Автопилот включён (seed=%d)", seed)
	}

	if ticks > 0 {
		err = loop.RunTicks(ctx, ticks)
	} else {
		logging.Info("✅ Симуляция запущена, Ctrl+C для выхода")
		err = loop.Run(ctx)
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Debug("Остановка шины событий...")
	bus.Close()
	busExporter.Stop()

	stats := session.World.Stats()
	logging.Info("👋 Песочница остановлена: тиков %d, блоков %d (поставлено %d)",
		session.Tick(), stats.Total, stats.Placed)
	return err
}
