package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/annel0/voxel-sandbox/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации песочницы.
type Config struct {
	Loop      LoopConfig          `yaml:"loop"`
	Physics   PhysicsConfig       `yaml:"physics"`
	Player    PlayerConfig        `yaml:"player"`
	Camera    CameraConfig        `yaml:"camera"`
	Placement PlacementConfig     `yaml:"placement"`
	Ground    GroundConfig        `yaml:"ground"`
	Controls  map[string][]string `yaml:"controls"`
	Logging   LoggingConfig       `yaml:"logging"`
	Metrics   MetricsConfig       `yaml:"metrics"`
	Telemetry TelemetryConfig     `yaml:"telemetry"`
}

type LoopConfig struct {
	TickRateHz int `yaml:"tick_rate_hz"`
}

type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Ускорение за тик (отрицательное)
	JumpImpulse float64 `yaml:"jump_impulse"` // Начальная скорость прыжка
	MoveSpeed   float64 `yaml:"move_speed"`   // Смещение за тик на одно направление
}

type PlayerConfig struct {
	Spawn [3]float64 `yaml:"spawn"`
	Size  float64    `yaml:"size"`
}

type CameraConfig struct {
	TurnSpeed           float64 `yaml:"turn_speed"`
	ZoomSpeed           float64 `yaml:"zoom_speed"`
	InitialAngle        float64 `yaml:"initial_angle"`
	InitialElevationDeg float64 `yaml:"initial_elevation_deg"`
	InitialRadius       float64 `yaml:"initial_radius"`
	VerticalOffset      float64 `yaml:"vertical_offset"`
}

type PlacementConfig struct {
	ForwardDistance float64 `yaml:"forward_distance"`
	HeightOffset    float64 `yaml:"height_offset"`
	Step            float64 `yaml:"step"`
	InitialColor    int     `yaml:"initial_color"`
}

type GroundConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console или json
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Пределы настроек установки блока
const (
	MinForwardDistance = 0.5
	MaxForwardDistance = 10.0
	MinHeightOffset    = -1.0
	MaxHeightOffset    = 10.0
)

var ErrInvalidConfig = errors.New("invalid config")

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Loop: LoopConfig{TickRateHz: 60},
		Physics: PhysicsConfig{
			Gravity:     -0.01,
			JumpImpulse: 0.15,
			MoveSpeed:   0.1,
		},
		Player: PlayerConfig{
			Spawn: [3]float64{0, 0.5, 0},
			Size:  1,
		},
		Camera: CameraConfig{
			TurnSpeed:           0.03,
			ZoomSpeed:           0.1,
			InitialAngle:        0,
			InitialElevationDeg: 15,
			InitialRadius:       5,
			VerticalOffset:      2,
		},
		Placement: PlacementConfig{
			ForwardDistance: 1,
			HeightOffset:    0,
			Step:            0.1,
			InitialColor:    1,
		},
		Ground: GroundConfig{Width: 100, Height: 1, Depth: 100},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{Enabled: false},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "voxel-sandbox",
		},
	}
}

// InitialElevation возвращает начальный наклон камеры в радианах
func (c *CameraConfig) InitialElevation() float64 {
	return c.InitialElevationDeg * math.Pi / 180
}

// GetMetricsPort возвращает порт Prometheus с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "SANDBOX_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет значения, при которых симуляция не имеет смысла
func (c *Config) Validate() error {
	var errs []error
	if c.Loop.TickRateHz <= 0 {
		errs = append(errs, fmt.Errorf("loop.tick_rate_hz must be positive, got %d", c.Loop.TickRateHz))
	}
	if c.Physics.Gravity >= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be negative, got %v", c.Physics.Gravity))
	}
	if c.Player.Size <= 0 {
		errs = append(errs, fmt.Errorf("player.size must be positive, got %v", c.Player.Size))
	}
	if c.Ground.Width <= 0 || c.Ground.Height <= 0 || c.Ground.Depth <= 0 {
		errs = append(errs, fmt.Errorf("ground dimensions must be positive, got %+v", c.Ground))
	}
	if d := c.Placement.ForwardDistance; d < MinForwardDistance || d > MaxForwardDistance {
		errs = append(errs, fmt.Errorf("placement.forward_distance %v out of [%v, %v]", d, MinForwardDistance, MaxForwardDistance))
	}
	if h := c.Placement.HeightOffset; h < MinHeightOffset || h > MaxHeightOffset {
		errs = append(errs, fmt.Errorf("placement.height_offset %v out of [%v, %v]", h, MinHeightOffset, MaxHeightOffset))
	}
	if c.Placement.InitialColor < 1 || c.Placement.InitialColor > 9 {
		errs = append(errs, fmt.Errorf("placement.initial_color must be 1..9, got %d", c.Placement.InitialColor))
	}
	if c.Physics.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.move_speed must be positive, got %v", c.Physics.MoveSpeed))
	}
	if c.Camera.TurnSpeed <= 0 {
		errs = append(errs, fmt.Errorf("camera.turn_speed must be positive, got %v", c.Camera.TurnSpeed))
	}
	if c.Camera.ZoomSpeed <= 0 {
		errs = append(errs, fmt.Errorf("camera.zoom_speed must be positive, got %v", c.Camera.ZoomSpeed))
	}
	if c.Placement.Step <= 0 {
		errs = append(errs, fmt.Errorf("placement.step must be positive, got %v", c.Placement.Step))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV SANDBOX_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SANDBOX_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
