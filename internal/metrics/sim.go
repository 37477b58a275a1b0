package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimMetrics метрики симуляции песочницы
type SimMetrics struct {
	Ticks         prometheus.Counter
	TickDuration  prometheus.Histogram
	BlocksPlaced  prometheus.Counter
	BlocksRemoved prometheus.Counter
	WorldBlocks   prometheus.Gauge
	Airborne      prometheus.Gauge
	SelectedColor prometheus.Gauge
}

// NewSimMetrics создаёт метрики и регистрирует их в reg.
// reg == nil — метрики работают, но никуда не экспортируются (удобно в тестах).
func NewSimMetrics(reg prometheus.Registerer) *SimMetrics {
	m := &SimMetrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sandbox",
			Name:      "ticks_total",
			Help:      "Количество выполненных тиков симуляции.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sandbox",
			Name:      "tick_duration_seconds",
			Help:      "Длительность одного тика симуляции.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}),
		BlocksPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sandbox",
			Name:      "blocks_placed_total",
			Help:      "Установленные блоки.",
		}),
		BlocksRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sandbox",
			Name:      "blocks_removed_total",
			Help:      "Удалённые блоки.",
		}),
		WorldBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Name:      "world_blocks",
			Help:      "Количество блоков в мире, включая землю.",
		}),
		Airborne: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Name:      "player_airborne",
			Help:      "1 если игрок в воздухе.",
		}),
		SelectedColor: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Name:      "selected_color",
			Help:      "Выбранный индекс палитры (1..9).",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Ticks, m.TickDuration, m.BlocksPlaced, m.BlocksRemoved,
			m.WorldBlocks, m.Airborne, m.SelectedColor)
	}
	return m
}

// ObserveTick фиксирует завершение тика
func (m *SimMetrics) ObserveTick(d time.Duration, worldBlocks int, airborne bool) {
	m.Ticks.Inc()
	m.TickDuration.Observe(d.Seconds())
	m.WorldBlocks.Set(float64(worldBlocks))
	if airborne {
		m.Airborne.Set(1)
	} else {
		m.Airborne.Set(0)
	}
}
