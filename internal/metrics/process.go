package metrics

import (
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessSampler периодически снимает загрузку CPU и память процесса
type ProcessSampler struct {
	StartTime time.Time

	proc       *process.Process
	cpuPercent prometheus.Gauge
	memoryMB   prometheus.Gauge
	goroutines prometheus.Gauge
	uptime     prometheus.GaugeFunc

	quit chan struct{}
	done chan struct{}
}

// NewProcessSampler создаёт сэмплер и регистрирует метрики в reg
func NewProcessSampler(reg prometheus.Registerer) *ProcessSampler {
	ps := &ProcessSampler{
		StartTime: time.Now(),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Subsystem: "process",
			Name:      "cpu_percent",
			Help:      "Загрузка CPU процессом в процентах.",
		}),
		memoryMB: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Subsystem: "process",
			Name:      "heap_alloc_mb",
			Help:      "Выделенная память кучи в MB.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sandbox",
			Subsystem: "process",
			Name:      "goroutines",
			Help:      "Количество горутин.",
		}),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	ps.uptime = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "sandbox",
		Subsystem: "process",
		Name:      "uptime_seconds",
		Help:      "Время работы процесса.",
	}, func() float64 { return time.Since(ps.StartTime).Seconds() })

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		ps.proc = proc
	}

	reg.MustRegister(ps.cpuPercent, ps.memoryMB, ps.goroutines, ps.uptime)
	return ps
}

// CPUUsage возвращает использование CPU процессом в процентах
func (ps *ProcessSampler) CPUUsage() (float64, error) {
	if ps.proc != nil {
		if pct, err := ps.proc.CPUPercent(); err == nil {
			return pct, nil
		}
	}

	// Если не удалось получить метрику процесса, попробуем системную
	cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(cpuPercents) == 0 {
		return 0, err
	}
	return cpuPercents[0], nil
}

// MemoryUsage возвращает использование памяти в MB
func (ps *ProcessSampler) MemoryUsage() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / 1024 / 1024
}

// Sample обновляет все gauge один раз
func (ps *ProcessSampler) Sample() {
	if pct, err := ps.CPUUsage(); err == nil {
		ps.cpuPercent.Set(pct)
	}
	ps.memoryMB.Set(ps.MemoryUsage())
	ps.goroutines.Set(float64(runtime.NumGoroutine()))
}

// Start запускает периодический сбор. Неблокирующий.
func (ps *ProcessSampler) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ps.done)
		for {
			select {
			case <-ticker.C:
				ps.Sample()
			case <-ps.quit:
				return
			}
		}
	}()
}

// Stop останавливает сбор, запущенный через Start
func (ps *ProcessSampler) Stop() {
	close(ps.quit)
	<-ps.done
}
