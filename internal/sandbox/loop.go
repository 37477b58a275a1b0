package sandbox

import (
	"context"
	"time"

	"github.com/annel0/voxel-sandbox/internal/input"
)

// Loop крутит тики сессии с фиксированным интервалом
type Loop struct {
	Session  *Session
	Input    *input.State
	Interval time.Duration
	// BeforeTick вызывается перед снятием снимка ввода (автопилот, скрипты)
	BeforeTick func(tick uint64, in *input.State)
}

// Run выполняет тики до отмены ctx. Следующий тик начинается только после предыдущего.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.step(ctx)
		}
	}
}

// RunTicks выполняет n тиков подряд без ожидания
func (l *Loop) RunTicks(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.step(ctx)
	}
	return nil
}

func (l *Loop) step(ctx context.Context) Frame {
	if l.BeforeTick != nil {
		l.BeforeTick(l.Session.Tick()+1, l.Input)
	}
	return l.Session.Step(ctx, l.Input.Snapshot())
}
