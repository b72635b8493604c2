// Package holdsweeper periodically abandons reservations whose holds expired.
package holdsweeper

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/usecase/release_expired_holds"
)

const (
	defaultInterval = 30 * time.Second
	defaultBatch    = 100
)

// Releaser одна итерация освобождения удержаний
type Releaser interface {
	Execute(ctx context.Context, req *release_expired_holds.Request) (*release_expired_holds.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновый сборщик истекших удержаний
type Sweeper struct {
	releaser Releaser
	interval time.Duration
	batch    int
	logger   Logger

	mu      sync.Mutex
	running bool
}

// New создает сборщик. Нулевые interval и batch заменяются значениями по умолчанию.
func New(releaser Releaser, interval time.Duration, batch int, logger Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	if batch <= 0 {
		batch = defaultBatch
	}
	return &Sweeper{
		releaser: releaser,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}
}

// Run блокируется до отмены ctx. Повторный вызов при работающем цикле ничего не делает.
func (s *Sweeper) Run(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Info("HoldSweeper: started, interval=%s, batch=%d", s.interval, s.batch)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("HoldSweeper: stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep выполняет проходы, пока каждый из них заполняет пачку целиком
func (s *Sweeper) Sweep(ctx context.Context) {
	for ctx.Err() == nil {
		resp, err := s.releaser.Execute(ctx, &release_expired_holds.Request{Limit: s.batch})
		if err != nil {
			s.logger.Error("HoldSweeper: sweep failed: %v", err)
			return
		}
		// проход, в котором всё упало, не повторяем сразу
		if resp.Released+resp.Skipped+resp.Failed < s.batch || resp.Released+resp.Skipped == 0 {
			return
		}
	}
}
