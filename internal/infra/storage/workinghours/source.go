// Package workinghours загружает расписание рабочих часов из YAML файла
// и перечитывает его при изменении.
package workinghours

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

const defaultWatchInterval = 30 * time.Second

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Source хранит последнюю успешно загруженную конфигурацию.
// Некорректный файл при перезагрузке не заменяет рабочую конфигурацию.
type Source struct {
	path   string
	logger Logger

	mu      sync.RWMutex
	cfg     *domain.WorkingHoursConfig
	modTime time.Time
}

// NewSource читает файл и возвращает готовый источник
func NewSource(path string, logger Logger) (*Source, error) {
	s := &Source{path: path, logger: logger}
	if _, err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load читает и разбирает файл с расписанием
func Load(path string) (*domain.WorkingHoursConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
	}
	return Parse(data)
}

// Get возвращает текущую конфигурацию. Вызывающий не должен её изменять.
func (s *Source) Get(_ context.Context) (*domain.WorkingHoursConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, nil
}

// Watch периодически проверяет время изменения файла и перечитывает его.
// Блокируется до отмены контекста.
func (s *Source) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := s.reload()
			if err != nil {
				s.logger.Error("WorkingHours: failed to reload %s, keeping previous config: %v", s.path, err)
				continue
			}
			if changed {
				s.logger.Info("WorkingHours: reloaded %s", s.path)
			}
		}
	}
}

// reload перечитывает файл, если он изменился с последней загрузки
func (s *Source) reload() (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrReadFile, s.path, err)
	}

	s.mu.RLock()
	unchanged := s.cfg != nil && !info.ModTime().After(s.modTime)
	s.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	cfg, err := Load(s.path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.cfg = cfg
	s.modTime = info.ModTime()
	s.mu.Unlock()

	return true, nil
}
