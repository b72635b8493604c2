package dbmetrics

import (
	"database/sql"
	"time"

	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
)

// DefaultPoolStatsInterval период сбора статистики пула соединений
const DefaultPoolStatsInterval = 15 * time.Second

// WrapWithDefault оборачивает соединение метриками запросов и запускает
// фоновый сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	go collectPoolStats(db, m, serviceName, DefaultPoolStatsInterval, stopCh)
	return Wrap(db, m)
}

func collectPoolStats(db *sql.DB, m *metrics.Metrics, serviceName string, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := db.Stats()
			m.DBOpenConnections.WithLabelValues(serviceName).Set(float64(stats.OpenConnections))
			m.DBInUse.WithLabelValues(serviceName).Set(float64(stats.InUse))
			m.DBIdle.WithLabelValues(serviceName).Set(float64(stats.Idle))
			m.DBWaitCount.WithLabelValues(serviceName).Set(float64(stats.WaitCount))
		}
	}
}
