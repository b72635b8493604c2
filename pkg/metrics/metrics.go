package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	SlotsGenerated     *prometheus.CounterVec
	PriceCalculations  *prometheus.CounterVec
	SubsidisedBookings *prometheus.CounterVec
	HoldsReleased      *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		SlotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_slots_generated_total",
			Help: "Available slots emitted, by day outcome",
		}, []string{"service", "outcome"}),
		PriceCalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_price_calculations_total",
			Help: "Price calculations, by outcome",
		}, []string{"service", "outcome"}),
		SubsidisedBookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_subsidised_total",
			Help: "Price calculations that ended with a negative operator margin",
		}, []string{"service"}),
		HoldsReleased: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_holds_released_total",
			Help: "Expired slot holds released by the sweeper",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.SlotsGenerated,
		m.PriceCalculations,
		m.SubsidisedBookings,
		m.HoldsReleased,
	)

	return m
}

// ObserveHTTP фиксирует один HTTP запрос
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(elapsed.Seconds())
}

// ObserveQuery фиксирует один запрос к БД
func (m *Metrics) ObserveQuery(operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(elapsed.Seconds())
}

// RecordSlots фиксирует количество выданных слотов
func (m *Metrics) RecordSlots(outcome string, count int) {
	m.SlotsGenerated.WithLabelValues(m.serviceName, outcome).Add(float64(count))
}

// RecordPriceCalculation фиксирует результат расчета цены
func (m *Metrics) RecordPriceCalculation(outcome string) {
	m.PriceCalculations.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordSubsidised фиксирует расчет с отрицательной маржой оператора
func (m *Metrics) RecordSubsidised() {
	m.SubsidisedBookings.WithLabelValues(m.serviceName).Inc()
}

// RecordHoldsReleased фиксирует освобожденные удержания слотов
func (m *Metrics) RecordHoldsReleased(count int) {
	m.HoldsReleased.WithLabelValues(m.serviceName).Add(float64(count))
}
