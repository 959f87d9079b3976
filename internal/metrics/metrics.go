// Package metrics - метрики Prometheus бота и воркера журнала.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты команды бота.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected" // проверка, не найдено или конфликт
	OutcomeError    = "error"
)

// Результаты попытки входа.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
	LoginError   = "error"
)

type Metrics struct {
	Registry *prometheus.Registry

	BotCommands     *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
	JournalSynced   prometheus.Counter
	JournalFailed   prometheus.Counter
	JournalLastSync prometheus.Gauge
}

// New регистрирует все метрики в новом реестре вместе с коллекторами
// Go и процесса.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		BotCommands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dog_walking",
			Subsystem: "bot",
			Name:      "commands_total",
			Help:      "Bot commands handled, by section, command and outcome.",
		}, []string{"section", "command", "outcome"}),
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dog_walking",
			Subsystem: "bot",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		JournalSynced: f.NewCounter(prometheus.CounterOpts{
			Namespace: "dog_walking",
			Subsystem: "journal",
			Name:      "rows_synced_total",
			Help:      "Walks written to the journal sheet.",
		}),
		JournalFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "dog_walking",
			Subsystem: "journal",
			Name:      "rows_failed_total",
			Help:      "Walks that could not be written to the journal sheet.",
		}),
		JournalLastSync: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "dog_walking",
			Subsystem: "journal",
			Name:      "last_sync_timestamp_seconds",
			Help:      "Unix time of the last finished sync pass.",
		}),
	}
}
