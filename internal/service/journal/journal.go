// Package journal фоном выгружает прогулки в журнал.
package journal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"dog_walking/internal/domain"
	"dog_walking/internal/metrics"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const DefaultInterval = 10 * time.Minute

type Worker struct {
	logger   *zap.Logger
	sheet    domain.SheetService
	walks    domain.WalkRepo
	metrics  *metrics.Metrics
	clock    clockwork.Clock
	interval time.Duration

	forceCh chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
	started atomic.Bool
	mu      sync.Mutex
}

type Option func(*Worker)

func WithClock(c clockwork.Clock) Option {
	return func(w *Worker) { w.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) { w.metrics = m }
}

// NewWorker создает остановленный воркер. forceCh общий с ботом, который
// сигналит в него после сохранения прогулки; при nil создается свой канал.
func NewWorker(sheet domain.SheetService, walks domain.WalkRepo, logger *zap.Logger, forceCh chan struct{}, opts ...Option) *Worker {
	if forceCh == nil {
		forceCh = make(chan struct{}, 1)
	}
	w := &Worker{
		logger:   logger,
		sheet:    sheet,
		walks:    walks,
		clock:    clockwork.NewRealClock(),
		interval: DefaultInterval,
		forceCh:  forceCh,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start крутит цикл синхронизации до отмены ctx или вызова Stop.
func (w *Worker) Start(ctx context.Context) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	go w.run(ctx)
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("journal worker started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ticker.Chan():
			w.Sync(ctx)
		case <-w.forceCh:
			w.Sync(ctx)
		case <-w.stopCh:
			w.logger.Info("journal worker stopped")
			return
		case <-ctx.Done():
			w.logger.Info("journal worker stopped", zap.Error(ctx.Err()))
			return
		}
	}
}

// Sync записывает все несинхронизированные прогулки и возвращает их число.
// Неудачные остаются в очереди до следующего прохода.
func (w *Worker) Sync(ctx context.Context) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	walks, err := w.walks.GetUnsynced(ctx)
	if err != nil {
		w.logger.Error("error getting unsynced walks", zap.Error(err))
		return 0
	}

	synced := 0
	for _, walk := range walks {
		log := w.logger.With(zap.Uint("walk_id", walk.ID))

		row, err := w.sheet.FindFirstFreeRow(ctx)
		if err != nil {
			log.Error("error finding free row for walk", zap.Error(err))
			w.failed()
			continue
		}
		if err := w.sheet.InsertWalk(ctx, row, walk); err != nil {
			log.Error("error inserting walk to sheet", zap.Int("row", row), zap.Error(err))
			w.failed()
			continue
		}
		ok, err := w.walks.MarkSynced(ctx, &walk)
		if err != nil {
			// строка уже в таблице; на следующем проходе запишется повторно
			log.Error("error marking walk as synced", zap.Error(err))
			w.failed()
			continue
		}
		if !ok {
			log.Info("walk was edited during sync, it will be written again", zap.Int("row", row))
			continue
		}
		synced++
		if w.metrics != nil {
			w.metrics.JournalSynced.Inc()
		}
	}

	if w.metrics != nil {
		w.metrics.JournalLastSync.Set(float64(w.clock.Now().Unix()))
	}
	if len(walks) > 0 {
		w.logger.Info("journal sync finished", zap.Int("synced", synced), zap.Int("pending", len(walks)))
	}
	return synced
}

func (w *Worker) failed() {
	if w.metrics != nil {
		w.metrics.JournalFailed.Inc()
	}
}

// ForceUpdate немедленно запускает синхронизацию, не блокируя.
func (w *Worker) ForceUpdate() {
	select {
	case w.forceCh <- struct{}{}:
	default:
	}
}

// Stop завершает цикл и ждет выхода. Можно вызывать повторно.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.stopCh) })
	if w.started.Load() {
		<-w.doneCh
	}
}
