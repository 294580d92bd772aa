package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/pkg/logger"
	"github.com/Zigvert/go-shareit/internal/pkg/metrics"
)

// BookingCounter はステータス別の予約件数を集計するインターフェース
type BookingCounter interface {
	CountByStatus(ctx context.Context) (map[booking.Status]int, error)
}

// BookingMetricsCollector はステータス別予約件数をゲージに反映するワーカー
// 読み取り専用で、予約の状態には一切手を加えない
type BookingMetricsCollector struct {
	counter  BookingCounter
	metrics  *metrics.Metrics
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewBookingMetricsCollector は新しいコレクターを作成する
func NewBookingMetricsCollector(counter BookingCounter, m *metrics.Metrics, interval time.Duration) *BookingMetricsCollector {
	return &BookingMetricsCollector{
		counter:  counter,
		metrics:  m,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はコレクターを開始する
func (c *BookingMetricsCollector) Start(ctx context.Context) {
	logger.Info("予約メトリクスコレクター開始", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	c.collect(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("予約メトリクスコレクター停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("予約メトリクスコレクター停止（シグナル受信）")
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

// Stop はコレクターを停止する
func (c *BookingMetricsCollector) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// collect は件数を集計してゲージに反映する
// 集計対象にないステータスは 0 に戻す
func (c *BookingMetricsCollector) collect(ctx context.Context) {
	counts, err := c.counter.CountByStatus(ctx)
	if err != nil {
		logger.Error("予約件数の集計に失敗", zap.Error(err))
		return
	}

	for _, status := range []booking.Status{booking.StatusPending, booking.StatusApproved, booking.StatusRejected} {
		c.metrics.BookingsByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}
