package repository

import (
	"context"
	"time"

	"github.com/kitbuilder587/webagent/internal/domain"
)

// AnalyticsRepository пишет по строке на каждый вызов пайплайна
// (успешный или нет) и отдаёт агрегаты за хвостовое окно.
type AnalyticsRepository interface {
	RecordRequest(ctx context.Context, elapsed time.Duration, resultCount int) error
	RecentStats(ctx context.Context, days int) (*domain.RequestStats, error)
}
