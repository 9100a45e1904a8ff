package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/kitbuilder587/webagent/internal/domain"
)

type AnalyticsRepo struct {
	db *DB
}

func NewAnalyticsRepo(db *DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

func (r *AnalyticsRepo) RecordRequest(ctx context.Context, elapsed time.Duration, resultCount int) error {
	query := `
        INSERT INTO search_requests (duration_seconds, result_count)
        VALUES ($1, $2)
    `

	_, err := r.db.Pool.Exec(ctx, query, elapsed.Seconds(), resultCount)
	if err != nil {
		return fmt.Errorf("record request: %w", err)
	}

	return nil
}

func (r *AnalyticsRepo) RecentStats(ctx context.Context, days int) (*domain.RequestStats, error) {
	query := `
        SELECT COUNT(*),
               COALESCE(AVG(duration_seconds), 0),
               COALESCE(SUM(result_count), 0)
        FROM search_requests
        WHERE created_at >= NOW() - make_interval(days => $1)
    `

	var stats domain.RequestStats
	err := r.db.Pool.QueryRow(ctx, query, days).Scan(
		&stats.Requests,
		&stats.AvgDurationSec,
		&stats.TotalResults,
	)
	if err != nil {
		return nil, fmt.Errorf("recent stats: %w", err)
	}

	return &stats, nil
}
