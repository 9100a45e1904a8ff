package repository

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/webagent/internal/domain"
)

type recordedRequest struct {
	Elapsed     time.Duration
	ResultCount int
	At          time.Time
}

type MockAnalyticsRepository struct {
	mu       sync.Mutex
	requests []recordedRequest

	Err error // если задана, RecordRequest возвращает её
}

func NewMockAnalyticsRepository() *MockAnalyticsRepository {
	return &MockAnalyticsRepository{}
}

func (m *MockAnalyticsRepository) RecordRequest(ctx context.Context, elapsed time.Duration, resultCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.requests = append(m.requests, recordedRequest{
		Elapsed:     elapsed,
		ResultCount: resultCount,
		At:          time.Now(),
	})
	return nil
}

func (m *MockAnalyticsRepository) RecentStats(ctx context.Context, days int) (*domain.RequestStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	stats := &domain.RequestStats{}
	var totalSec float64

	for _, r := range m.requests {
		if r.At.Before(cutoff) {
			continue
		}
		stats.Requests++
		stats.TotalResults += r.ResultCount
		totalSec += r.Elapsed.Seconds()
	}

	if stats.Requests > 0 {
		stats.AvgDurationSec = totalSec / float64(stats.Requests)
	}
	return stats, nil
}

// CallCount - сколько записей накопилось (для ассертов в тестах)
func (m *MockAnalyticsRepository) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *MockAnalyticsRepository) LastResultCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return -1
	}
	return m.requests[len(m.requests)-1].ResultCount
}
