package ratelimit

import (
	"sync"
	"time"
)

// Limiter - глобальный rate limiter (moving window). Одно общее окно
// на процесс: и search, и news тратят один и тот же бюджет.
type Limiter struct {
	mu      sync.Mutex
	history []time.Time
	limit   int
	window  time.Duration
}

type Config struct {
	RequestsPerHour int
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerHour
	if limit <= 0 {
		limit = 360
	}

	return &Limiter{
		limit:  limit,
		window: time.Hour,
	}
}

// Allow пытается занять слот в окне. Не блокирует и не ждёт:
// false означает, что вызов должен завершиться с ошибкой лимита.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	// оставляем только свежие запросы
	fresh := l.history[:0]
	for _, t := range l.history {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.history = fresh
		return false
	}

	l.history = append(fresh, now)
	return true
}

func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	cnt := 0
	for _, t := range l.history {
		if t.After(cutoff) {
			cnt++
		}
	}

	if rem := l.limit - cnt; rem > 0 {
		return rem
	}
	return 0
}

// ResetTime - когда освободится хотя бы один слот (приблизительно)
func (l *Limiter) ResetTime() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.history) == 0 {
		return time.Now()
	}

	oldest := l.history[0]
	for _, t := range l.history[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return oldest.Add(l.window)
}
