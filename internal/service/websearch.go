package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/webagent/internal/cache"
	"github.com/kitbuilder587/webagent/internal/config"
	"github.com/kitbuilder587/webagent/internal/domain"
	"github.com/kitbuilder587/webagent/internal/extract"
	"github.com/kitbuilder587/webagent/internal/fetch"
	"github.com/kitbuilder587/webagent/internal/metrics"
	"github.com/kitbuilder587/webagent/internal/repository"
	"github.com/kitbuilder587/webagent/internal/search"
)

type WebSearchService interface {
	// Search гонит полный пайплайн и возвращает структурный отчёт.
	Search(ctx context.Context, req domain.Request) (*domain.Report, error)
	// SearchText - плоская текстовая проекция того же отчёта.
	SearchText(ctx context.Context, req domain.Request) (string, error)
}

type PageFetcher interface {
	FetchAll(ctx context.Context, urls []string) []fetch.Outcome
}

// RateLimiter внедряется снаружи, чтобы тесты могли подставить фейк.
type RateLimiter interface {
	Allow() bool
}

type Deps struct {
	Provider search.Provider
	Fetcher  PageFetcher
	Limiter  RateLimiter
	Serper   config.SerperConfig // дефолтные ключи для цепочки
	Logger   *zap.Logger

	// опциональные компоненты
	Analytics repository.AnalyticsRepository
	Metrics   *metrics.Metrics
	Cache     cache.Cache
	CacheTTL  time.Duration
}

type webSearchService struct {
	provider  search.Provider
	fetcher   PageFetcher
	limiter   RateLimiter
	serper    config.SerperConfig
	logger    *zap.Logger
	analytics repository.AnalyticsRepository
	metrics   *metrics.Metrics
	cache     cache.Cache
	cacheTTL  time.Duration
}

func New(deps Deps) WebSearchService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &webSearchService{
		provider:  deps.Provider,
		fetcher:   deps.Fetcher,
		limiter:   deps.Limiter,
		serper:    deps.Serper,
		logger:    deps.Logger,
		analytics: deps.Analytics,
		metrics:   deps.Metrics,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
	}
}

func (s *webSearchService) Search(ctx context.Context, req domain.Request) (*domain.Report, error) {
	startTime := time.Now()

	req.Normalize()

	if s.metrics != nil {
		s.metrics.IncSearchesInFlight()
		defer s.metrics.DecSearchesInFlight()
	}

	// аналитика пишется на каждом выходе, включая ошибочные
	defer func() {
		s.recordAnalytics(time.Since(startTime), req.NumResults)
	}()

	if err := req.Validate(); err != nil {
		s.recordSearch(req.Mode, "validation_error", startTime)
		return nil, err
	}

	var resp *search.Response
	var cKey string

	// кеш смотрим до лимитера: попадание не делает запрос к провайдеру
	// и не должно тратить слот квоты
	if s.cache != nil && s.cacheTTL > 0 && req.Mode == domain.ModeGeneral {
		cKey = cacheKey(req)
		if cached, ok := s.cache.Get(cKey); ok {
			resp = cached
		}
	}

	if resp == nil {
		keys := search.KeyChain(req.APIKey, req.FallbackAPIKey, s.serper, req.UseFallback)
		if len(keys) == 0 {
			s.recordSearch(req.Mode, "config_error", startTime)
			return nil, domain.ErrNoAPIKey
		}

		if s.limiter != nil && !s.limiter.Allow() {
			s.logger.Warn("rate limit exceeded",
				zap.String("query", truncate(req.Query, 50)),
			)
			if s.metrics != nil {
				s.metrics.RecordRateLimitRejected()
			}
			s.recordSearch(req.Mode, "rate_limited", startTime)
			return nil, domain.ErrRateLimited
		}

		var err error
		resp, err = s.providerSearch(ctx, req, keys, cKey)
		if err != nil {
			if errors.Is(err, search.ErrEmptyResults) {
				s.recordSearch(req.Mode, "no_results", startTime)
				return &domain.Report{
					Query: req.Query,
					Mode:  req.Mode,
					Items: []domain.Item{},
					Summary: fmt.Sprintf("No %s results found for query: '%s'. Try a different search term or search type.",
						req.Mode, req.Query),
					ErrorKind: domain.ErrorKindNoResults,
				}, nil
			}
			s.recordSearch(req.Mode, "provider_error", startTime)
			return nil, fmt.Errorf("search: %w", err)
		}
	}

	urls := make([]string, len(resp.Results))
	for i, r := range resp.Results {
		urls[i] = r.URL
	}

	outcomes := s.fetcher.FetchAll(ctx, urls)

	report := s.assemble(req, resp.Results, outcomes)

	s.logger.Info("search processed",
		zap.String("query", truncate(req.Query, 50)),
		zap.String("mode", string(req.Mode)),
		zap.Int("results", len(report.Items)),
		zap.Int("extracted", report.Extracted()),
	)

	s.recordSearch(req.Mode, "success", startTime)
	return report, nil
}

func (s *webSearchService) SearchText(ctx context.Context, req domain.Request) (string, error) {
	report, err := s.Search(ctx, req)
	if err != nil {
		return "", err
	}

	if len(report.Items) == 0 {
		return report.Summary, nil
	}

	if report.JoinedText == "" {
		return "", fmt.Errorf("%w: found %d %s results for '%s', but couldn't extract readable content from any of them",
			domain.ErrNoContent, len(report.Items), report.Mode, report.Query)
	}

	return report.Summary + "\n\n---\n\n" + report.JoinedText, nil
}

// providerSearch ходит к провайдеру и, если задан cKey, кладёт
// успешный ответ в кеш. Чтение кеша происходит раньше, в Search.
func (s *webSearchService) providerSearch(ctx context.Context, req domain.Request, keys []string, cKey string) (*search.Response, error) {
	searchStart := time.Now()
	resp, err := s.provider.Search(ctx, search.Request{
		Query:       req.Query,
		Mode:        req.Mode,
		NumResults:  req.NumResults,
		Keys:        keys,
		UseFallback: req.UseFallback,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordProviderRequest("error", time.Since(searchStart))
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordProviderRequest("success", time.Since(searchStart))
	}

	if cKey != "" {
		s.cache.Set(cKey, resp, s.cacheTTL)
	}

	return resp, nil
}

// assemble превращает пары (hit провайдера, исход fetch) в элементы
// отчёта. Позиции сохраняются 1:1 с ответом провайдера: упавший fetch
// оставляет на своём месте элемент с пустым текстом и ошибкой.
func (s *webSearchService) assemble(req domain.Request, results []search.Result, outcomes []fetch.Outcome) *domain.Report {
	items := make([]domain.Item, len(results))
	blocks := make([]string, 0, len(results))
	extracted := 0

	for i, r := range results {
		out := outcomes[i]

		item := domain.Item{
			Title:     r.Title,
			URL:       r.URL,
			Domain:    domainFromURL(r.URL),
			FetchedAt: time.Now(),
		}
		if req.Mode == domain.ModeNews {
			item.Source = r.Source
			item.Date = newsDate(r.RawDate)
		}

		if out.Err != nil {
			item.Err = out.Err.Error()
			if s.metrics != nil {
				s.metrics.RecordPageFetch("error")
			}
			items[i] = item
			continue
		}

		item.StatusCode = out.StatusCode
		if s.metrics != nil {
			s.metrics.RecordPageFetch("success")
		}
		if req.IncludeHTML {
			item.RawHTML = out.Body
		}

		if extract.LooksLikeHTML(out.ContentType, out.Body) {
			item.CleanedText = extract.MainText(out.Body, r.URL)
		}

		if item.CleanedText == "" {
			item.Err = "no extractable content"
			if s.metrics != nil {
				s.metrics.RecordExtraction(false)
			}
		} else {
			extracted++
			if s.metrics != nil {
				s.metrics.RecordExtraction(true)
			}
			blocks = append(blocks, formatBlock(item, req.Mode))
		}

		items[i] = item
	}

	return &domain.Report{
		Query:      req.Query,
		Mode:       req.Mode,
		Items:      items,
		JoinedText: strings.Join(blocks, blockSeparator),
		Summary: fmt.Sprintf("Successfully extracted content from %d out of %d %s results for query: '%s'",
			extracted, len(results), req.Mode, req.Query),
	}
}

func (s *webSearchService) recordSearch(mode domain.Mode, status string, startTime time.Time) {
	if s.metrics != nil {
		s.metrics.RecordSearch(string(mode), status, time.Since(startTime))
	}
}

func (s *webSearchService) recordAnalytics(elapsed time.Duration, resultCount int) {
	if s.analytics == nil {
		return
	}
	// fire-and-forget: контекст вызова к этому моменту мог быть отменён
	if err := s.analytics.RecordRequest(context.Background(), elapsed, resultCount); err != nil {
		s.logger.Warn("failed to record analytics", zap.Error(err))
	}
}

func cacheKey(req domain.Request) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", req.Mode, req.Query, req.NumResults)))
	return hex.EncodeToString(h[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
