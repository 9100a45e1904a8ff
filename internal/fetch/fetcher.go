package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Заголовки "как у браузера" - без них многие сайты отдают 403.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7",
	"Referer":         "https://www.google.com",
}

// страницы длиннее обрезаем, экстрактору хватает префикса
const maxBodyBytes = 10 << 20

type Config struct {
	Timeout time.Duration
}

type Outcome struct {
	StatusCode  int
	ContentType string
	Body        string
	Err         error
}

type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	// redirects стандартный клиент проходит сам
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// FetchAll забирает все URL одновременно и ждёт завершения каждого.
// Исходы стоят на тех же позициях, что и входные URL; ошибка одной
// страницы не трогает остальные и не отменяет batch.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Outcome {
	outcomes := make([]Outcome, len(urls))

	g, ctx := errgroup.WithContext(ctx)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			outcomes[i] = f.fetchOne(ctx, u)
			return nil
		})
	}

	g.Wait()
	return outcomes
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("page fetch failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return Outcome{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Outcome{StatusCode: resp.StatusCode, Err: err}
	}

	return Outcome{
		StatusCode:  resp.StatusCode,
		ContentType: strings.ToLower(resp.Header.Get("Content-Type")),
		Body:        string(body),
	}
}
