package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/webagent/internal/domain"
	"github.com/kitbuilder587/webagent/internal/search"
)

type Config struct {
	SearchURL    string
	NewsURL      string
	Location     string
	CountryCode  string
	LanguageCode string
	Timeout      time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.SearchURL == "" {
		cfg.SearchURL = "https://google.serper.dev/search"
	}
	if cfg.NewsURL == "" {
		cfg.NewsURL = "https://google.serper.dev/news"
	}
	if cfg.Location == "" {
		cfg.Location = "France"
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "fr"
	}
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "fr"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type serperRequest struct {
	Query    string `json:"q"`
	Num      int    `json:"num"`
	Location string `json:"location"`
	GL       string `json:"gl"`
	HL       string `json:"hl"`
	Type     string `json:"type,omitempty"`
	Page     int    `json:"page,omitempty"`
}

// Два эндпоинта отвечают структурно по-разному: organic без даты и
// источника, news с ними. Декодируем раздельными wire-структурами.
type organicItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type newsItem struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

type organicResponse struct {
	Organic []organicItem `json:"organic"`
}

type newsResponse struct {
	News []newsItem `json:"news"`
}

// Статусы, при которых имеет смысл попробовать другой ключ:
// auth/quota на конкретном ключе или временная ошибка сервера.
// 404/422 и прочие ошибки формы запроса другим ключом не лечатся.
var fallbackStatuses = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusUnauthorized:        true,
	http.StatusPaymentRequired:     true,
	http.StatusForbidden:           true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func (c *Client) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	if len(req.Keys) == 0 {
		return nil, search.ErrNoKeys
	}

	endpoint := c.cfg.SearchURL
	payload := serperRequest{
		Query:    req.Query,
		Num:      req.NumResults,
		Location: c.cfg.Location,
		GL:       c.cfg.CountryCode,
		HL:       c.cfg.LanguageCode,
	}
	if req.Mode == domain.ModeNews {
		endpoint = c.cfg.NewsURL
		payload.Type = "news"
		payload.Page = 1
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error

	for idx, key := range req.Keys {
		last := idx == len(req.Keys)-1

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("X-API-KEY", key)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = err
			c.logger.Warn("serper request failed",
				zap.Int("key_index", idx+1),
				zap.Error(err),
			)
			if !req.UseFallback || last {
				return nil, fmt.Errorf("%w: %v", search.ErrRequestFail, err)
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			if !req.UseFallback || last {
				return nil, fmt.Errorf("%w: %v", search.ErrRequestFail, err)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return c.decode(req.Mode, respBody)
		}

		c.logger.Warn("serper key rejected",
			zap.Int("key_index", idx+1),
			zap.Int("status", resp.StatusCode),
			zap.String("query", truncate(req.Query, 50)),
		)

		if !req.UseFallback || last {
			return nil, &search.StatusError{Code: resp.StatusCode}
		}
		if !fallbackStatuses[resp.StatusCode] {
			return nil, &search.StatusError{Code: resp.StatusCode}
		}

		c.logger.Info("falling back to next serper key",
			zap.Int("status", resp.StatusCode),
		)
	}

	// сюда попадаем только если цепочка исчерпана транспортными ошибками
	return nil, fmt.Errorf("%w: %v", search.ErrRequestFail, lastErr)
}

func (c *Client) decode(mode domain.Mode, body []byte) (*search.Response, error) {
	var results []search.Result

	if mode == domain.ModeNews {
		var parsed newsResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal news response: %w", err)
		}
		for _, it := range parsed.News {
			if it.Link == "" {
				continue
			}
			results = append(results, search.Result{
				Title:   it.Title,
				URL:     it.Link,
				RawDate: it.Date,
				Source:  it.Source,
			})
		}
	} else {
		var parsed organicResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal search response: %w", err)
		}
		for _, it := range parsed.Organic {
			if it.Link == "" {
				continue
			}
			results = append(results, search.Result{
				Title: it.Title,
				URL:   it.Link,
			})
		}
	}

	if len(results) == 0 {
		return nil, search.ErrEmptyResults
	}

	return &search.Response{Mode: mode, Results: results}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
