package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitbuilder587/webagent/internal/domain"
)

var (
	ErrEmptyResults = errors.New("no results found")
	ErrNoKeys       = errors.New("no api keys in chain")
	ErrRequestFail  = errors.New("search request failed")
)

// StatusError - терминальный не-200 ответ провайдера, после которого
// перебор ключей остановлен (либо ключи кончились, либо статус не из
// fallback-списка).
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search api returned status %d", e.Code)
}

type Provider interface {
	Search(ctx context.Context, req Request) (*Response, error)
}

type Request struct {
	Query       string
	Mode        domain.Mode
	NumResults  int
	Keys        []string // цепочка ключей, пробуются по порядку
	UseFallback bool
}

// Result - один хит провайдера. RawDate и Source заполнены только в
// news-режиме: организация ответа у двух эндпоинтов разная, и клиент
// декодирует их разными wire-структурами.
type Result struct {
	Title   string
	URL     string
	RawDate string
	Source  string
}

type Response struct {
	Mode    domain.Mode
	Results []Result
}
