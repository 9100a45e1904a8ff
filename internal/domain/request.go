package domain

import "strings"

type Mode string

const (
	ModeGeneral Mode = "search"
	ModeNews    Mode = "news"
)

const (
	MinResults = 1
	MaxResults = 20
	// DefaultResults подставляет вызывающая сторона, когда пользователь
	// не задал число. Normalize ноль особо не трактует: как и любое
	// значение меньше MinResults, он зажимается в MinResults.
	DefaultResults = 4
)

// ParseMode маппит произвольную строку в режим поиска.
// Всё неизвестное трактуем как обычный поиск.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeNews):
		return ModeNews
	default:
		return ModeGeneral
	}
}

// Request - один вызов пайплайна. Собирается один раз, дальше не меняется.
type Request struct {
	Query          string
	Mode           Mode
	NumResults     int
	APIKey         string
	FallbackAPIKey string
	UseFallback    bool
	IncludeHTML    bool
}

func (r *Request) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// Normalize приводит запрос к допустимым границам: количество
// результатов зажимается в [1,20], неизвестный режим превращается
// в обычный поиск.
func (r *Request) Normalize() {
	r.Query = strings.TrimSpace(r.Query)

	if r.NumResults < MinResults {
		r.NumResults = MinResults
	}
	if r.NumResults > MaxResults {
		r.NumResults = MaxResults
	}

	if r.Mode != ModeGeneral && r.Mode != ModeNews {
		r.Mode = ModeGeneral
	}
}
