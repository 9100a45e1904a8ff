package cache

import (
	"time"

	"github.com/kitbuilder587/webagent/internal/search"
)

// Cache хранит сырые ответы провайдера. Кешируются только general-
// запросы: news обязаны быть свежими.
type Cache interface {
	Get(key string) (*search.Response, bool)
	Set(key string, value *search.Response, ttl time.Duration)
	Delete(key string)
}
