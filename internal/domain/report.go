package domain

import "time"

// Item - один результат поиска после fetch+extract.
// CleanedText пустой, если извлечь текст не удалось; это не ошибка
// вызова, а свойство конкретной страницы (Err хранит причину).
type Item struct {
	Title       string
	URL         string
	Domain      string
	Date        string // ISO YYYY-MM-DD или "Unknown", только для news
	Source      string // только для news
	CleanedText string
	RawHTML     string
	StatusCode  int
	Err         string
	FetchedAt   time.Time
}

// Report - итог одного вызова. Items всегда той же длины и в том же
// порядке, что список результатов провайдера: потребители адресуют
// исходы по позиции.
type Report struct {
	Query      string
	Mode       Mode
	Items      []Item
	JoinedText string
	Summary    string
	ErrorKind  string
}

const (
	ErrorKindNoResults = "no_results"
)

// Extracted считает элементы с непустым текстом.
func (r *Report) Extracted() int {
	n := 0
	for i := range r.Items {
		if r.Items[i].CleanedText != "" {
			n++
		}
	}
	return n
}

// RequestStats - агрегат по записанным запросам за окно в N дней.
type RequestStats struct {
	Requests       int
	AvgDurationSec float64
	TotalResults   int
}
