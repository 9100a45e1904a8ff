package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/kitbuilder587/webagent/internal/domain"
)

const blockSeparator = "\n---\n"

func domainFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// newsDate приводит сырую дату провайдера к YYYY-MM-DD.
// Провайдер шлёт что угодно ("Jan 3, 2025", относительные даты);
// всё, что не парсится, превращается в "Unknown".
func newsDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Unknown"
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "Unknown"
	}
	return t.Format("2006-01-02")
}

// formatBlock собирает канонический текстовый блок одного результата:
// заголовок, строка метаданных, URL, затем извлечённый текст.
func formatBlock(item domain.Item, mode domain.Mode) string {
	if mode == domain.ModeNews {
		source := item.Source
		if source == "" {
			source = "Unknown"
		}
		return fmt.Sprintf("## %s\n**Source:** %s   **Date:** %s\n**URL:** %s\n\n%s\n",
			item.Title, source, item.Date, item.URL, strings.TrimSpace(item.CleanedText))
	}

	return fmt.Sprintf("## %s\n**Domain:** %s\n**URL:** %s\n\n%s\n",
		item.Title, item.Domain, item.URL, strings.TrimSpace(item.CleanedText))
}
