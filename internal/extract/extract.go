package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// сколько байт тела нюхаем, когда Content-Type ничего не сказал
const htmlSniffLen = 1024

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// LooksLikeHTML решает, стоит ли вообще запускать извлечение.
// Content-Type бывает пустой или врёт, поэтому второй шанс - префикс тела.
func LooksLikeHTML(contentType, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := body
	if len(head) > htmlSniffLen {
		head = head[:htmlSniffLen]
	}
	return strings.Contains(strings.ToLower(head), "<html")
}

// MainText вытаскивает основной читаемый текст страницы.
// Сначала readability; если он ничего не дал - тупая зачистка тегов.
// Никогда не возвращает ошибку: на безнадёжном входе выходит "".
func MainText(body, pageURL string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	if text := readableText(body, pageURL); text != "" {
		return text
	}

	return StripTags(body)
}

func readableText(body, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u == nil || u.Host == "" {
		// readability нужен абсолютный URL для резолва ссылок
		u, _ = url.Parse("http://localhost/")
	}

	article, err := readability.FromReader(strings.NewReader(body), u)
	if err != nil {
		return ""
	}
	return collapseLines(article.TextContent)
}

// StripTags - fallback-преобразование: выбросить разметку, схлопнуть
// пробелы. goquery даёт текст без script/style; если даже распарсить
// не вышло, остаётся regexp по сырой строке.
func StripTags(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err == nil {
		doc.Find("script, style, noscript").Remove()
		if text := collapse(doc.Text()); text != "" {
			return text
		}
	}
	return collapse(tagRe.ReplaceAllString(body, " "))
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// collapseLines чистит текст readability: схлопывает пробелы внутри
// строк, но абзацную структуру не разрушает.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = collapse(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
