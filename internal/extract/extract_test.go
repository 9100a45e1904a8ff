package extract

import (
	"strings"
	"testing"
)

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        bool
	}{
		{"html content type", "text/html; charset=utf-8", "anything", true},
		{"uppercase content type", "TEXT/HTML", "anything", true},
		{"json content type", "application/json", `{"a":1}`, false},
		{"no content type, html body", "", "<!doctype html><html><body>x</body></html>", true},
		{"no content type, plain body", "", "just some text", false},
		{"html tag past sniff window", "", strings.Repeat(" ", 2000) + "<html>", false},
		{"pdf", "application/pdf", "%PDF-1.4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeHTML(tt.contentType, tt.body); got != tt.want {
				t.Errorf("LooksLikeHTML(%q, ...) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestMainText_Article(t *testing.T) {
	paragraph := strings.Repeat("Готовый к чтению абзац со связным текстом о предмете статьи. ", 20)
	html := `<html><head><title>t</title></head><body>
		<nav><a href="/">Home</a><a href="/about">About</a></nav>
		<article><h1>Заголовок</h1><p>` + paragraph + `</p></article>
		<footer>copyright</footer>
	</body></html>`

	text := MainText(html, "https://example.com/article")

	if !strings.Contains(text, "связным текстом") {
		t.Errorf("MainText() did not keep article body: %q", text)
	}
	if strings.Contains(text, "<p>") || strings.Contains(text, "<article>") {
		t.Errorf("MainText() leaked markup: %q", text)
	}
}

func TestMainText_FallbackToStripTags(t *testing.T) {
	// валидная разметка, но readability тут нечего выделить
	html := "<html><body><span>a</span> <span>b</span> <span>c</span></body></html>"

	text := MainText(html, "https://example.com")

	if text == "" {
		t.Fatal("MainText() = empty, want naive stripped text")
	}
	if !strings.Contains(text, "a b c") {
		t.Errorf("MainText() = %q, want stripped text containing %q", text, "a b c")
	}
}

func TestMainText_EmptyInput(t *testing.T) {
	if got := MainText("", "https://example.com"); got != "" {
		t.Errorf("MainText(\"\") = %q, want empty", got)
	}
	if got := MainText("   \n\t ", "https://example.com"); got != "" {
		t.Errorf("MainText(whitespace) = %q, want empty", got)
	}
}

func TestMainText_BadURL(t *testing.T) {
	html := "<html><body><p>still works</p></body></html>"
	if got := MainText(html, "::not-a-url::"); got == "" {
		t.Error("MainText() with unparseable url should still extract")
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "tags removed, whitespace collapsed",
			html: "<div>hello   <b>world</b>\n\n</div>",
			want: "hello world",
		},
		{
			name: "script and style dropped",
			html: "<html><head><style>.x{}</style></head><body><script>var a=1;</script>text</body></html>",
			want: "text",
		},
		{
			name: "malformed markup",
			html: "<div><p>broken <b>nesting</div>",
			want: "broken nesting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.html); got != tt.want {
				t.Errorf("StripTags() = %q, want %q", got, tt.want)
			}
		})
	}
}
