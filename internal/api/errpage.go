package api

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const maxDetail = 256

// PageText reduces an error response body to one line for the log.
// HTML error pages are reduced to their title and visible text.
func PageText(contentType string, body []byte) string {
	if !strings.Contains(contentType, "html") && !looksLikeHTML(body) {
		return clip(strings.Join(strings.Fields(string(body)), " "))
	}

	node, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return clip(string(body))
	}
	doc := goquery.NewDocumentFromNode(node)
	doc.Find("script, style").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	switch {
	case title == "":
		return clip(text)
	case text == "" || strings.HasPrefix(text, title):
		return clip(title)
	default:
		return clip(title + ": " + text)
	}
}

func looksLikeHTML(body []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 64 {
		head = head[:64]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxDetail {
		return s
	}
	return string(r[:maxDetail-1]) + "…"
}
