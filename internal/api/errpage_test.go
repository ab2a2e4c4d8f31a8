package api

import (
	"strings"
	"testing"
)

const whitelabel = `<html><head><title>Error</title><style>body{}</style></head><body><h1>Whitelabel Error Page</h1>
<p>This application has no explicit mapping for /error.</p><div>There was an unexpected error (type=Bad Request, status=400).</div></body></html>`

func TestPageText(t *testing.T) {
	got := PageText("text/html;charset=UTF-8", []byte(whitelabel))
	if !strings.HasPrefix(got, "Error: Whitelabel Error Page") {
		t.Errorf("PageText = %q", got)
	}
	if strings.Contains(got, "body{}") {
		t.Errorf("style text leaked: %q", got)
	}

	got = PageText("", []byte("<!DOCTYPE html><html><body>  bad \n request </body></html>"))
	if got != "bad request" {
		t.Errorf("sniffed html = %q", got)
	}

	got = PageText("application/json", []byte("{\"error\":\n \"Bad Request\"}"))
	if got != `{"error": "Bad Request"}` {
		t.Errorf("json body = %q", got)
	}

	long := strings.Repeat("x", 1000)
	if got := PageText("text/plain", []byte(long)); len([]rune(got)) != maxDetail {
		t.Errorf("clipped length = %d, want %d", len([]rune(got)), maxDetail)
	}
}
