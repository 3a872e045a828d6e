package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestScrapePageRejectsNonHTTPScheme(t *testing.T) {
	_, err := ScrapePage(context.Background(), "ftp://example.com/report.html")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for ftp scheme, got %v", err)
	}
}

func TestScrapePageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := ScrapePage(context.Background(), server.URL+"/missing")
	if !IsNotFound(err) {
		t.Fatalf("Expected a not-found fetch error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Page not found (404)") {
		t.Errorf("Expected 404 message, got %q", err.Error())
	}
}

func TestScrapePageBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := ScrapePage(context.Background(), server.URL)
	if !IsBlocked(err) {
		t.Errorf("Expected a blocked fetch error, got %v", err)
	}
}

func TestScrapePageServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := ScrapePage(context.Background(), server.URL)
	if !IsFetchKind(err, FetchOther) {
		t.Fatalf("Expected a generic fetch error, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("Expected status code in message, got %q", err.Error())
	}
}

func TestScrapePageHostNotFound(t *testing.T) {
	_, err := ScrapePage(context.Background(), "http://nonexistent-host-qz13x.invalid/page")
	if !IsFetchKind(err, FetchHostNotFound) {
		t.Errorf("Expected a host-not-found fetch error, got %v", err)
	}
}

func TestScrapePageSendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><head><title>UA</title></head><body><p>ok</p></body></html>"))
	}))
	defer server.Close()

	if _, err := ScrapePage(context.Background(), server.URL); err != nil {
		t.Fatalf("Expected scrape to succeed, got %v", err)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("Expected a browser user agent, got %q", gotUA)
	}
}

func TestScrapePageTitleCascade(t *testing.T) {
	// og:title wins when <title> is absent
	ogPage := `<html><head><meta property="og:title" content="OG Wins"></head><body><h1>H1 Loses</h1></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ogPage))
	}))
	defer server.Close()

	page, err := ScrapePage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected scrape to succeed, got %v", err)
	}
	if page.Title != "OG Wins" {
		t.Errorf("Expected og:title to win, got %q", page.Title)
	}

	// No title at all falls back to the placeholder
	bare := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>no titles here</p></body></html>"))
	}))
	defer bare.Close()

	page, err = ScrapePage(context.Background(), bare.URL)
	if err != nil {
		t.Fatalf("Expected scrape to succeed, got %v", err)
	}
	if page.Title != "Untitled Page" {
		t.Errorf("Expected placeholder title, got %q", page.Title)
	}
}

func TestScrapePagePrefersArticleRegion(t *testing.T) {
	longPara := strings.Repeat("Fiber networks move data with light instead of electricity. ", 6)
	html := `<html><head><title>Region Test</title><meta name="description" content="About fiber"></head><body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<div class="sidebar"><p>Completely unrelated sidebar text that should never appear.</p></div>
<article>
<h2>How Fiber Works</h2>
<p>` + longPara + `</p>
<ul><li>Light pulses carry encoded data over long distances.</li></ul>
</article>
<footer><p>Copyright footer text.</p></footer>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	defer server.Close()

	page, err := ScrapePage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected scrape to succeed, got %v", err)
	}

	if page.Description != "About fiber" {
		t.Errorf("Expected meta description, got %q", page.Description)
	}
	if !strings.Contains(page.Content, "Fiber networks move data") {
		t.Errorf("Expected article text in content, got %q", page.Content)
	}
	if strings.Contains(page.Content, "sidebar text") || strings.Contains(page.Content, "Copyright footer") {
		t.Errorf("Expected stripped elements to stay out of content, got %q", page.Content)
	}

	foundHeading := false
	for _, h := range page.Headings {
		if h.Text == "How Fiber Works" && h.Level == 2 {
			foundHeading = true
		}
	}
	if !foundHeading {
		t.Errorf("Expected the h2 heading to be collected, got %v", page.Headings)
	}

	if len(page.ListItems) != 1 || !strings.Contains(page.ListItems[0], "Light pulses") {
		t.Errorf("Expected one list item, got %v", page.ListItems)
	}
}

func TestScrapePageFallsBackToBody(t *testing.T) {
	// No candidate region is long enough, so the body is used
	html := `<html><head><title>Short</title></head><body>
<p>Body paragraph one about deep sea exploration and its many surprises.</p>
<p>Body paragraph two about pressure, light and the creatures that cope.</p>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	defer server.Close()

	page, err := ScrapePage(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected scrape to succeed, got %v", err)
	}
	if !strings.Contains(page.Content, "deep sea exploration") || !strings.Contains(page.Content, "creatures that cope") {
		t.Errorf("Expected body paragraphs in content, got %q", page.Content)
	}
}
