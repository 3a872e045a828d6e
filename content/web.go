package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	fetchTimeout     = 15 * time.Second
	maxRedirects     = 5
	maxPageBytes     = 10 << 20

	// A candidate content region must carry more text than this to win.
	minRegionTextLen = 200
)

// strippedSelectors are removed from the document before any text is read.
var strippedSelectors = []string{
	"script", "style", "noscript", "nav", "header", "footer", "aside", "iframe", "form",
	".ad", ".ads", ".advertisement", `[class*="advert"]`,
	".comments", "#comments", ".comment",
	".social", ".social-share", ".share-buttons",
	".sidebar", ".cookie-banner", ".newsletter-signup", ".popup", ".modal",
}

// contentRegionSelectors are tried in order; the first whose text exceeds
// minRegionTextLen becomes the content region, otherwise the full body is used.
var contentRegionSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".post-content",
	".article-content",
	".entry-content",
	".article-body",
	".post-body",
	".story-body",
	".content",
	"#content",
	".main-content",
}

func newPageClient() *http.Client {
	return &http.Client{
		Timeout: fetchTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// ScrapePage fetches a web page and derives its title, description, cleaned
// body text and structural fallback material (headings, list items).
func ScrapePage(ctx context.Context, rawURL string) (*ScrapedPage, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable URL: %v", ErrInvalidInput, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: URL scheme must be http or https, got %q", ErrInvalidInput, parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, &FetchError{Kind: FetchOther, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := newPageClient().Do(req)
	if err != nil {
		return nil, classifyFetchError(rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, &FetchError{Kind: FetchBlocked, URL: rawURL}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{Kind: FetchNotFound, URL: rawURL}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &FetchError{Kind: FetchOther, URL: rawURL, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &FetchError{Kind: FetchOther, URL: rawURL, Err: fmt.Errorf("parse HTML: %v", err)}
	}

	return buildPage(doc), nil
}

func classifyFetchError(rawURL string, err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &FetchError{Kind: FetchHostNotFound, URL: rawURL, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: FetchTimeout, URL: rawURL, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: FetchTimeout, URL: rawURL, Err: err}
	}
	return &FetchError{Kind: FetchOther, URL: rawURL, Err: err}
}

func buildPage(doc *goquery.Document) *ScrapedPage {
	title := pageTitle(doc)
	description := pageDescription(doc)

	doc.Find(strings.Join(strippedSelectors, ", ")).Remove()

	rawText := regionText(selectContentRegion(doc))

	return &ScrapedPage{
		Title:       title,
		Description: description,
		Content:     StripChromeLines(CleanText(rawText)),
		Headings:    collectHeadings(doc),
		ListItems:   collectListItems(doc),
	}
}

// pageTitle resolves the page title: <title>, then og:title, then the first
// <h1>, then a fixed placeholder.
func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return "Untitled Page"
}

func pageDescription(doc *goquery.Document) string {
	if d, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(d); t != "" {
			return t
		}
	}
	if d, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(d); t != "" {
			return t
		}
	}
	return ""
}

func selectContentRegion(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentRegionSelectors {
		region := doc.Find(sel).First()
		if region.Length() == 0 {
			continue
		}
		if len(regionText(region)) > minRegionTextLen {
			return region
		}
	}
	return doc.Find("body")
}

// regionText joins the text of content-bearing elements with blank lines.
func regionText(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, td").Each(func(_ int, node *goquery.Selection) {
		if text := strings.TrimSpace(node.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

func collectHeadings(doc *goquery.Document) []Heading {
	var headings []Heading
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(headings) >= maxHeadings {
			return false
		}
		text := strings.TrimSpace(s.Text())
		if len(text) < 1 || len(text) > maxHeadingTextLen {
			return true
		}
		headings = append(headings, Heading{Level: headingLevel(goquery.NodeName(s)), Text: text})
		return true
	})
	return headings
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 2
}

func collectListItems(doc *goquery.Document) []string {
	var items []string
	doc.Find("li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(items) >= maxListItems {
			return false
		}
		text := strings.TrimSpace(s.Text())
		if len(text) < minListItemLen || len(text) > maxListItemLen {
			return true
		}
		items = append(items, text)
		return true
	})
	return items
}
