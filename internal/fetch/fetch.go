// Package fetch retrieves job posting pages and reduces them to readable text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeTailor/1.0)"

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 5 << 20

// Error represents an error during URL fetching.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// UseBrowser renders the page in headless Chrome when the plain HTTP
	// response carries too little text, as single-page job boards do.
	UseBrowser bool
}

// DefaultOptions returns the defaults for fetching.
func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Renderer returns the rendered HTML of a page.
type Renderer func(ctx context.Context, url string, timeout time.Duration) (string, error)

// Fetcher turns job posting URLs into plain text.
type Fetcher struct {
	client  *http.Client
	options Options
	render  Renderer
}

// New creates a Fetcher. Zero option fields take their defaults.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		options: opts,
		render:  RenderWithBrowser,
	}
}

// FetchText downloads a page and returns the text of its job description.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	html, err := f.fetchHTML(ctx, rawURL)
	if err != nil {
		return "", err
	}

	platform := DetectPlatform(rawURL)
	text, err := ExtractMainText(html, platform)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "content extraction failed", Cause: err}
	}

	if f.options.UseBrowser && f.render != nil && NeedsBrowser(text) {
		log.Printf("[fetch] %s yielded %d chars, rendering in browser", rawURL, len(text))
		rendered, renderErr := f.render(ctx, rawURL, f.options.Timeout)
		if renderErr != nil {
			log.Printf("[fetch] browser rendering failed, keeping HTTP content: %v", renderErr)
			return text, nil
		}
		if browserText, err := ExtractMainText(rendered, platform); err == nil {
			text = browserText
		}
	}

	return text, nil
}

func (f *Fetcher) fetchHTML(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.options.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			URL:        rawURL,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// ExtractMainText parses HTML and returns the text of the job description.
// Noise elements are removed first; the first matching content selector wins and
// the body is used when none match.
func ExtractMainText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(noiseSelectors(platform), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range contentSelectors(platform) {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	var lines []string
	for _, line := range strings.Split(content.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
