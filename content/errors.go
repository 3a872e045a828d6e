package content

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks input the caller sent malformed: bad URL scheme,
	// empty or out-of-range text. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction marks a byte stream that could not be parsed as a document.
	ErrExtraction = errors.New("extraction failed")
)

// FetchKind classifies a page-fetch failure.
type FetchKind int

const (
	FetchOther FetchKind = iota
	FetchHostNotFound
	FetchTimeout
	FetchBlocked
	FetchNotFound
)

// FetchError reports a failed page fetch with a category-specific message.
// Scraping is best-effort: callers surface these, they never retry.
type FetchError struct {
	Kind FetchKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHostNotFound:
		return fmt.Sprintf("Host not found: could not resolve %s", e.URL)
	case FetchTimeout:
		return fmt.Sprintf("Timed out fetching %s", e.URL)
	case FetchBlocked:
		return fmt.Sprintf("Access blocked (403): %s refused the request", e.URL)
	case FetchNotFound:
		return fmt.Sprintf("Page not found (404): %s", e.URL)
	default:
		if e.Err != nil {
			return fmt.Sprintf("Failed to fetch %s: %v", e.URL, e.Err)
		}
		return fmt.Sprintf("Failed to fetch %s", e.URL)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchKind reports whether err is a FetchError of the given kind.
func IsFetchKind(err error, kind FetchKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

func IsNotFound(err error) bool { return IsFetchKind(err, FetchNotFound) }
func IsBlocked(err error) bool  { return IsFetchKind(err, FetchBlocked) }
func IsTimeout(err error) bool  { return IsFetchKind(err, FetchTimeout) }
