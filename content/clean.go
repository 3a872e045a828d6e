package content

import (
	"regexp"
	"strings"
)

var (
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
	spaceRunRe     = regexp.MustCompile(`[ \t]+`)
	hyphenBreakRe  = regexp.MustCompile(`(\w)-\n(\w)`)
)

// chromePhrases are line fragments typical of page furniture rather than
// article content. Matching is case-insensitive.
var chromePhrases = []string{
	"cookie",
	"privacy policy",
	"subscribe",
	"newsletter",
	"sign up",
	"sign-up",
	"sign in",
	"log in",
	"login",
	"loading",
}

// CleanText normalizes raw extracted text into canonical text. The steps run
// in a fixed order: collapse 3+ newlines to two, collapse space/tab runs to
// one space, rejoin words hyphen-broken across a line break, turn form feeds
// into paragraph breaks, trim every line, trim the whole text. Applying it to
// already-clean text returns the input unchanged.
func CleanText(text string) string {
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")
	text = strings.ReplaceAll(text, "\f", "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	// Form-feed conversion and line trimming can reopen newline runs.
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// StripChromeLines drops lines that match common UI chrome phrases
// (cookie banners, subscribe prompts, login links and the like).
func StripChromeLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isChromeLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isChromeLine(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range chromePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
