package images

import (
	"strings"
)

// Resolver maps a short image keyword to a stock photo URL. Resolution is
// pure: the same keyword always yields the same URL, and no network calls
// are made.
type Resolver interface {
	Resolve(keyword string) string
}

// TopicEntry binds one curated photo to the terms that select it. Entries
// are checked in order, so more specific topics must sit above broader ones.
type TopicEntry struct {
	Terms []string
	URL   string
}

const unsplashParams = "?w=1600&q=80&fm=jpg&fit=crop"

func unsplash(id string) string {
	return "https://images.unsplash.com/" + id + unsplashParams
}

// DefaultTopicTable covers the subjects generated decks ask for most often.
var DefaultTopicTable = []TopicEntry{
	{Terms: []string{"fiber", "optic", "cable"}, URL: unsplash("photo-1558494949-ef010cbdcc31")},
	{Terms: []string{"network", "internet", "server", "datacenter"}, URL: unsplash("photo-1544197150-b99a580bb7a8")},
	{Terms: []string{"security", "cyber", "privacy", "lock", "encryption"}, URL: unsplash("photo-1563013544-824ae1b704d3")},
	{Terms: []string{"ai", "artificial intelligence", "machine learning", "neural", "robot"}, URL: unsplash("photo-1677442136019-21780ecad995")},
	{Terms: []string{"data", "analytics", "chart", "statistics", "dashboard"}, URL: unsplash("photo-1551288049-bebda4e38f71")},
	{Terms: []string{"cloud", "sky"}, URL: unsplash("photo-1483478550801-ceba5fe50e8e")},
	{Terms: []string{"code", "programming", "software", "developer"}, URL: unsplash("photo-1461749280684-dccba630e2f6")},
	{Terms: []string{"technology", "tech", "circuit", "chip", "computer"}, URL: unsplash("photo-1518770660439-4636190af475")},
	{Terms: []string{"finance", "money", "investment", "stock", "banking"}, URL: unsplash("photo-1579621970563-ebec7560ff3e")},
	{Terms: []string{"business", "office", "corporate", "strategy"}, URL: unsplash("photo-1507679799987-c73779587ccf")},
	{Terms: []string{"team", "meeting", "collaboration", "people"}, URL: unsplash("photo-1522071820081-009f0129c71c")},
	{Terms: []string{"health", "medical", "medicine", "hospital", "doctor"}, URL: unsplash("photo-1576091160399-112ba8d25d1d")},
	{Terms: []string{"education", "school", "learning", "student", "book"}, URL: unsplash("photo-1503676260728-1c00da094a0b")},
	{Terms: []string{"solar", "energy", "renewable", "wind", "power"}, URL: unsplash("photo-1509391366360-2e959784a276")},
	{Terms: []string{"environment", "nature", "forest", "climate", "green"}, URL: unsplash("photo-1441974231531-c6227db76b6e")},
	{Terms: []string{"science", "laboratory", "research", "experiment"}, URL: unsplash("photo-1532094349884-543bc11b234d")},
	{Terms: []string{"city", "urban", "architecture", "building"}, URL: unsplash("photo-1477959858617-67f85cf4f1df")},
	{Terms: []string{"food", "cooking", "restaurant", "meal"}, URL: unsplash("photo-1504674900247-0877df9cc836")},
	{Terms: []string{"travel", "vacation", "journey", "adventure"}, URL: unsplash("photo-1488646953014-85cb44e25828")},
	{Terms: []string{"space", "astronomy", "galaxy", "planet"}, URL: unsplash("photo-1446776811953-b23d57bd21aa")},
}

// fallbackPool serves keywords no topic entry matches. A keyword hashes to a
// fixed pool slot so repeated resolutions stay stable.
var fallbackPool = []string{
	unsplash("photo-1497032628192-86f99bcd76bc"),
	unsplash("photo-1454165804606-c3d57bc86b40"),
	unsplash("photo-1486312338219-ce68d2c6f44d"),
	unsplash("photo-1517245386807-bb43f82c33c4"),
	unsplash("photo-1460925895917-afdab827c52f"),
	unsplash("photo-1553877522-43269d4ea984"),
}

// TableResolver resolves keywords against a topic table with a hashed
// fallback pool.
type TableResolver struct {
	table []TopicEntry
	pool  []string
}

// NewDefaultResolver returns a resolver backed by the default topic table.
func NewDefaultResolver() *TableResolver {
	return &TableResolver{table: DefaultTopicTable, pool: fallbackPool}
}

// NewTableResolver builds a resolver over a custom table and pool.
func NewTableResolver(table []TopicEntry, pool []string) *TableResolver {
	return &TableResolver{table: table, pool: pool}
}

// Resolve returns the photo URL for a keyword, or "" for a blank keyword.
func (r *TableResolver) Resolve(keyword string) string {
	cleaned := cleanKeyword(keyword)
	if cleaned == "" {
		return ""
	}
	words := strings.Fields(cleaned)
	for _, entry := range r.table {
		for _, term := range entry.Terms {
			if matchesTerm(cleaned, words, term) {
				return entry.URL
			}
		}
	}
	if len(r.pool) == 0 {
		return ""
	}
	return r.pool[int(hashKeyword(cleaned))%len(r.pool)]
}

// matchesTerm matches multi-word terms by substring and single words by
// prefix. Terms of three characters or fewer require an exact word so that
// "ai" does not fire on "air".
func matchesTerm(cleaned string, words []string, term string) bool {
	if strings.Contains(term, " ") {
		return strings.Contains(cleaned, term)
	}
	for _, w := range words {
		if len(term) <= 3 {
			if w == term {
				return true
			}
		} else if strings.HasPrefix(w, term) {
			return true
		}
	}
	return false
}

// cleanKeyword lowercases and strips everything but letters, digits and
// single spaces.
func cleanKeyword(keyword string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(keyword) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func hashKeyword(s string) uint32 {
	var h uint32
	for _, r := range s {
		h = h*31 + uint32(r)
	}
	return h
}
