package content

// Limits applied while collecting page structure.
const (
	maxHeadings       = 20
	maxListItems      = 50
	minListItemLen    = 10
	maxListItemLen    = 499
	maxHeadingTextLen = 199
)

// Heading is one document heading with its level (1-6).
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// ScrapedPage is the cleaned result of fetching a web page. It is consumed
// immediately by deck generation or the fallback slide builder.
type ScrapedPage struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Headings    []Heading `json:"headings"`
	ListItems   []string  `json:"listItems"`
}

// PDFInfo carries the embedded metadata of a PDF document, when present.
type PDFInfo struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Subject  string `json:"subject"`
	Keywords string `json:"keywords"`
}

// PDFDocument is the cleaned text of a PDF plus its metadata record.
type PDFDocument struct {
	Text      string  `json:"text"`
	Info      PDFInfo `json:"info"`
	PageCount int     `json:"pageCount"`
}
