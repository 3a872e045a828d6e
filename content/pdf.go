package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExtractPDF extracts the full text and metadata record of a PDF document.
// The byte stream is validated first; anything that does not parse as a PDF
// fails with ErrExtraction. Page texts are joined with form feeds so the
// cleaning pass turns page boundaries into paragraph breaks.
func ExtractPDF(data []byte) (*PDFDocument, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrExtraction)
	}

	conf := model.NewDefaultConfiguration()
	pctx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	doc := &PDFDocument{
		PageCount: pctx.PageCount,
		Info: PDFInfo{
			Title:    pctx.Title,
			Author:   pctx.Author,
			Subject:  pctx.Subject,
			Keywords: pctx.Keywords,
		},
	}

	text, err := pdfPlainText(data)
	if err != nil {
		return nil, err
	}
	doc.Text = CleanText(text)
	if doc.Text == "" {
		return nil, fmt.Errorf("%w: document contains no extractable text", ErrExtraction)
	}
	return doc, nil
}

// pdfPlainText pulls plain text per page. ledongthuc/pdf panics on some
// malformed content streams, so the recover is part of the contract here.
func pdfPlainText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	var pages []string
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\f"), nil
}
