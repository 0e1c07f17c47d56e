// Package goquery provides a selector-based fallback content extractor.
// It is less precise than the trafilatura extractor but has no failure
// modes beyond unparsable HTML, which makes it a useful last resort.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webcite"
)

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{"article", "main", "[role=main]", "body"}

// boilerplateSelectors are removed from the document before extraction.
var boilerplateSelectors = "script, style, nav, header, footer, aside, noscript"

// Ensure Extractor implements webcite.Extractor at compile time.
var _ webcite.Extractor = (*Extractor)(nil)

// Extractor extracts main content using CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*webcite.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, webcite.Errorf(webcite.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, webcite.Errorf(webcite.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}

	doc.Find(boilerplateSelectors).Remove()

	var contentHTML string
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		inner, err := sel.Html()
		if err != nil {
			continue
		}
		if strings.TrimSpace(sel.Text()) != "" {
			contentHTML = inner
			break
		}
	}

	return &webcite.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// FallbackExtractor chains a primary extractor with a fallback used when
// the primary fails or produces no content.
type FallbackExtractor struct {
	Primary  webcite.Extractor
	Fallback webcite.Extractor
}

var _ webcite.Extractor = (*FallbackExtractor)(nil)

// Extract tries the primary extractor first and falls back when it errors
// or returns empty content.
func (e *FallbackExtractor) Extract(rawHTML string) (*webcite.ExtractResult, error) {
	result, err := e.Primary.Extract(rawHTML)
	if err == nil && strings.TrimSpace(result.ContentHTML) != "" {
		return result, nil
	}

	fallback, ferr := e.Fallback.Extract(rawHTML)
	if ferr != nil {
		if err != nil {
			return nil, err
		}
		return nil, ferr
	}
	return fallback, nil
}
