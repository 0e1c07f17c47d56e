// Package trafilatura extracts main page content using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webcite"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webcite.Extractor at compile time.
var _ webcite.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML,
// removing navigation, footers and other boilerplate before chunking.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, webcite.Errorf(webcite.EUNAVAILABLE, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &webcite.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
