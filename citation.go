package webcite

import (
	"regexp"
	"strconv"
	"strings"
)

// NoInformationAnswer is the exact sentinel the synthesizer emits when no
// retrieved content answers the question. A raw answer equal to it (after
// trimming) resolves to an empty source list.
const NoInformationAnswer = "I couldn't find any information in the provided context to answer your question."

// citationRE matches bracketed numeric citation markers like [1].
var citationRE = regexp.MustCompile(`\[(\d+)\]`)

// ExtractCitations returns the citation numbers appearing in text, in order
// of first appearance. Repeats of the same number are ignored (first-seen
// wins): the result models the answer's claimed evidence order, independent
// of how many times a source is referenced.
func ExtractCitations(text string) []int {
	matches := citationRE.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(matches))
	var citations []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		citations = append(citations, n)
	}
	return citations
}

// ResolveCitations maps the citation markers in a raw generated answer to
// the source URLs of the retrieved chunks they reference, where marker [n]
// refers to retrieved[n-1]. Out-of-range markers are dropped silently: they
// indicate a generation-quality issue, not a system fault. Resolved URLs
// are deduplicated by value, preserving first-appearance order, since
// multiple markers may resolve to the same page.
//
// The answer text is returned unmodified. If it equals NoInformationAnswer,
// the source list is empty regardless of what was retrieved.
func ResolveCitations(raw string, retrieved []SearchResult) (string, []string) {
	if strings.TrimSpace(raw) == NoInformationAnswer {
		return raw, nil
	}

	var sources []string
	seen := make(map[string]bool)
	for _, n := range ExtractCitations(raw) {
		if n < 1 || n > len(retrieved) {
			continue
		}
		url := retrieved[n-1].Chunk.SourceURL
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		sources = append(sources, url)
	}

	return raw, sources
}
