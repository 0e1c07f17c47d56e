package webcite

import (
	"strings"
)

// Split separators in order of preference: paragraph break, line break,
// word break.
var splitSeparators = []string{"\n\n", "\n", " "}

// SplitText splits text into chunks of at most size runes, with consecutive
// chunks sharing overlap runes. Boundaries prefer paragraph breaks over
// line breaks over word breaks; a hard cut is the last resort. Size and
// overlap are fixed configuration, not derived from content.
//
// Whitespace-only chunks are dropped; empty input returns nil.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakPoint(runes, start, end)
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}

		// Step back by overlap, but always make forward progress.
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// breakPoint finds the best cut position in runes[start:limit], searching
// backwards from limit for a preferred separator. The cut is never moved
// earlier than halfway through the window so chunks stay reasonably full.
func breakPoint(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	floor := len(window) / 2

	for _, sep := range splitSeparators {
		if idx := strings.LastIndex(window, sep); idx >= floor {
			// Cut after the separator so it isn't carried into the next chunk.
			return start + len([]rune(window[:idx+len(sep)]))
		}
	}

	return limit
}
