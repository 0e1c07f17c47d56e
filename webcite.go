// Package webcite answers natural-language questions using only content it
// has previously ingested from web pages, attaching verifiable source
// citations to every answer. Pages are fetched, reduced to markdown, split
// into overlapping chunks, embedded, and stored under a content address
// derived from the source URL; questions are answered by retrieving the
// most similar chunks and constraining generation to cite them.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, trafilatura/).
package webcite
