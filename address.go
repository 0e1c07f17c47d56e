package webcite

import (
	"encoding/binary"
	"encoding/hex"
	"net/url"

	"github.com/cespare/xxhash/v2"
)

// ContentAddress computes the deterministic digest of a source URL string.
// Identical URL strings always produce the same address; the address is the
// idempotency and replace key for everything ingested from that URL. The
// URL is hashed exactly as supplied, without canonicalization.
func ContentAddress(sourceURL string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(sourceURL))
	return hex.EncodeToString(b[:])
}

// Domain returns the host part of a URL, used as chunk provenance metadata.
// Returns an empty string if the URL cannot be parsed.
func Domain(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	return u.Host
}
