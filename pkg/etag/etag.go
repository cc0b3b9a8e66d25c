package etag

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"golang.org/x/crypto/blake2b"
)

// For computes a strong ETag for a response body using a 128-bit
// BLAKE2b digest of the content.
func For(body []byte) string {
	sum := blake2b.Sum256(body)
	return fmt.Sprintf("%q", hex.EncodeToString(sum[:16]))
}

// Matches reports whether the request's If-None-Match header matches
// the given ETag, meaning the client's cached copy is still current.
func Matches(r *http.Request, tag string) bool {
	match := r.Header.Get("If-None-Match")
	if match == "" {
		return false
	}
	if match == "*" {
		return true
	}
	for {
		match = trimSpaceAndCommas(match)
		if match == "" {
			return false
		}
		candidate, rest := nextETag(match)
		if candidate == tag || "W/"+candidate == tag || candidate == "W/"+tag {
			return true
		}
		match = rest
	}
}

func trimSpaceAndCommas(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == ',' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}

func nextETag(s string) (tag, rest string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
