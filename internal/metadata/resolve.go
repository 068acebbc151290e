package metadata

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveTarget turns user input into an absolute, fetchable URL.
//
// Input without an http:// or https:// prefix is assumed to be https. There is no
// plaintext fallback: a failed https fetch surfaces as a connection error.
func ResolveTarget(raw string) (*url.URL, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return nil, ErrMissingTarget
	}
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidTarget, normalized)
	}
	return u, nil
}
