// Package server normalizes and validates HTTP origins for WebSocket requests
// to enforce configured access control.
package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// originPolicy decides which browser origins may open a chat connection.
// An empty allow-list or a "*" entry accepts every origin, including
// requests that carry no Origin header at all (non-browser clients).
type originPolicy struct {
	allowAll bool
	allowed  map[string]struct{}
	log      *slog.Logger
}

func newOriginPolicy(origins []string, log *slog.Logger) *originPolicy {
	p := &originPolicy{log: log, allowed: make(map[string]struct{})}

	trimmed := lo.Compact(lo.Map(origins, func(o string, _ int) string {
		return strings.TrimSpace(o)
	}))
	if len(trimmed) == 0 || lo.Contains(trimmed, "*") {
		p.allowAll = true
		return p
	}

	for _, origin := range trimmed {
		normalized, ok := normalizeOrigin(origin)
		if !ok {
			log.Warn("Ignoring invalid origin in configuration", "origin", origin)
			continue
		}
		p.allowed[normalized] = struct{}{}
	}
	return p
}

func normalizeOrigin(origin string) (string, bool) {
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", false
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	return strings.ToLower(parsed.Scheme) + "://" + strings.ToLower(parsed.Host), true
}

func (p *originPolicy) allows(r *http.Request) bool {
	if p.allowAll {
		return true
	}

	normalized, ok := normalizeOrigin(r.Header.Get("Origin"))
	if !ok {
		return false
	}
	_, exists := p.allowed[normalized]
	return exists
}

// check is the upgrader's CheckOrigin hook.
func (p *originPolicy) check(r *http.Request) bool {
	if p.allows(r) {
		return true
	}

	p.log.Warn("Blocked WebSocket connection from disallowed origin", "origin", r.Header.Get("Origin"))
	return false
}
