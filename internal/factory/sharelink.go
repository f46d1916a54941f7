package factory

import (
	"strconv"
	"strings"
)

// shareLink is a share link cut into its raw, still-encoded parts.
//
// The body is never cut at '/': base64 payloads use it as an ordinary character.
type shareLink struct {
	scheme   string
	body     string // everything between "://" and "?"/"#"
	userinfo string
	hostport string
	hasUser  bool
	query    string
	fragment string
}

func splitShareLink(uri string) (shareLink, bool) {
	var l shareLink
	scheme, rest, ok := strings.Cut(strings.TrimSpace(uri), "://")
	if !ok || scheme == "" {
		return l, false
	}
	l.scheme = strings.ToLower(scheme)
	rest, l.fragment, _ = strings.Cut(rest, "#")
	rest, l.query, _ = strings.Cut(rest, "?")
	l.body = rest

	hostport := l.body
	if i := strings.LastIndex(l.body, "@"); i >= 0 {
		l.userinfo = l.body[:i]
		l.hasUser = true
		hostport = l.body[i+1:]
	}
	if i := strings.Index(hostport, "/"); i >= 0 {
		hostport = hostport[:i]
	}
	l.hostport = hostport
	return l, true
}

// schemeOf returns the lowercased scheme of uri, or "" when uri does not start
// with one (JSON text containing "://" inside a value has no scheme).
func schemeOf(uri string) string {
	scheme, _, ok := strings.Cut(strings.TrimSpace(uri), "://")
	if !ok || scheme == "" {
		return ""
	}
	for i, r := range scheme {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && ('0' <= r && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return ""
		}
	}
	return strings.ToLower(scheme)
}

func parsePort(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 65535 {
		return 0, false
	}
	return n, true
}
