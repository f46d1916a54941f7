package codec

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var ErrInvalidAuthority = errors.New("invalid authority")

// SplitAuthority splits "host", "host:port" or "[v6]:port" (optionally prefixed by a
// scheme) into host and port. An absent port is returned as "".
func SplitAuthority(s string) (host, port string, err error) {
	if !strings.Contains(s, "//") {
		s = "//" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidAuthority, err)
	}
	host = u.Hostname()
	if host == "" {
		return "", "", fmt.Errorf("%w: empty host in %q", ErrInvalidAuthority, s)
	}
	return host, u.Port(), nil
}

// JoinAuthority is the inverse of SplitAuthority; IPv6 hosts are bracketed.
func JoinAuthority(host, port string) string {
	if port == "" {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}
