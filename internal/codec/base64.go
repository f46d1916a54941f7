package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBase64 = errors.New("invalid base64")

// DecodeBase64 accepts both the standard and the URL-safe alphabet and tolerates
// missing padding. Surrounding whitespace and line breaks are ignored.
func DecodeBase64(s string) (string, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		case '-':
			return '+'
		case '_':
			return '/'
		}
		return r
	}, s)
	if s == "" {
		return "", nil
	}
	// Fix padding
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return string(b), nil
}

func EncodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
