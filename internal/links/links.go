// Package links finds share links in free text and subscription bodies.
package links

import (
	"bufio"
	"regexp"
	"strings"
	"unicode"

	"proxytray/internal/codec"
	"proxytray/internal/logger"
)

var schemePattern = regexp.MustCompile(`(?i)\b(?:vmess|vless|trojan|ss|hysteria2|hy2|hysteria)://`)

// trailing is punctuation that ends a sentence around a link rather than the link.
const trailing = ".,;)\"'!*"

// Extract finds every share link in text, in first-seen order without duplicates.
//
// A link body ends at the first whitespace. A fragment, which subscription
// bodies often carry as raw text with spaces and emoji, runs to the end of the
// line or to the next link on the same line.
func Extract(text string) []string {
	var found []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		for _, link := range linksInLine(scanner.Text()) {
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			found = append(found, link)
		}
	}
	return found
}

func linksInLine(line string) []string {
	starts := schemePattern.FindAllStringIndex(line, -1)
	var out []string
	for i, loc := range starts {
		end := len(line)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		segment := line[loc[0]:end]

		cut := strings.IndexFunc(segment, func(r rune) bool { return r == '#' || unicode.IsSpace(r) })
		if cut >= 0 && segment[cut] != '#' {
			segment = segment[:cut]
		}

		link := strings.TrimRightFunc(segment, func(r rune) bool {
			return unicode.IsSpace(r) || strings.ContainsRune(trailing, r)
		})
		if len(link) > loc[1]-loc[0] {
			out = append(out, link)
		}
	}
	return out
}

// DecodeSubscription returns the links of a subscription body. Bodies without a
// visible link are treated as one base64 blob.
func DecodeSubscription(body string) []string {
	if found := Extract(body); len(found) > 0 {
		return found
	}
	decoded, err := codec.DecodeBase64(strings.TrimSpace(body))
	if err != nil {
		logger.Log.Debugf("subscription body is neither a link list nor base64: %v", err)
		return nil
	}
	return Extract(decoded)
}
