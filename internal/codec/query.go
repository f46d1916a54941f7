package codec

import (
	"net/url"
	"strings"
)

// ParseQuery returns the first value of every key. Malformed pairs are skipped
// instead of failing the whole query.
func ParseQuery(raw string) map[string]string {
	values, _ := url.ParseQuery(raw)
	kwargs := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			kwargs[k] = v[0]
		}
	}
	return kwargs
}

// Query is an insertion-ordered query string builder. url.Values sorts its keys
// on Encode, which would reorder share links on every export.
type Query struct {
	keys   []string
	values []string
}

func (q *Query) Add(key, value string) {
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
}

// AddNonEmpty adds the pair only when value is not empty.
func (q *Query) AddNonEmpty(key, value string) {
	if value != "" {
		q.Add(key, value)
	}
}

func (q *Query) Len() int {
	return len(q.keys)
}

func (q *Query) Encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(Quote(k))
		b.WriteByte('=')
		b.WriteString(Quote(q.values[i]))
	}
	return b.String()
}
