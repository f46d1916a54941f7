package metrics

import (
	"bytes"
	"fmt"
	"testing"

	"proxytray/internal/factory"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := New()
	c.RecordSuccess("vless")
	c.RecordSuccess("vless")
	c.RecordSuccess("hysteria2")
	c.RecordFailure(fmt.Errorf("%w: wireguard", factory.ErrUnrecognizedScheme))
	c.RecordFailure(factory.ErrUnsupportedProtocol)
	c.RecordFailure(nil)

	ok, failed := c.Totals()
	assert.Equal(t, 3, ok)
	assert.Equal(t, 3, failed)

	var buf bytes.Buffer
	c.PrintReport(&buf)
	out := buf.String()
	assert.Contains(t, out, "vless:")
	assert.Contains(t, out, "Unknown Scheme:")
	assert.Contains(t, out, "Unsupported Dialect:")
	assert.Contains(t, out, "Unrecognized Input:")
}

func TestCollector_FailureKinds(t *testing.T) {
	c := New()
	for _, raw := range []string{
		"vless://id@host:port#x",
		"trojan://pw@h.example:99999",
		"wireguard://k@h:1",
		"hysteria://h:1",
	} {
		_, err := factory.Decode(raw)
		c.RecordFailure(err)
	}

	assert.Equal(t, map[string]int{
		"Bad Host/Port":       1,
		"Malformed Link":      1,
		"Unknown Scheme":      1,
		"Unsupported Dialect": 1,
	}, c.errorCounts)
}
