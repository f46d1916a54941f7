package stdout

import (
	"bytes"
	"testing"

	"proxytray/internal/factory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	c, err := factory.FromString("trojan://pw@t.example:443?security=tls#t")
	require.NoError(t, err)

	var buf bytes.Buffer
	p := &Publisher{out: &buf}
	require.NoError(t, p.Publish([]factory.Configuration{c}, nil))

	want, err := c.ToURI("t")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", buf.String())
}
