package stdout

import (
	"fmt"
	"io"
	"os"

	"proxytray/internal/factory"
	"proxytray/internal/publishers"
)

type Publisher struct {
	out io.Writer
}

func (p *Publisher) Publish(cfgs []factory.Configuration, params map[string]interface{}) error {
	payload, err := publishers.GenerateSubscriptionPayload(cfgs, params)
	if err != nil {
		return err
	}

	out := p.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, payload)
	return err
}

func init() {
	publishers.Register("stdout", func() publishers.Publisher { return &Publisher{} })
}
