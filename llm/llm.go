// Package llm wraps the hosted chat-completion API used for plan drafting and
// health probing.
package llm

import (
	"context"
	"errors"
)

// ErrUpstream marks completion failures: transport errors, non-success HTTP
// status, or a response with no usable content.
var ErrUpstream = errors.New("completion upstream failed")

// Client abstracts the completion API so handlers and tests can swap it out.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings provides the concrete implementation its wiring. The API key is
// injected here at composition time; implementations never read the
// environment themselves.
type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
}
