// Package llm provides the language model completion client.
package llm

import "context"

// Client maps a rendered prompt to generated text. Failures propagate to the
// caller unchanged; the orchestrator does no retrying.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
