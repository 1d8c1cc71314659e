package providers

import "context"

// CompletionProvider generates free text from a prompt
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
