package reagent

import "context"

// CompletionClient is the boundary to the hosted text-completion model:
// given a prompt, return a raw continuation.
//
// The core treats the client as a black box. A transport or timeout failure
// terminates the run with [TerminationClientError]; the loop itself never
// retries. Retry policy, if any, belongs inside the client implementation.
// Cancellation mid-call is delegated to the client's own handling of ctx.
//
// See the models subpackage for a langchaingo-backed implementation.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompletionFunc adapts a plain function into a CompletionClient.
type CompletionFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements CompletionClient.
func (f CompletionFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
