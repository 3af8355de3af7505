// Package conversation wraps a chat model with buffered memory: every
// exchange is stored and replayed into the next prompt, so the model keeps
// context across turns.
package conversation

import (
	"context"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
)

// Chat is a multi-turn conversation with buffered memory.
type Chat struct {
	buffer *memory.ConversationBuffer
	chain  chains.Chain
}

// NewChat creates a Chat backed by a fresh conversation buffer.
func NewChat(model llms.Model) *Chat {
	buffer := memory.NewConversationBuffer()
	return &Chat{
		buffer: buffer,
		chain:  chains.NewConversation(model, buffer),
	}
}

// Predict sends one user turn and returns the model's reply. The exchange
// is appended to memory, so later turns see it in their prompt.
func (c *Chat) Predict(ctx context.Context, input string) (string, error) {
	return chains.Run(ctx, c.chain, input)
}

// History returns every stored message in order.
func (c *Chat) History(ctx context.Context) ([]llms.ChatMessage, error) {
	return c.buffer.ChatHistory.Messages(ctx)
}

// Clear discards the stored conversation. The next Predict starts from a
// blank history.
func (c *Chat) Clear(ctx context.Context) error {
	return c.buffer.ChatHistory.Clear(ctx)
}
