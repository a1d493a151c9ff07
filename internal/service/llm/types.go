package llm

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Provider names, in default failover order.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderArk    = "ark"
)

// Request is the provider-agnostic completion request: an ordered message
// list plus sampling parameters. Nil parameters fall back to each provider's
// configured defaults.
type Request struct {
	Messages    []*schema.Message
	Temperature *float32
	MaxTokens   *int
}

// TokenUsage mirrors the usage block providers optionally report.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Response is the normalized completion result, whichever provider served it.
type Response struct {
	Content  string      `json:"content"`
	Usage    *TokenUsage `json:"usage,omitempty"`
	Provider string      `json:"provider"`
}

// Provider abstracts one hosted LLM completion API. Each implementation owns
// the translation between Request/Response and its wire format.
// Implementations must be safe for concurrent use.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *Request) (*Response, error)
	Stream(ctx context.Context, req *Request) (*schema.StreamReader[*schema.Message], error)
}

func usageFromMessage(msg *schema.Message) *TokenUsage {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return nil
	}
	u := msg.ResponseMeta.Usage
	return &TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
