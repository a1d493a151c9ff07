package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// OpenAIConfig holds the primary provider's credentials and defaults.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature *float32
	MaxTokens   *int
}

// OpenAIProvider serves completions in the OpenAI chat-completions shape.
// The underlying client is built lazily so a missing credential never crashes
// startup; the first real call fails and the provider enters cool-down.
type OpenAIProvider struct {
	cfg OpenAIConfig

	once    sync.Once
	model   model.BaseChatModel
	initErr error
}

// NewOpenAI builds the primary provider.
func NewOpenAI(cfg OpenAIConfig) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &OpenAIProvider{cfg: cfg}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return ProviderOpenAI }

func (p *OpenAIProvider) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	p.once.Do(func() {
		if p.cfg.APIKey == "" {
			p.initErr = fmt.Errorf("openai: OPENAI_API_KEY is not configured")
			return
		}
		p.model, p.initErr = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      p.cfg.APIKey,
			Model:       p.cfg.Model,
			Temperature: p.cfg.Temperature,
			MaxTokens:   p.cfg.MaxTokens,
		})
	})
	return p.model, p.initErr
}

// Generate implements Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	cm, err := p.chatModel(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := cm.Generate(ctx, req.Messages, samplingOptions(req)...)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if msg.Content == "" {
		return nil, fmt.Errorf("openai: empty completion")
	}

	return &Response{Content: msg.Content, Usage: usageFromMessage(msg), Provider: p.Name()}, nil
}

// Stream implements Provider.
func (p *OpenAIProvider) Stream(ctx context.Context, req *Request) (*schema.StreamReader[*schema.Message], error) {
	cm, err := p.chatModel(ctx)
	if err != nil {
		return nil, err
	}

	stream, err := cm.Stream(ctx, req.Messages, samplingOptions(req)...)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return stream, nil
}

// samplingOptions translates per-request sampling overrides into eino options.
func samplingOptions(req *Request) []model.Option {
	var opts []model.Option
	if req.Temperature != nil {
		opts = append(opts, model.WithTemperature(*req.Temperature))
	}
	if req.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*req.MaxTokens))
	}
	return opts
}
