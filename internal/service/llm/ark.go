package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkConfig holds the tertiary, OpenAI-compatible provider's settings.
type ArkConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float32
	MaxTokens   *int
}

// ArkProvider serves completions through Volcengine Ark, an OpenAI-compatible
// third-party endpoint. Client construction is lazy for the same reason as
// the other providers.
type ArkProvider struct {
	cfg ArkConfig

	once    sync.Once
	model   model.BaseChatModel
	initErr error
}

// NewArk builds the tertiary provider.
func NewArk(cfg ArkConfig) *ArkProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	}
	if cfg.Region == "" {
		cfg.Region = "cn-beijing"
	}
	return &ArkProvider{cfg: cfg}
}

// Name implements Provider.
func (p *ArkProvider) Name() string { return ProviderArk }

func (p *ArkProvider) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	p.once.Do(func() {
		if p.cfg.APIKey == "" || p.cfg.Model == "" {
			p.initErr = fmt.Errorf("ark: ARK_API_KEY or ARK_MODEL is not configured")
			return
		}
		p.model, p.initErr = ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey:      p.cfg.APIKey,
			Model:       p.cfg.Model,
			BaseURL:     p.cfg.BaseURL,
			Region:      p.cfg.Region,
			Temperature: p.cfg.Temperature,
			MaxTokens:   p.cfg.MaxTokens,
		})
	})
	return p.model, p.initErr
}

// Generate implements Provider.
func (p *ArkProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	cm, err := p.chatModel(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := cm.Generate(ctx, req.Messages, samplingOptions(req)...)
	if err != nil {
		return nil, fmt.Errorf("ark: %w", err)
	}
	if msg.Content == "" {
		return nil, fmt.Errorf("ark: empty completion")
	}

	return &Response{Content: msg.Content, Usage: usageFromMessage(msg), Provider: p.Name()}, nil
}

// Stream implements Provider.
func (p *ArkProvider) Stream(ctx context.Context, req *Request) (*schema.StreamReader[*schema.Message], error) {
	cm, err := p.chatModel(ctx)
	if err != nil {
		return nil, err
	}

	stream, err := cm.Stream(ctx, req.Messages, samplingOptions(req)...)
	if err != nil {
		return nil, fmt.Errorf("ark: %w", err)
	}
	return stream, nil
}
