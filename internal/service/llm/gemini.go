package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// GeminiConfig holds the secondary provider's credentials and defaults.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature *float32
	MaxTokens   *int
}

// GeminiProvider serves completions in the Google generative-content shape.
// Unlike the OpenAI-style providers it translates the message list itself:
// system messages become a system instruction and assistant turns take the
// "model" role.
type GeminiProvider struct {
	cfg GeminiConfig

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGemini builds the secondary provider.
func NewGemini(cfg GeminiConfig) *GeminiProvider {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	return &GeminiProvider{cfg: cfg}
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return ProviderGemini }

func (p *GeminiProvider) geminiClient(ctx context.Context) (*genai.Client, error) {
	p.once.Do(func() {
		if p.cfg.APIKey == "" {
			p.initErr = fmt.Errorf("gemini: GOOGLE_AI_STUDIO_KEY is not configured")
			return
		}
		p.client, p.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  p.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return p.client, p.initErr
}

// Generate implements Provider.
func (p *GeminiProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	client, err := p.geminiClient(ctx)
	if err != nil {
		return nil, err
	}

	contents, config := p.translateRequest(req)
	resp, err := client.Models.GenerateContent(ctx, p.cfg.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini: empty completion")
	}

	out := &Response{Content: text, Provider: p.Name()}
	if meta := resp.UsageMetadata; meta != nil {
		out.Usage = &TokenUsage{
			PromptTokens:     int(meta.PromptTokenCount),
			CompletionTokens: int(meta.CandidatesTokenCount),
			TotalTokens:      int(meta.TotalTokenCount),
		}
	}
	return out, nil
}

// Stream implements Provider, adapting the genai iterator to the stream
// reader shape the rest of the service speaks.
func (p *GeminiProvider) Stream(ctx context.Context, req *Request) (*schema.StreamReader[*schema.Message], error) {
	client, err := p.geminiClient(ctx)
	if err != nil {
		return nil, err
	}

	contents, config := p.translateRequest(req)
	sr, sw := schema.Pipe[*schema.Message](8)

	go func() {
		defer sw.Close()
		for resp, err := range client.Models.GenerateContentStream(ctx, p.cfg.Model, contents, config) {
			if err != nil {
				sw.Send(nil, fmt.Errorf("gemini: %w", err))
				return
			}
			if text := resp.Text(); text != "" {
				if closed := sw.Send(schema.AssistantMessage(text, nil), nil); closed {
					return
				}
			}
		}
	}()

	return sr, nil
}

// translateRequest converts the normalized message list into Gemini contents
// plus a generation config carrying the system instruction.
func (p *GeminiProvider) translateRequest(req *Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))

	for _, msg := range req.Messages {
		switch msg.Role {
		case schema.System:
			system = append(system, msg.Content)
		case schema.Assistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	config := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}
	if req.Temperature != nil {
		config.Temperature = req.Temperature
	} else if p.cfg.Temperature != nil {
		config.Temperature = p.cfg.Temperature
	}
	if req.MaxTokens != nil {
		config.MaxOutputTokens = int32(*req.MaxTokens)
	} else if p.cfg.MaxTokens != nil {
		config.MaxOutputTokens = int32(*p.cfg.MaxTokens)
	}

	return contents, config
}
