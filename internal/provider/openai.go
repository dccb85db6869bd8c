package provider

import (
	"context"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const directTimeout = 30 * time.Second

// OpenAIGenerator calls an OpenAI-compatible chat completion API directly.
type OpenAIGenerator struct {
	client   *openai.Client
	model    string
	template string
}

// OpenAIOptions configures the direct backend.
type OpenAIOptions struct {
	APIKey   string
	BaseURL  string
	Model    string
	Template string
}

func NewOpenAIGenerator(opts OpenAIOptions) *OpenAIGenerator {
	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = opts.BaseURL
	}

	return &OpenAIGenerator{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    opts.Model,
		template: opts.Template,
	}
}

func (g *OpenAIGenerator) Name() string { return "openai" }

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	prompt, err := BuildPrompt(req, g.template)
	if err != nil {
		return "", &GenerationError{Backend: g.Name(), Reason: "prompt construction", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, directTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &GenerationError{Backend: g.Name(), Reason: "chat completion request", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &GenerationError{Backend: g.Name(), Reason: "response contained no choices"}
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return "", &GenerationError{Backend: g.Name(), Reason: "model returned an empty message"}
	}
	return message, nil
}
