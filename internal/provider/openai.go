package provider

import (
	"context"
	"fmt"

	go_openai "github.com/sashabaranov/go-openai"
)

// openAI talks to the OpenAI chat completions API (or any compatible
// endpoint via BaseURL)
type openAI struct {
	client *go_openai.Client
	model  string
}

func newOpenAI(opts Options) *openAI {
	cfg := go_openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &openAI{
		client: go_openai.NewClientWithConfig(cfg),
		model:  opts.Model,
	}
}

func (o *openAI) Name() string {
	return "openai"
}

func (o *openAI) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	req := go_openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, go_openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &Error{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: "openai", Err: fmt.Errorf("response contained no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}
