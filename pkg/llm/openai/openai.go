// Package openai provides an OpenAI-compatible LLM provider implementation
// with native function tool calling. A custom base URL makes it work against
// OpenRouter, Azure, or any local OpenAI-compatible endpoint.
package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/eldarkhalilouv/ai-browser-agent/pkg/llm"
	"github.com/eldarkhalilouv/ai-browser-agent/pkg/types"
)

// Provider implements llm.Provider for OpenAI-compatible chat completion APIs.
type Provider struct {
	client openai.Client
	model  string
}

// ProviderOption configures a Provider.
type ProviderOption func(*providerSettings)

type providerSettings struct {
	model   string
	baseURL string
}

// WithModel sets the model used for completions.
func WithModel(model string) ProviderOption {
	return func(s *providerSettings) {
		s.model = model
	}
}

// WithBaseURL sets a custom base URL for OpenAI-compatible APIs.
func WithBaseURL(baseURL string) ProviderOption {
	return func(s *providerSettings) {
		s.baseURL = baseURL
	}
}

// NewProvider creates a provider with the given API key. An empty key falls
// back to the OPENAI_API_KEY environment variable.
func NewProvider(apiKey string, opts ...ProviderOption) (*Provider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (provide via parameter or OPENAI_API_KEY environment variable)")
	}

	settings := &providerSettings{model: "gpt-4o-mini"}
	for _, opt := range opts {
		opt(settings)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if settings.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(settings.baseURL))
	}

	return &Provider{
		client: openai.NewClient(clientOpts...),
		model:  settings.model,
	}, nil
}

// Complete sends one chat completion request and returns the assistant turn.
func (p *Provider) Complete(ctx context.Context, messages []*types.Message, tools []llm.ToolDefinition) (*types.Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: convertMessages(messages),
	}
	if len(tools) > 0 {
		params.Tools = convertTools(tools)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0].Message
	msg := types.NewAssistantMessage(choice.Content)
	for _, tc := range choice.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, types.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return msg, nil
}

// GetModel returns the model name being used.
func (p *Provider) GetModel() string {
	return p.model
}

// convertMessages converts the transcript to the OpenAI wire format,
// preserving assistant tool calls so earlier turns replay faithfully.
func convertMessages(messages []*types.Message) []openai.ChatCompletionMessageParamUnion {
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleSystem:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case types.RoleTool:
			converted = append(converted, openai.ToolMessage(msg.Content, msg.ToolCallID))
		case types.RoleAssistant:
			if !msg.HasToolCalls() {
				converted = append(converted, openai.AssistantMessage(msg.Content))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if msg.Content != "" {
				assistant.Content.OfString = openai.String(msg.Content)
			}
			for _, tc := range msg.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Name,
							Arguments: tc.Arguments,
						},
					},
				})
			}
			converted = append(converted, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		default:
			converted = append(converted, openai.UserMessage(msg.Content))
		}
	}

	return converted
}

func convertTools(tools []llm.ToolDefinition) []openai.ChatCompletionToolUnionParam {
	converted := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, def := range tools {
		fn := openai.FunctionDefinitionParam{
			Name:       def.Name,
			Parameters: openai.FunctionParameters(def.Parameters),
		}
		if def.Description != "" {
			fn.Description = openai.String(def.Description)
		}
		converted = append(converted, openai.ChatCompletionFunctionTool(fn))
	}
	return converted
}
