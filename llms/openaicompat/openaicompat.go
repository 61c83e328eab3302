package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
)

var ErrEmptyResponse = errors.New("no response")

// LLM is a client for any OpenAI-compatible chat completion endpoint:
// OpenAI itself, Azure-style proxies, or a local Ollama server exposing
// its /v1 API.
type LLM struct {
	client           *openai.Client
	model            string
	CallbacksHandler callbacks.Handler
}

var _ llms.Model = (*LLM)(nil)

// New returns a new OpenAI-compatible LLM client.
//
// Authentication options:
// 1. WithAPIKey(apiKey) - pass API key directly
// 2. Set OPENAI_API_KEY environment variable
//
// Example:
//
//	llm, err := openaicompat.New(
//		openaicompat.WithBaseURL("http://localhost:11434/v1"),
//		openaicompat.WithModel("llama3.1"),
//	)
func New(opts ...Option) (*LLM, error) {
	options := &options{
		apiKey: getEnvOrDefault("OPENAI_API_KEY", ""),
		model:  DefaultModel,
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.apiKey == "" && options.baseURL == "" {
		return nil, fmt.Errorf(`missing API key
You can pass auth info by using openaicompat.New(openaicompat.WithAPIKey("{API Key}"))
or
export OPENAI_API_KEY={API Key}`)
	}
	if options.apiKey == "" {
		// Local endpoints ignore the key but the client requires one.
		options.apiKey = "unused"
	}

	config := openai.DefaultConfig(options.apiKey)
	if options.baseURL != "" {
		config.BaseURL = options.baseURL
	}
	if options.httpClient != nil {
		config.HTTPClient = options.httpClient
	}

	return &LLM{
		client:           openai.NewClientWithConfig(config),
		model:            options.model,
		CallbacksHandler: options.callbacksHandler,
	}, nil
}

// Call generates a response from the LLM for the given prompt.
func (o *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, o, prompt, options...)
}

// GenerateContent implements the Model interface. When a streaming func is
// set in the call options, the request is streamed and each delta is
// forwarded before the assembled response is returned.
func (o *LLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if o.CallbacksHandler != nil {
		o.CallbacksHandler.HandleLLMGenerateContentStart(ctx, messages)
	}

	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	req := openai.ChatCompletionRequest{
		Model:       o.getModelString(*opts),
		Messages:    toOpenAIMessages(messages),
		Temperature: float32(opts.Temperature),
		TopP:        float32(opts.TopP),
		MaxTokens:   opts.MaxTokens,
		Stop:        opts.StopWords,
	}
	if opts.Seed != 0 {
		seed := opts.Seed
		req.Seed = &seed
	}

	var resp *llms.ContentResponse
	var err error
	if opts.StreamingFunc != nil {
		resp, err = o.generateStreaming(ctx, req, opts.StreamingFunc)
	} else {
		resp, err = o.generate(ctx, req)
	}
	if err != nil {
		if o.CallbacksHandler != nil {
			o.CallbacksHandler.HandleLLMError(ctx, err)
		}
		return nil, err
	}

	if o.CallbacksHandler != nil {
		o.CallbacksHandler.HandleLLMGenerateContentEnd(ctx, resp)
	}

	return resp, nil
}

func (o *LLM) generate(ctx context.Context, req openai.ChatCompletionRequest) (*llms.ContentResponse, error) {
	result, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(result.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := &llms.ContentChoice{
		Content:    result.Choices[0].Message.Content,
		StopReason: string(result.Choices[0].FinishReason),
	}
	if result.Usage.TotalTokens > 0 {
		choice.GenerationInfo = map[string]any{
			"prompt_tokens":     result.Usage.PromptTokens,
			"completion_tokens": result.Usage.CompletionTokens,
			"total_tokens":      result.Usage.TotalTokens,
		}
	} else {
		choice.GenerationInfo = make(map[string]any)
	}

	return &llms.ContentResponse{Choices: []*llms.ContentChoice{choice}}, nil
}

func (o *LLM) generateStreaming(ctx context.Context, req openai.ChatCompletionRequest, streamingFunc func(ctx context.Context, chunk []byte) error) (*llms.ContentResponse, error) {
	req.Stream = true

	stream, err := o.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var content strings.Builder
	var stopReason string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta != "" {
			content.WriteString(delta)
			if err := streamingFunc(ctx, []byte(delta)); err != nil {
				return nil, err
			}
		}
		if chunk.Choices[0].FinishReason != "" {
			stopReason = string(chunk.Choices[0].FinishReason)
		}
	}

	choice := &llms.ContentChoice{
		Content:        content.String(),
		StopReason:     stopReason,
		GenerationInfo: make(map[string]any),
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{choice}}, nil
}

// toOpenAIMessages flattens the text parts of each message and maps the
// langchaingo roles onto the wire roles.
func toOpenAIMessages(messages []llms.MessageContent) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := string(msg.Role)
		switch role {
		case "", "human", "generic":
			role = openai.ChatMessageRoleUser
		case "ai":
			role = openai.ChatMessageRoleAssistant
		case "system":
			role = openai.ChatMessageRoleSystem
		}

		var content strings.Builder
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				content.WriteString(text.Text)
			}
		}

		out = append(out, openai.ChatCompletionMessage{
			Role:    role,
			Content: content.String(),
		})
	}
	return out
}

func (o *LLM) getModelString(opts llms.CallOptions) string {
	if opts.Model != "" {
		return opts.Model
	}
	if o.model != "" {
		return o.model
	}
	return DefaultModel
}
