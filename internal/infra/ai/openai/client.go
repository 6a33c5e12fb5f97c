package openai

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"

    "github.com/sashabaranov/go-openai"

    domai "github.com/bryanwahyu/pwncheck/internal/domain/ai"
    "github.com/bryanwahyu/pwncheck/internal/domain/breach"
    "github.com/bryanwahyu/pwncheck/internal/infra/ai/prompt"
)

const (
    maxTokens    = 1024
    defaultModel = "gpt-4o-mini"
)

type Client struct {
    *openai.Client
    Model string
}

var _ domai.Client = (*Client)(nil)

// NewClient talks to OpenAI, or to any OpenAI-compatible server (Ollama,
// LM Studio, LocalAI) when baseURL is set.
func NewClient(apiKey, model, baseURL string) *Client {
    cfg := openai.DefaultConfig(apiKey)
    if baseURL != "" {
        cfg.BaseURL = baseURL
    }
    return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Summarize(ctx context.Context, account string, breaches []breach.Breach) (string, error) {
    model := c.Model
    if model == "" {
        model = defaultModel
    }
    user, err := prompt.GetUserPrompt(account, breaches)
    if err != nil {
        return "", err
    }
    req := openai.ChatCompletionRequest{
        Model: model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
            {Role: openai.ChatMessageRoleUser, Content: user},
        },
    }
    // For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
    if isReasoningModel(model) {
        req.MaxCompletionTokens = maxTokens
    } else {
        req.MaxTokens = maxTokens
    }

    resp, err := c.CreateChatCompletion(ctx, req)
    if err != nil {
        var apiErr *openai.APIError
        if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
            return "", fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
        }
        return "", fmt.Errorf("failed to create chat completion: %w", err)
    }
    if len(resp.Choices) == 0 {
        return "", errors.New("chat completion returned no choices")
    }

    return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func isReasoningModel(model string) bool {
    for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
        if strings.HasPrefix(model, p) {
            return true
        }
    }
    return false
}
