// Package relay forwards assistant chat turns to an OpenAI-compatible
// endpoint. It sits outside the command processor: requests never hold the
// state mutex, and a slow or unreachable upstream cannot stall mutations.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

var ErrNoContent = errors.New("assistant returned no content")

// Message is one chat turn. Role is "user", "assistant", or "system".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Config struct {
	APIKey  string
	BaseURL string // empty means the public OpenAI endpoint
	Model   string
	Timeout time.Duration
	Logger  *slog.Logger
}

type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

func New(cfg Config) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	c := &Client{
		api:     openai.NewClientWithConfig(oc),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     cfg.Logger,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Reply sends the conversation upstream and returns the assistant's answer.
// The call is bounded by the configured timeout regardless of ctx.
func (c *Client) Reply(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{Model: c.model}
	for _, m := range messages {
		role := strings.TrimSpace(m.Role)
		if role == "" {
			role = openai.ChatMessageRoleUser
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	started := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Warn("assistant request failed", "model", c.model, "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoContent
	}
	c.log.Debug("assistant reply", "model", c.model, "elapsed", time.Since(started))
	return resp.Choices[0].Message.Content, nil
}
