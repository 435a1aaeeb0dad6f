// Package llm talks to a local Ollama instance. It backs the primary plan
// generation path and the coaching chat; every caller has a deterministic
// fallback for when the model is unreachable or returns junk.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"` // system | user | assistant
	Content string `json:"content"`
}

// Client is an HTTP client for the Ollama API.
type Client struct {
	host       string
	model      string
	httpClient *http.Client
}

// NewClient creates an Ollama client. Generation can take minutes on modest
// hardware, hence the long default timeout.
func NewClient(host, model string) *Client {
	return &Client{
		host:  host,
		model: model,
		httpClient: &http.Client{
			Timeout: 180 * time.Second,
		},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Format   string    `json:"format,omitempty"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

// Generate sends a single prompt and returns the raw response text.
// Set formatJSON to constrain the model to valid JSON output.
func (c *Client) Generate(ctx context.Context, prompt, system string, formatJSON bool) (string, error) {
	req := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		System: system,
		Stream: false,
	}
	if formatJSON {
		req.Format = "json"
	}

	var res generateResponse
	if err := c.post(ctx, "/api/generate", req, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// Chat sends a conversation and returns the assistant's reply. A non-empty
// system prompt is prepended to the messages.
func (c *Client) Chat(ctx context.Context, messages []Message, system string) (string, error) {
	chatMessages := make([]Message, 0, len(messages)+1)
	if system != "" {
		chatMessages = append(chatMessages, Message{Role: "system", Content: system})
	}
	chatMessages = append(chatMessages, messages...)

	req := chatRequest{
		Model:    c.model,
		Messages: chatMessages,
		Stream:   false,
	}

	var res chatResponse
	if err := c.post(ctx, "/api/chat", req, &res); err != nil {
		return "", err
	}
	return res.Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ollama response: %w", err)
	}
	return nil
}
