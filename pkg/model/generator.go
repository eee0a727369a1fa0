// Package model implements the inference boundary: zero-shot LLM
// classification backends behind the core.Runner contract.
package model

import (
	"context"
	"time"
)

// Model generates text completions for prompts. Classifier adapts any Model
// into a core.Runner.
type Model interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (Response, error)
}

// Response is a model completion plus basic telemetry.
type Response struct {
	Content    string        `json:"content"`
	TokenUsage TokenUsage    `json:"token_usage"`
	Latency    time.Duration `json:"latency"`
}

// TokenUsage captures token accounting for a request.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerateOptions controls model generation behavior.
type GenerateOptions struct {
	Temperature  float32  `json:"temperature"`
	MaxTokens    int      `json:"max_tokens"`
	TopP         float32  `json:"top_p"`
	Stop         []string `json:"stop,omitempty"`
	SystemPrompt string   `json:"system_prompt,omitempty"`
}
