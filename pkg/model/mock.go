package model

import (
	"context"
	"hash/fnv"
	"time"
)

// Mock is an offline Model for tests and dry runs. With Labels set it picks
// a label by hashing the prompt, so identical prompts always classify the
// same way and perturbed prompts can legitimately flip.
type Mock struct {
	NameValue    string
	Labels       []string
	ResponseText string
}

func (m Mock) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

func (m Mock) Generate(_ context.Context, prompt string, _ GenerateOptions) (Response, error) {
	start := time.Now()
	content := prompt
	switch {
	case m.ResponseText != "":
		content = m.ResponseText
	case len(m.Labels) > 0:
		h := fnv.New32a()
		h.Write([]byte(prompt))
		content = m.Labels[int(h.Sum32())%len(m.Labels)]
	}
	return Response{
		Content: content,
		Latency: time.Since(start),
	}, nil
}
