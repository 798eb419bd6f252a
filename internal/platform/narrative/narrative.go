// Package narrative generates optional free-text summaries around scored
// risk assessments. Narratives are decoration: they are attached alongside
// the numeric output and must never replace or alter it, and scoring never
// waits on this package.
package narrative

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// SummaryRequest carries the already-computed facts a narrative may restate.
type SummaryRequest struct {
	Age         int
	Conditions  []string
	OverallRisk string
	RiskFactors []string
}

// Provider turns a scored assessment into prose.
type Provider interface {
	RiskSummary(ctx context.Context, req SummaryRequest) (string, error)
}

// Disabled is the default provider: no narrative, no error.
type Disabled struct{}

func (Disabled) RiskSummary(context.Context, SummaryRequest) (string, error) {
	return "", nil
}

// OpenAIProvider generates narratives through the OpenAI chat API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (p *OpenAIProvider) RiskSummary(ctx context.Context, req SummaryRequest) (string, error) {
	prompt := fmt.Sprintf(
		"Write a brief nursing narrative for a %d-year-old patient with conditions: %s. "+
			"The overall risk level is %s. Contributing factors: %s. "+
			"Do not state any numeric scores; they are reported separately.",
		req.Age,
		strings.Join(req.Conditions, ", "),
		req.OverallRisk,
		strings.Join(req.RiskFactors, "; "),
	)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a clinical documentation assistant for nurses."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("narrative completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("narrative completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
