// Package suggest generates packing item suggestions for a list using the
// Google Gemini API. It is a presentation-side collaborator: suggestions are
// only ever added to a list through the ordinary store path.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"packpro/pkg/model"
)

// ErrNoAPIKey is returned when no Gemini API key is configured.
var ErrNoAPIKey = errors.New("no Gemini API key configured")

// Suggestion is one proposed item with the model's reasoning.
type Suggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Client proposes items for a packing list.
type Client interface {
	SuggestItems(ctx context.Context, list model.PackingList) ([]Suggestion, error)
	Close() error
}

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini-backed suggestion client from the
// configured API key and model name.
func NewGeminiClient(ctx context.Context, cfg *model.Config) (Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	gm := client.GenerativeModel(cfg.GeminiModel)
	gm.ResponseMIMEType = "application/json"
	return &geminiClient{client: client, model: gm}, nil
}

// SuggestItems asks the model for items still missing from the list.
func (c *geminiClient) SuggestItems(ctx context.Context, list model.PackingList) ([]Suggestion, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(buildPrompt(list)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("generated content is not text")
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(stripFences(string(text))), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return suggestions, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

func buildPrompt(list model.PackingList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest up to 5 items missing from a packing list for the trip %q", list.Title)
	if list.Description != "" {
		fmt.Fprintf(&b, " (%s)", list.Description)
	}
	if list.Destination != "" {
		fmt.Fprintf(&b, " to %s", list.Destination)
	}
	fmt.Fprintf(&b, ", lasting %d days.\n", list.Duration)

	if len(list.Items) > 0 {
		b.WriteString("Already packed or planned:\n")
		for _, it := range list.Items {
			fmt.Fprintf(&b, "- %s (x%d)\n", it.Name, it.TargetQuantity)
		}
	}
	b.WriteString(`Answer with a JSON array of objects, each with "name" and "reason" string fields, and nothing else.`)
	return b.String()
}

// stripFences removes a markdown code fence around a JSON answer, which
// some models emit despite the JSON response type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
