// Package client wraps the Gemini API for inventory item enrichment.
// Responses are constrained to a JSON schema so the service can rely on the
// shape without defensive parsing.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Suggestion is the structured enrichment result for one inventory item.
type Suggestion struct {
	Category         string  `json:"category"`
	Description      string  `json:"description"`
	ReplacementValue float64 `json:"replacementValue"`
	Confidence       float64 `json:"confidence"`
}

// Client calls the Gemini API with a fixed response schema.
type Client struct {
	genai *genai.Client
	model string
}

// New creates a Gemini enrichment client.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{genai: gc, model: model}, nil
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category": {
			Type:        genai.TypeString,
			Description: "Household property category, e.g. Electronics, Jewelry, Furniture, Appliances, Clothing.",
		},
		"description": {
			Type:        genai.TypeString,
			Description: "One-sentence factual description suitable for an insurance inventory.",
		},
		"replacementValue": {
			Type:        genai.TypeNumber,
			Description: "Estimated current replacement cost in USD for a comparable new item.",
		},
		"confidence": {
			Type:        genai.TypeNumber,
			Description: "Confidence in the estimate, 0 to 1.",
		},
	},
	Required: []string{"category", "description", "replacementValue", "confidence"},
}

const promptTemplate = `You are cataloging household property for an insurance inventory.
Given the item details below, suggest a category, a one-sentence description,
and a realistic replacement cost in USD.

Name: %s
Brand: %s
Model: %s
Owner notes: %s`

// Suggest asks the model for enrichment suggestions for one item.
func (c *Client) Suggest(ctx context.Context, name, brand, model, notes string) (Suggestion, error) {
	prompt := fmt.Sprintf(promptTemplate, name, brand, model, notes)

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate enrichment: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Suggestion{}, fmt.Errorf("empty enrichment response")
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return Suggestion{}, fmt.Errorf("decode enrichment response: %w", err)
	}
	return suggestion, nil
}
