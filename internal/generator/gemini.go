package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/eteps/study-flow/internal/studyaids"
)

// Summarize sends the transcript to Gemini and returns the markdown summary
// exactly as the model produced it, trimmed.
func (g *implGenerator) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	prompt := fmt.Sprintf(g.prompts.Summary, transcript)
	raw, err := g.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty summary", ErrInvalidResponse)
	}
	return text, nil
}

// Flashcards asks Gemini for question/answer cards as JSON and parses them.
func (g *implGenerator) Flashcards(ctx context.Context, summary, transcript string) ([]studyaids.Card, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	prompt := fmt.Sprintf(g.prompts.Flashcards, summary, transcript)
	raw, err := g.generate(ctx, prompt, cardsResponseSchema)
	if err != nil {
		return nil, err
	}

	return parseCards(raw)
}

// cardsResponseSchema constrains the flashcards call to the documented JSON
// shape. Models still occasionally fence the output, so parsing stays
// tolerant.
var cardsResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"cards": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"front": {Type: genai.TypeString},
					"back":  {Type: genai.TypeString},
					"hint":  {Type: genai.TypeString},
					"tags":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"front", "back"},
			},
		},
	},
	Required: []string{"cards"},
}

// generate runs the request against the Gemini API. Quota errors rotate to
// the next key and retry with exponential backoff; everything else
// propagates immediately. A non-nil schema switches the call to JSON output.
func (g *implGenerator) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	g.logger.Debug(ctx, "Calling %s, prompt %d chars", g.cfg.Model, len(prompt))

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(g.cfg.Temperature)),
	}
	if g.cfg.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = int32(g.cfg.MaxOutputTokens)
	}
	if schema != nil {
		genCfg.ResponseMIMEType = "application/json"
		genCfg.ResponseSchema = schema
	}

	var lastErr error
	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		keyIdx, key := g.pickKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return "", fmt.Errorf("create client: %w", err)
		}

		result, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), genCfg)
		if err != nil {
			if !isQuotaErr(err) {
				return "", fmt.Errorf("generate content: %w", err)
			}

			lastErr = err
			g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
			g.rotateKey()

			if attempt == g.cfg.MaxRetries {
				break
			}
			if err := g.wait(ctx, attempt); err != nil {
				return "", err
			}
			continue
		}

		return extractText(result)
	}

	return "", fmt.Errorf("%w: %v", ErrKeysExhausted, lastErr)
}

func (g *implGenerator) pickKey() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

func (g *implGenerator) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

// wait sleeps for an exponentially growing, jittered delay before the next
// attempt, or returns early on context cancellation.
func (g *implGenerator) wait(ctx context.Context, attempt int) error {
	base := float64(g.cfg.RetryDelaySeconds) * math.Pow(2, float64(attempt))
	jitter := 0.5 + rand.Float64()*0.5
	delay := time.Duration(base * jitter * float64(time.Second))

	g.logger.Info(ctx, "Retrying in %.1fs", delay.Seconds())

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isQuotaErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// extractText pulls the generated text out of the API response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if cand.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", ErrInvalidResponse)
	}

	var text string
	for _, part := range cand.Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("%w: no text parts", ErrInvalidResponse)
	}
	return text, nil
}

type cardSchema struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Hint  string   `json:"hint,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

type cardsResponse struct {
	Cards []cardSchema `json:"cards"`
}

// parseCards decodes the model's JSON into cards. Accepts either the
// documented {"cards": [...]} shape or a bare array, with or without a
// markdown code fence around it.
func parseCards(raw string) ([]studyaids.Card, error) {
	body := stripJSONFence(raw)

	var schemas []cardSchema
	if strings.HasPrefix(body, "[") {
		if err := json.Unmarshal([]byte(body), &schemas); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	} else {
		var resp cardsResponse
		if err := json.Unmarshal([]byte(body), &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		schemas = resp.Cards
	}

	if len(schemas) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", ErrInvalidResponse)
	}

	cards := make([]studyaids.Card, 0, len(schemas))
	for i, s := range schemas {
		card := studyaids.Card{
			Front: strings.TrimSpace(s.Front),
			Back:  strings.TrimSpace(s.Back),
			Hint:  strings.TrimSpace(s.Hint),
			Tags:  s.Tags,
		}
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", ErrInvalidResponse, i, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// stripJSONFence removes a surrounding ```json ... ``` block if present.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
