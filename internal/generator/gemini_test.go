package generator

import (
	"context"
	"errors"
	"io"
	"testing"

	"google.golang.org/genai"

	"github.com/eteps/study-flow/internal/config"
	"github.com/eteps/study-flow/internal/logger"
)

func testGenerator(t *testing.T) *implGenerator {
	t.Helper()

	gen, err := New(
		config.GeminiConfig{Model: "gemini-2.5-flash", Temperature: 0.2, MaxRetries: 1, RetryDelaySeconds: 1},
		[]string{"test-key-1", "test-key-2"},
		DefaultPrompts(),
		logger.NewWithWriter(io.Discard, logger.LevelDebug),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return gen.(*implGenerator)
}

func TestNewValidation(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, logger.LevelDebug)

	tests := []struct {
		name    string
		cfg     config.GeminiConfig
		keys    []string
		prompts Prompts
	}{
		{"no keys", config.GeminiConfig{Model: "m"}, nil, DefaultPrompts()},
		{"no model", config.GeminiConfig{}, []string{"k"}, DefaultPrompts()},
		{"bad prompts", config.GeminiConfig{Model: "m"}, []string{"k"}, Prompts{Summary: "no placeholder", Flashcards: "%s %s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, tt.keys, tt.prompts, log)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	g := testGenerator(t)

	_, err := g.Summarize(context.Background(), "   \n\t ")
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Summarize() error = %v, want %v", err, ErrEmptyTranscript)
	}
}

func TestFlashcardsEmptyTranscript(t *testing.T) {
	g := testGenerator(t)

	_, err := g.Flashcards(context.Background(), "a summary", "")
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Flashcards() error = %v, want %v", err, ErrEmptyTranscript)
	}
}

func TestKeyRotation(t *testing.T) {
	g := testGenerator(t)

	if _, key := g.pickKey(); key != "test-key-1" {
		t.Errorf("first key = %q", key)
	}
	g.rotateKey()
	if _, key := g.pickKey(); key != "test-key-2" {
		t.Errorf("after one rotation key = %q", key)
	}
	g.rotateKey()
	if idx, key := g.pickKey(); idx != 0 || key != "test-key-1" {
		t.Errorf("rotation did not wrap, idx = %d key = %q", idx, key)
	}
}

func TestIsQuotaErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 429", errors.New("error 429: too many requests"), true},
		{"quota message", errors.New("quota exceeded for model"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"auth failure", errors.New("error 403: permission denied"), false},
		{"network failure", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuotaErr(tt.err); got != tt.want {
				t.Errorf("isQuotaErr(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	resp := func(parts ...*genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: parts}},
			},
		}
	}

	t.Run("joins parts", func(t *testing.T) {
		got, err := extractText(resp(&genai.Part{Text: "Hello "}, &genai.Part{Text: "world"}))
		if err != nil {
			t.Fatalf("extractText() error = %v", err)
		}
		if got != "Hello world" {
			t.Errorf("extractText() = %q", got)
		}
	})

	t.Run("nil response", func(t *testing.T) {
		if _, err := extractText(nil); !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("error = %v, want %v", err, ErrInvalidResponse)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := extractText(&genai.GenerateContentResponse{})
		if !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("error = %v, want %v", err, ErrInvalidResponse)
		}
	})

	t.Run("no content", func(t *testing.T) {
		_, err := extractText(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{}},
		})
		if !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("error = %v, want %v", err, ErrInvalidResponse)
		}
	})

	t.Run("safety block", func(t *testing.T) {
		_, err := extractText(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		})
		if !errors.Is(err, ErrContentBlocked) {
			t.Errorf("error = %v, want %v", err, ErrContentBlocked)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if _, err := extractText(resp(&genai.Part{})); !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("error = %v, want %v", err, ErrInvalidResponse)
		}
	})
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr error
	}{
		{
			name: "object shape",
			raw:  `{"cards": [{"front": "Q1", "back": "A1"}, {"front": "Q2", "back": "A2", "hint": "h", "tags": ["t"]}]}`,
			want: 2,
		},
		{
			name: "bare array",
			raw:  `[{"front": "Q", "back": "A"}]`,
			want: 1,
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"cards\": [{\"front\": \"Q\", \"back\": \"A\"}]}\n```",
			want: 1,
		},
		{
			name:    "not json",
			raw:     "Here are your flashcards:\nFront,Back",
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "no cards",
			raw:     `{"cards": []}`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "card missing back",
			raw:     `{"cards": [{"front": "Q"}]}`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "whitespace only front",
			raw:     `{"cards": [{"front": "  ", "back": "A"}]}`,
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := parseCards(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("parseCards() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCards() error = %v", err)
			}
			if len(cards) != tt.want {
				t.Errorf("parseCards() returned %d cards, want %d", len(cards), tt.want)
			}
		})
	}
}

func TestParseCardsTrimsFields(t *testing.T) {
	cards, err := parseCards(`{"cards": [{"front": "  Q  ", "back": "\nA\n", "hint": " h "}]}`)
	if err != nil {
		t.Fatalf("parseCards() error = %v", err)
	}
	if cards[0].Front != "Q" || cards[0].Back != "A" || cards[0].Hint != "h" {
		t.Errorf("fields not trimmed: %+v", cards[0])
	}
}

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n[1]\n```", `[1]`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n ", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripJSONFence(tt.in); got != tt.want {
				t.Errorf("stripJSONFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
