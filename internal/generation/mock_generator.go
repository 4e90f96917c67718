package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/fiszki-app/fiszki-api/internal/platform/logger"
	"github.com/google/uuid"
)

// Folder-name suggestions are built from the leading words of the input.
const (
	suggestedNameWordCount = 4
	suggestedNameMaxLength = 60
	fallbackFolderName     = "Study notes"
)

// defaultLatency simulates the round-trip a model-backed generator would
// take, so clients exercise their loading states.
const defaultLatency = 400 * time.Millisecond

// MockGenerator is a placeholder Generator that derives proposals from
// superficial text statistics (length, word count, first sentence) instead
// of calling a model. It exists to exercise the full generate/review/save
// workflow until a model-backed Generator replaces it behind the same seam.
type MockGenerator struct {
	latency time.Duration
	logger  *slog.Logger
}

// MockGeneratorOption customizes a MockGenerator.
type MockGeneratorOption func(*MockGenerator)

// WithLatency overrides the simulated latency. Tests pass zero.
func WithLatency(d time.Duration) MockGeneratorOption {
	return func(g *MockGenerator) {
		g.latency = d
	}
}

// NewMockGenerator creates a new MockGenerator.
// If logger is nil, a default logger will be used.
func NewMockGenerator(logger *slog.Logger, opts ...MockGeneratorOption) *MockGenerator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &MockGenerator{
		latency: defaultLatency,
		logger:  logger.With(slog.String("component", "mock_generator")),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ensure MockGenerator implements the Generator interface
var _ Generator = (*MockGenerator)(nil)

// Generate implements Generator.Generate.
// It validates the input, waits out the simulated latency (respecting
// context cancellation), and builds descriptive proposals from text
// statistics. The result always contains at least MinProposals proposals,
// all tagged domain.GenerationSourceAI.
func (g *MockGenerator) Generate(ctx context.Context, text string) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrTextEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return nil, ErrTextTooLong
	}

	if g.latency > 0 {
		select {
		case <-time.After(g.latency):
		case <-ctx.Done():
			log.Debug("generation canceled during simulated latency",
				slog.String("error", ctx.Err().Error()))
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
		}
	}

	words := strings.Fields(trimmed)
	firstSentence := leadingSentence(trimmed)

	proposals := []Proposal{
		{
			ID:     uuid.New(),
			Front:  "What is the opening statement of this material?",
			Back:   clampRunes(firstSentence, domain.MaxFlashcardBackLength),
			Source: domain.GenerationSourceAI,
		},
		{
			ID:    uuid.New(),
			Front: "How long is the source material?",
			Back: fmt.Sprintf("The pasted text contains %d words across %d characters.",
				len(words), utf8.RuneCountInString(trimmed)),
			Source: domain.GenerationSourceAI,
		},
	}

	// Longer inputs get one extra card about their leading terms.
	if len(words) > 20 {
		proposals = append(proposals, Proposal{
			ID:    uuid.New(),
			Front: "Which terms introduce this material?",
			Back: clampRunes(fmt.Sprintf("It opens with: %s.",
				strings.Join(words[:suggestedNameWordCount], " ")),
				domain.MaxFlashcardBackLength),
			Source: domain.GenerationSourceAI,
		})
	}

	result := &Result{
		SuggestedFolderName: suggestFolderName(words),
		Proposals:           proposals,
	}

	log.Debug("generated proposals",
		slog.Int("proposal_count", len(result.Proposals)),
		slog.Int("word_count", len(words)))
	return result, nil
}

// suggestFolderName derives a folder-name suggestion from the leading words
// of the input, clamped to a length that always satisfies folder-name rules.
func suggestFolderName(words []string) string {
	n := suggestedNameWordCount
	if len(words) < n {
		n = len(words)
	}

	name := strings.Join(words[:n], " ")
	name = strings.TrimSpace(strings.TrimRight(name, ".,;:!?"))
	if name == "" {
		// Punctuation-only input trims down to nothing.
		return fallbackFolderName
	}
	return clampRunes(name, suggestedNameMaxLength)
}

// leadingSentence returns the text up to and including the first sentence
// terminator, or the whole text when none is found.
func leadingSentence(text string) string {
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			return text[:i+utf8.RuneLen(r)]
		}
	}
	return text
}

// clampRunes truncates s to at most n runes.
func clampRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
