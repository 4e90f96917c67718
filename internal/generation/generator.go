package generation

import (
	"context"

	"github.com/fiszki-app/fiszki-api/internal/domain"
	"github.com/google/uuid"
)

// Maximum length of the input text accepted by any Generator.
const MaxTextLength = 5000

// MinProposals is the smallest number of proposals a Generator returns for
// valid input.
const MinProposals = 2

// Proposal is a transient candidate flashcard awaiting the user's
// accept/reject decision. Proposals are never persisted; accepted ones are
// turned into flashcards by the bulk-save operation. The ID exists only so
// clients can address individual proposals within one generation result.
type Proposal struct {
	ID     uuid.UUID               `json:"id"`
	Front  string                  `json:"front"`
	Back   string                  `json:"back"`
	Source domain.GenerationSource `json:"generation_source"`
}

// Result is the outcome of one generation call: a folder-name suggestion
// derived from the input plus at least MinProposals proposals, all with
// Source set to domain.GenerationSourceAI.
type Result struct {
	SuggestedFolderName string     `json:"suggested_folder_name"`
	Proposals           []Proposal `json:"proposals"`
}

// Generator defines the interface for generating flashcard proposals from
// text. Implementations must honor the contract: reject empty input and
// input over MaxTextLength, and for valid input return a folder-name
// suggestion plus at least MinProposals proposals tagged as AI-generated.
type Generator interface {
	// Generate creates flashcard proposals from the provided text.
	// The context is honored for cancellation; nothing is persisted.
	Generate(ctx context.Context, text string) (*Result, error)
}
