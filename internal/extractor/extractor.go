// Package extractor turns the raw assistant conversation into a typed budget
// collection: it selects the latest assistant reply, cleans the text and
// coerces it into the strict schema through a forced function call.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog/log"

	"github.com/presupuestosam/internal/assistant"
	"github.com/presupuestosam/internal/budget"
)

var (
	citationRe  = regexp.MustCompile(`【.*?†source】`)
	codeFenceRe = regexp.MustCompile("(?s)```.*?```")
	mdHeadingRe = regexp.MustCompile(`###.*\n`)
)

// ExtractionParseError reports that the structured completion produced
// arguments that are not valid JSON even after repair.
type ExtractionParseError struct {
	Err error
}

func (e *ExtractionParseError) Error() string {
	return fmt.Sprintf("extraction output is not valid JSON: %v", e.Err)
}

func (e *ExtractionParseError) Unwrap() error { return e.Err }

// SchemaMismatchError reports required fields absent from the parsed payload.
// Schema enforcement should prevent this; it is checked, never assumed.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("extraction output missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Completer is the slice of the provider client the extractor needs.
type Completer interface {
	CreateStructuredCompletion(ctx context.Context, req assistant.CompletionRequest) (string, error)
}

// Extractor normalizes assistant replies and converts them into budget
// collections via a schema-constrained completion call.
type Extractor struct {
	completer Completer
}

func New(completer Completer) *Extractor {
	return &Extractor{completer: completer}
}

// LatestAssistantReply selects the most recent assistant-authored message and
// concatenates its plain-text parts, discarding citations and non-text parts.
// When the thread holds no assistant reply it returns ok=false; callers pass
// their input through unchanged. This is a soft failure, not an error.
func LatestAssistantReply(messages []assistant.Message) (string, bool) {
	var last *assistant.Message
	for i := range messages {
		if messages[i].Role == assistant.RoleAssistant {
			last = &messages[i]
		}
	}
	if last == nil {
		log.Warn().Msg("No assistant message found in thread")
		return "", false
	}

	var texts []string
	for _, part := range last.Parts {
		if part.Kind == "text" {
			texts = append(texts, part.Text)
		}
	}
	return citationRe.ReplaceAllString(strings.Join(texts, "\n"), ""), true
}

// Normalize applies the three idempotent cleanups: fenced code blocks,
// markdown heading lines and citation markers.
func Normalize(raw string) string {
	clean := codeFenceRe.ReplaceAllString(raw, "")
	clean = mdHeadingRe.ReplaceAllString(clean, "")
	clean = citationRe.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

// ExtractBudgets normalizes raw text and forces the model to produce a budget
// collection conforming to the declared schema. Invalid JSON goes through one
// repair pass before failing.
func (e *Extractor) ExtractBudgets(ctx context.Context, raw string) (budget.Collection, error) {
	clean := Normalize(raw)

	args, err := e.completer.CreateStructuredCompletion(ctx, assistant.CompletionRequest{
		SystemPrompt:        systemPrompt,
		UserText:            clean,
		FunctionName:        functionName,
		FunctionDescription: functionDescription,
		Schema:              budgetSchema(),
	})
	if err != nil {
		return budget.Collection{}, &assistant.ProviderError{Op: "structured-completion", Err: err}
	}

	var collection budget.Collection
	if err := json.Unmarshal([]byte(args), &collection); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(args)
		if repairErr != nil {
			return budget.Collection{}, &ExtractionParseError{Err: err}
		}
		if err := json.Unmarshal([]byte(repaired), &collection); err != nil {
			return budget.Collection{}, &ExtractionParseError{Err: err}
		}
		log.Warn().
			Int("original_bytes", len(args)).
			Int("repaired_bytes", len(repaired)).
			Msg("Extraction output needed JSON repair")
	}

	if collection.Presupuestos == nil {
		return budget.Collection{}, &SchemaMismatchError{Missing: []string{"presupuestos"}}
	}
	return collection, nil
}
