package sentiment

import (
	"context"
	"fmt"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

// Provider produces a structured sentiment judgment for one comment about one
// brand. Externally-hosted providers may fail with *ProviderError; the
// orchestrator recovers by falling back to the rule-based analyzer.
type Provider interface {
	Method() models.AnalysisMethod
	Analyze(ctx context.Context, text, brand string) (*models.ProviderResult, error)
}

// ProviderError marks an analysis call that was unreachable, unconfigured, or
// returned a response that could not be parsed into the expected shape.
type ProviderError struct {
	Method models.AnalysisMethod
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Method, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(method models.AnalysisMethod, format string, args ...any) *ProviderError {
	return &ProviderError{Method: method, Err: fmt.Errorf(format, args...)}
}
