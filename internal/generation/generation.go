// Package generation defines the text-in/text-out boundary between the
// pipeline and the external model. Implementations are best-effort: any
// failure is reported as an error and converted into a conservative verdict
// by the caller, never propagated further.
package generation

import "context"

// Generator produces free-form reasoning text for an assembled prompt.
type Generator interface {
	// Generate runs the model once for the given prompt and returns its raw
	// textual output. Implementations own their retry and warm-up policy;
	// an error means the policy is exhausted.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend for logging and status reporting.
	Name() string
}
