package compiler

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// validateComparison compiles a threshold requirement expression in a CEL
// environment that declares the metric variable. Rejection here means the
// requirement is skipped rather than lowered into a malformed constraint.
func validateComparison(metric, expr string) error {
	env, err := cel.NewEnv(
		cel.Variable(metric, cel.DynType),
	)
	if err != nil {
		return fmt.Errorf("cel environment: %w", err)
	}
	if _, issues := env.Compile(expr); issues != nil && issues.Err() != nil {
		return fmt.Errorf("requirement expression %q: %w", expr, issues.Err())
	}
	return nil
}
