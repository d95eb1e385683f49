// Package mode resolves which CI mode a run executes in. Validation runs a
// single smoke test to prove the kdevops machinery works; full testing runs
// the complete suite for the selected workflow.
package mode

import (
	"fmt"

	"github.com/linux-kdevops/kdevops-ci/pkg/api"
)

// Resolve maps an execution context to exactly one mode. The rules are
// checked in order and the first match wins: explicit operator overrides,
// then pull request context, then the legacy single-test selector, then
// manual dispatch. Scheduled and unknown triggers fall back to validation.
//
// Pull request context is deliberately checked before the test selector;
// a PR that also carries a TESTS parameter is still a validation run.
func Resolve(ctx *api.ExecutionContext) (api.Mode, error) {
	if err := ctx.Validate(); err != nil {
		return "", fmt.Errorf("invalid execution context: %w", err)
	}
	switch {
	case ctx.ForceValidation:
		return api.ModeValidation, nil
	case ctx.ForceFullTesting:
		return api.ModeFullTesting, nil
	case ctx.Trigger == api.TriggerPullRequest:
		return api.ModeValidation, nil
	case ctx.TestSelector != "":
		return api.ModeValidation, nil
	case ctx.Trigger == api.TriggerManualDispatch:
		return api.ModeFullTesting, nil
	default:
		return api.ModeValidation, nil
	}
}
