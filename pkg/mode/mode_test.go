package mode

import (
	"testing"

	"github.com/linux-kdevops/kdevops-ci/pkg/api"
)

func TestResolve(t *testing.T) {
	var testCases = []struct {
		name     string
		ctx      *api.ExecutionContext
		expected api.Mode
	}{
		{
			name:     "force validation wins over everything",
			ctx:      &api.ExecutionContext{Workflow: "xfs_reflink_4k", ForceValidation: true, Trigger: api.TriggerManualDispatch},
			expected: api.ModeValidation,
		},
		{
			name:     "force full testing wins over PR context",
			ctx:      &api.ExecutionContext{Workflow: "xfs_reflink_4k", ForceFullTesting: true, Trigger: api.TriggerPullRequest},
			expected: api.ModeFullTesting,
		},
		{
			name:     "pull request resolves to validation",
			ctx:      &api.ExecutionContext{Workflow: "xfs_reflink_4k", Trigger: api.TriggerPullRequest},
			expected: api.ModeValidation,
		},
		{
			name:     "pull request with a selector is still validation",
			ctx:      &api.ExecutionContext{Workflow: "xfs_reflink_4k", Trigger: api.TriggerPullRequest, TestSelector: "generic/003"},
			expected: api.ModeValidation,
		},
		{
			name:     "selector on manual dispatch takes the legacy validation path",
			ctx:      &api.ExecutionContext{Workflow: "blktests_nvme", Trigger: api.TriggerManualDispatch, TestSelector: "block/001"},
			expected: api.ModeValidation,
		},
		{
			name:     "manual dispatch without selector runs the full suite",
			ctx:      &api.ExecutionContext{Workflow: "blktests_nvme", Trigger: api.TriggerManualDispatch},
			expected: api.ModeFullTesting,
		},
		{
			name:     "scheduled runs fall back to validation",
			ctx:      &api.ExecutionContext{Workflow: "ltp_cve", Trigger: api.TriggerScheduled},
			expected: api.ModeValidation,
		},
		{
			name:     "unknown trigger falls back to validation",
			ctx:      &api.ExecutionContext{Workflow: "ltp_cve", Trigger: api.TriggerUnknown},
			expected: api.ModeValidation,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := Resolve(testCase.ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if actual != testCase.expected {
				t.Errorf("expected mode %s, got %s", testCase.expected, actual)
			}
		})
	}
}

func TestResolveRejectsConflictingForces(t *testing.T) {
	ctx := &api.ExecutionContext{Workflow: "xfs_reflink_4k", ForceValidation: true, ForceFullTesting: true}
	if _, err := Resolve(ctx); err == nil {
		t.Error("expected an error for conflicting force flags, got none")
	}
}

func TestResolveRequiresWorkflow(t *testing.T) {
	if _, err := Resolve(&api.ExecutionContext{}); err == nil {
		t.Error("expected an error for a missing workflow, got none")
	}
}
