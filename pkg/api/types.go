package api

import (
	"errors"
	"time"
)

// TriggerKind identifies what started a CI run.
type TriggerKind string

const (
	// TriggerPullRequest covers pull_request and pull_request_target events.
	TriggerPullRequest TriggerKind = "pull-request"
	// TriggerManualDispatch covers workflow_dispatch events.
	TriggerManualDispatch TriggerKind = "manual-dispatch"
	// TriggerScheduled covers cron-driven runs.
	TriggerScheduled TriggerKind = "scheduled"
	// TriggerUnknown is used when the trigger source cannot be determined.
	TriggerUnknown TriggerKind = "unknown"
)

// TestResult is the outcome recorded by the test runner.
type TestResult string

const (
	ResultOk      TestResult = "ok"
	ResultNotOk   TestResult = "not ok"
	ResultUnknown TestResult = "unknown"
)

// Mode is the resolved CI mode for a run. It is computed exactly once per
// run and never changes afterwards.
type Mode string

const (
	// ModeValidation is a fast single-test run that confirms kdevops itself
	// works, not kernel correctness.
	ModeValidation Mode = "validation"
	// ModeFullTesting runs the complete suite for the selected workflow.
	ModeFullTesting Mode = "full-testing"
)

// ExecutionContext holds every input commit message generation needs. It is
// assembled once at startup from the environment, the marker files left
// behind by the test runner, and git metadata, then passed around read-only
// so that no component reaches into the process environment on its own.
type ExecutionContext struct {
	// Trigger is the source that started this run.
	Trigger TriggerKind `json:"trigger"`
	// TestSelector restricts the run to a single test (e.g. "generic/003").
	// An empty string means no selector was given.
	TestSelector string `json:"test_selector,omitempty"`
	// ForceValidation and ForceFullTesting are explicit operator overrides.
	// At most one of them may be set.
	ForceValidation  bool `json:"force_validation,omitempty"`
	ForceFullTesting bool `json:"force_full_testing,omitempty"`

	// Workflow is the CI workflow identifier, structured as
	// <family>_<section>, e.g. "xfs_reflink_4k" or "blktests_nvme".
	Workflow string `json:"workflow"`

	// KernelTree names the kernel tree under test (e.g. "linux").
	KernelTree string `json:"kernel_tree"`
	// KernelRef is the ref the run was asked to test, as recorded by the
	// CI driver. May be symbolic (e.g. "latest").
	KernelRef string `json:"kernel_ref,omitempty"`
	// KernelDescribe is the resolved version string from git describe.
	KernelDescribe string `json:"kernel_describe"`
	// KernelCommitSubject is the subject line of the tested kernel commit.
	KernelCommitSubject string `json:"kernel_commit_subject"`

	// ToolHash and ToolCommitSubject identify the kdevops checkout that
	// drove the run.
	ToolHash          string `json:"tool_hash"`
	ToolCommitSubject string `json:"tool_commit_subject"`

	// TestResult is the runner's verdict, ResultUnknown when no result
	// marker was written.
	TestResult TestResult `json:"test_result"`
	// ResultBody is the free-text output captured from the runner.
	ResultBody string `json:"result_body,omitempty"`

	// StartTime is zero when the start marker is missing or unreadable.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Validate rejects contexts that cannot be resolved to a single mode.
func (c *ExecutionContext) Validate() error {
	if c.Workflow == "" {
		return errors.New("workflow must be set")
	}
	if c.ForceValidation && c.ForceFullTesting {
		return errors.New("force-validation and force-full-testing are mutually exclusive")
	}
	return nil
}
