// Package markers assembles the execution context for a run. The CI driver
// and test runner communicate with this tool through environment variables
// and small single-value marker files dropped in the results directory;
// everything is gathered exactly once here so the rest of the code never
// touches the process environment.
package markers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/linux-kdevops/kdevops-ci/pkg/api"
	"github.com/linux-kdevops/kdevops-ci/pkg/gitinfo"
)

// Marker files written by the test runner stage. All of them are optional;
// a missing file degrades the corresponding field.
const (
	// ResultFile holds the literal verdict, "ok" or "not ok".
	ResultFile = "ci.result"
	// StartTimeFile holds the run's start as a unix epoch in seconds.
	StartTimeFile = "ci.start_time"
	// RefFile holds the kernel ref the run was asked to test.
	RefFile = "ci.ref"
	// TriggerFile holds the trigger source string. It takes precedence
	// over GITHUB_EVENT_NAME when both are present.
	TriggerFile = "ci.trigger"
	// CommitExtraFile holds the free-text output captured from the runner.
	CommitExtraFile = "ci.commit_extra"
)

// Inputs tells Load where to find the marker files and checkouts.
type Inputs struct {
	// ResultsDir holds the ci.* marker files.
	ResultsDir string
	// LinuxDir is the kernel checkout that was tested.
	LinuxDir string
	// KdevopsDir is the kdevops checkout that drove the run.
	KdevopsDir string

	ForceValidation  bool
	ForceFullTesting bool

	// Now is the clock; it exists so tests can pin the end time.
	Now func() time.Time
}

// Load builds the immutable execution context for this run. CI_WORKFLOW is
// the only required input; every other field degrades to its zero or
// placeholder value when missing.
func Load(in Inputs, logger *logrus.Entry) (*api.ExecutionContext, error) {
	workflow := os.Getenv("CI_WORKFLOW")
	if workflow == "" {
		return nil, errors.New("environment variable CI_WORKFLOW is empty")
	}
	tree := os.Getenv("KERNEL_TREE")
	if tree == "" {
		tree = "linux"
	}
	selector := os.Getenv("TESTS")
	if selector == "" {
		selector = os.Getenv("LIMIT_TESTS")
	}
	trigger := readMarker(in.ResultsDir, TriggerFile, logger)
	if trigger == "" {
		trigger = os.Getenv("GITHUB_EVENT_NAME")
	}

	now := time.Now
	if in.Now != nil {
		now = in.Now
	}
	start := startTime(in.ResultsDir, logger)
	end := now().UTC()
	if d := os.Getenv("DURATION"); d != "" && !start.IsZero() {
		if secs, err := strconv.ParseInt(d, 10, 64); err == nil {
			end = start.Add(time.Duration(secs) * time.Second)
		} else {
			logger.WithError(err).WithField("DURATION", d).Debug("ignoring unparseable DURATION")
		}
	}

	linux := gitinfo.New(in.LinuxDir, logger)
	kdevops := gitinfo.New(in.KdevopsDir, logger)

	ctx := &api.ExecutionContext{
		Trigger:             ParseTrigger(trigger),
		TestSelector:        selector,
		ForceValidation:     in.ForceValidation,
		ForceFullTesting:    in.ForceFullTesting,
		Workflow:            workflow,
		KernelTree:          tree,
		KernelRef:           readMarker(in.ResultsDir, RefFile, logger),
		KernelDescribe:      linux.Describe(),
		KernelCommitSubject: linux.HeadSubject(),
		ToolHash:            kdevops.ShortHash(),
		ToolCommitSubject:   kdevops.HeadSubject(),
		TestResult:          parseResult(readMarker(in.ResultsDir, ResultFile, logger)),
		ResultBody:          readMarker(in.ResultsDir, CommitExtraFile, logger),
		StartTime:           start,
		EndTime:             end,
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// ParseTrigger maps a trigger source string (GitHub event names or the
// driver's own markers) to a TriggerKind.
func ParseTrigger(s string) api.TriggerKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pull_request", "pull_request_target":
		return api.TriggerPullRequest
	case "workflow_dispatch", "manual":
		return api.TriggerManualDispatch
	case "schedule", "scheduled":
		return api.TriggerScheduled
	default:
		return api.TriggerUnknown
	}
}

func parseResult(s string) api.TestResult {
	switch s {
	case "ok":
		return api.ResultOk
	case "not ok":
		return api.ResultNotOk
	default:
		return api.ResultUnknown
	}
}

func startTime(dir string, logger *logrus.Entry) time.Time {
	raw := readMarker(dir, StartTimeFile, logger)
	if raw == "" {
		return time.Time{}
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.WithError(err).WithField("file", StartTimeFile).Debug("ignoring unparseable start time")
		return time.Time{}
	}
	return time.Unix(epoch, 0).UTC()
}

// readMarker returns the trimmed content of a marker file, or "" when the
// file is missing or unreadable. Missing markers are the normal case for
// runs that fail early, so this never errors.
func readMarker(dir, name string, logger *logrus.Entry) string {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Debug(fmt.Sprintf("failed to read marker %s", name))
		}
		return ""
	}
	return strings.TrimRight(string(b), " \t\n")
}
