// Package commitmsg renders the commit message used when archiving a CI
// run's results. The output follows the historical git log conventions the
// archive's readers expect: 72-column text, quoted subject lines folded at
// 68 columns with continuations indented under the opening quote.
package commitmsg

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-version"
	"github.com/muesli/reflow/wordwrap"

	"github.com/linux-kdevops/kdevops-ci/pkg/api"
	"github.com/linux-kdevops/kdevops-ci/pkg/workflow"
)

const (
	toolName = "kdevops"

	// placeholder stands in for any optional input that could not be
	// gathered; its presence in the output is the only signal that a
	// field degraded.
	placeholder = "unknown"

	// metadataWidth is the git log convention for body lines.
	metadataWidth = 72
	// subjectWidth is where quoted subject lines fold.
	subjectWidth = 68
	// continuationIndent aligns folded subject text under the opening quote.
	continuationIndent = 10
)

// Compose renders the full commit message for a resolved run. It never
// fails: missing optional fields render as "unknown" placeholders. The
// output is byte-identical for identical inputs.
func Compose(ctx *api.ExecutionContext, m api.Mode) string {
	sections := []string{
		Header(ctx, m),
		ScopeDescription(ctx, m),
		buildInfo(ctx),
		resultsSection(ctx),
		"Duration: " + FormatDuration(ctx.StartTime, ctx.EndTime),
		metadata(ctx, m),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// Header builds the first line of the message. Validation runs identify the
// kdevops commit under test; full testing runs identify the kernel and its
// verdict.
func Header(ctx *api.ExecutionContext, m api.Mode) string {
	if m == api.ModeValidation {
		return fmt.Sprintf("%s-ci: %s: %s %s", toolName, ctx.Workflow,
			orPlaceholder(ctx.ToolHash), quoteSubject(orPlaceholder(ctx.ToolCommitSubject)))
	}
	status := "PASS"
	if ctx.TestResult == api.ResultNotOk {
		status = "FAIL"
	}
	return fmt.Sprintf("%s (%s %s): %s", ctx.Workflow,
		orPlaceholder(ctx.KernelTree), orPlaceholder(ctx.KernelDescribe), status)
}

// ScopeDescription states what the run covered.
func ScopeDescription(ctx *api.ExecutionContext, m api.Mode) string {
	if m == api.ModeFullTesting {
		return "full test suite"
	}
	if ctx.TestSelector != "" {
		return fmt.Sprintf("%s-ci validation (single test: %s)", toolName, ctx.TestSelector)
	}
	return toolName + "-ci validation"
}

func buildInfo(ctx *api.ExecutionContext) string {
	lines := []string{
		"Build info:",
		"  tree: " + orPlaceholder(ctx.KernelTree),
		"  kernel: " + kernelVersion(ctx.KernelDescribe),
		"  kernel commit: " + quoteSubject(orPlaceholder(ctx.KernelCommitSubject)),
		fmt.Sprintf("  %s: %s %s", toolName,
			orPlaceholder(ctx.ToolHash), quoteSubject(orPlaceholder(ctx.ToolCommitSubject))),
	}
	return strings.Join(lines, "\n")
}

// kernelVersion annotates a git describe value with whether it points at a
// tagged release or past one. Values that do not parse as versions (hash
// fallbacks, "unknown") render bare.
func kernelVersion(describe string) string {
	if describe == "" {
		return placeholder
	}
	// Kernel tags start with v; bare-hash describe fallbacks do not and
	// should not be mistaken for versions.
	if !strings.HasPrefix(describe, "v") {
		return describe
	}
	v, err := version.NewVersion(describe)
	if err != nil {
		return describe
	}
	if v.Prerelease() == "" {
		return describe + " (tagged release)"
	}
	return describe + " (development snapshot)"
}

func resultsSection(ctx *api.ExecutionContext) string {
	body := strings.TrimRight(ctx.ResultBody, "\n")
	if body == "" {
		body = "No test results available."
	}
	return workflow.Family(ctx.Workflow) + " results:\n" + body
}

// FormatDuration renders an elapsed time as "3m 14s", or "45s" under a
// minute. A zero start time means the start marker was never written and
// renders as "unknown" rather than failing.
func FormatDuration(start, end time.Time) string {
	if start.IsZero() {
		return placeholder
	}
	secs := int(end.Sub(start).Seconds())
	if secs < 0 {
		secs = 0
	}
	if m := secs / 60; m > 0 {
		return fmt.Sprintf("%dm %ds", m, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}

// metadata renders the pipe-delimited summary line. When the requested and
// resolved kernel refs differ both are shown so the reader can see how a
// symbolic ref (e.g. "latest") resolved; when they agree only the resolved
// one appears. Lines that would exceed 72 columns split after the tree
// field.
func metadata(ctx *api.ExecutionContext, m api.Mode) string {
	refs := "ref: " + orPlaceholder(ctx.KernelDescribe)
	if ctx.KernelRef != "" && ctx.KernelRef != ctx.KernelDescribe {
		refs = fmt.Sprintf("requested: %s | actual: %s", ctx.KernelRef, orPlaceholder(ctx.KernelDescribe))
	}
	head := fmt.Sprintf("workflow: %s | tree: %s", ctx.Workflow, orPlaceholder(ctx.KernelTree))
	tail := fmt.Sprintf("%s | scope: %s | result: %s", refs, ScopeDescription(ctx, m), resultWord(ctx.TestResult))
	if line := head + " | " + tail; utf8.RuneCountInString(line) <= metadataWidth {
		return line
	}
	return head + "\n" + tail
}

func resultWord(r api.TestResult) string {
	switch r {
	case api.ResultOk:
		return "pass"
	case api.ResultNotOk:
		return "fail"
	default:
		return placeholder
	}
}

// quoteSubject wraps a commit subject in ("...") quoting. Subjects longer
// than 68 columns fold at word boundaries; continuation lines get exactly
// ten leading spaces so the text lines up under the opening quote.
func quoteSubject(subject string) string {
	if utf8.RuneCountInString(subject) <= subjectWidth {
		return `("` + subject + `")`
	}
	lines := strings.Split(wordwrap.String(subject, subjectWidth), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.Repeat(" ", continuationIndent) + lines[i]
	}
	return `("` + strings.Join(lines, "\n") + `")`
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
