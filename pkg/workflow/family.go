// Package workflow classifies CI workflow identifiers into test-suite
// families (fstests, blktests, selftests, ...).
package workflow

import (
	"strings"

	"github.com/gobwas/glob"
)

type rule struct {
	family   string
	patterns []glob.Glob
}

// The rules mirror the order of the shell case statement that predates this
// tool. Order matters because the patterns overlap: *mm* was added for the
// mm selftests and still shadows every later rule for ids containing "mm",
// including mmtests_*. Reordering would reclassify existing archive history,
// so the shadowing stays.
var rules = []rule{
	{family: "fstests", patterns: compile("*xfs*", "*btrfs*", "*ext4*", "*tmpfs*")},
	{family: "blktests", patterns: compile("blktests*")},
	{family: "selftests", patterns: compile("selftests*", "*firmware*", "*modules*", "*mm*")},
	{family: "ai", patterns: compile("ai_*")},
	{family: "mmtests", patterns: compile("mmtests_*")},
	{family: "ltp", patterns: compile("ltp_*")},
	{family: "fio-tests", patterns: compile("fio-tests*", "fio_*")},
	{family: "minio", patterns: compile("minio_*")},
}

func compile(patterns ...string) []glob.Glob {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, glob.MustCompile(p))
	}
	return compiled
}

// Family maps a workflow identifier to its coarse test-suite family. Rules
// are evaluated top to bottom and the first match wins. Identifiers that
// match no rule fall back to the text before the first underscore, or the
// whole identifier when there is none.
func Family(workflow string) string {
	for _, r := range rules {
		for _, p := range r.patterns {
			if p.Match(workflow) {
				return r.family
			}
		}
	}
	family, _, _ := strings.Cut(workflow, "_")
	return family
}
