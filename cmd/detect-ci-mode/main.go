// detect-ci-mode resolves and prints the CI mode for the current run so
// workflow steps can branch on it before any tests execute.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/linux-kdevops/kdevops-ci/pkg/api"
	"github.com/linux-kdevops/kdevops-ci/pkg/markers"
	"github.com/linux-kdevops/kdevops-ci/pkg/mode"
)

type options struct {
	logLevel         string
	resultsDir       string
	forceValidation  bool
	forceFullTesting bool
}

func gatherOptions() (options, error) {
	o := options{}
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&o.logLevel, "log-level", "info", "Level at which to log output.")
	fs.StringVar(&o.resultsDir, "results-dir", ".", "Directory holding the ci.* marker files.")
	fs.BoolVar(&o.forceValidation, "force-validation", false, "Force validation mode regardless of trigger context.")
	fs.BoolVar(&o.forceFullTesting, "force-full-testing", false, "Force full testing mode regardless of trigger context.")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return o, fmt.Errorf("failed to parse flags: %w", err)
	}
	return o, nil
}

func validateOptions(o options) error {
	var errs []error
	if _, err := logrus.ParseLevel(o.logLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid --log-level: %w", err))
	}
	if o.forceValidation && o.forceFullTesting {
		errs = append(errs, errors.New("--force-validation and --force-full-testing are mutually exclusive"))
	}
	return utilerrors.NewAggregate(errs)
}

func main() {
	o, err := gatherOptions()
	if err != nil {
		logrus.WithError(err).Fatal("failed to gather options")
	}
	if err := validateOptions(o); err != nil {
		logrus.WithError(err).Fatal("invalid options")
	}
	level, _ := logrus.ParseLevel(o.logLevel)
	logrus.SetLevel(level)
	logger := logrus.WithField("component", "detect-ci-mode")

	workflow := os.Getenv("CI_WORKFLOW")
	if workflow == "" {
		logger.Fatal("environment variable CI_WORKFLOW is empty")
	}
	selector := os.Getenv("TESTS")
	if selector == "" {
		selector = os.Getenv("LIMIT_TESTS")
	}
	trigger := os.Getenv("GITHUB_EVENT_NAME")
	if raw, err := os.ReadFile(filepath.Join(o.resultsDir, markers.TriggerFile)); err == nil {
		trigger = string(raw)
	}

	ctx := &api.ExecutionContext{
		Trigger:          markers.ParseTrigger(trigger),
		TestSelector:     selector,
		ForceValidation:  o.forceValidation,
		ForceFullTesting: o.forceFullTesting,
		Workflow:         workflow,
	}
	resolved, err := mode.Resolve(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to resolve CI mode")
	}
	fmt.Println(resolved)
}
