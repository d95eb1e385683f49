package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/linux-kdevops/kdevops-ci/pkg/commitmsg"
	"github.com/linux-kdevops/kdevops-ci/pkg/gitinfo"
	"github.com/linux-kdevops/kdevops-ci/pkg/markers"
	"github.com/linux-kdevops/kdevops-ci/pkg/mode"
	"github.com/linux-kdevops/kdevops-ci/pkg/workflow"
)

type options struct {
	logLevel         string
	resultsDir       string
	linuxDir         string
	kdevopsDir       string
	archiveDir       string
	output           string
	forceValidation  bool
	forceFullTesting bool
}

func gatherOptions() (options, error) {
	o := options{}
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&o.logLevel, "log-level", "info", "Level at which to log output.")
	fs.StringVar(&o.resultsDir, "results-dir", ".", "Directory holding the ci.* marker files written by the test runner.")
	fs.StringVar(&o.linuxDir, "linux-dir", "linux", "Path to the kernel checkout that was tested.")
	fs.StringVar(&o.kdevopsDir, "kdevops-dir", ".", "Path to the kdevops checkout that drove the run.")
	fs.StringVar(&o.archiveDir, "archive-dir", "", "If set, commit the generated message in this results archive checkout.")
	fs.StringVar(&o.output, "output", "", "Write the message to this file instead of stdout.")
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
	logger := logrus.WithField("component", "generate-commit-message")

	ctx, err := markers.Load(markers.Inputs{
		ResultsDir:       o.resultsDir,
		LinuxDir:         o.linuxDir,
		KdevopsDir:       o.kdevopsDir,
		ForceValidation:  o.forceValidation,
		ForceFullTesting: o.forceFullTesting,
		Now:              time.Now,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to gather execution context")
	}

	resolved, err := mode.Resolve(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to resolve CI mode")
	}
	logger.WithFields(logrus.Fields{
		"mode":     resolved,
		"workflow": ctx.Workflow,
		"family":   workflow.Family(ctx.Workflow),
		"result":   ctx.TestResult,
	}).Info("Resolved CI mode")

	message := commitmsg.Compose(ctx, resolved)

	if o.output != "" {
		if err := os.WriteFile(o.output, []byte(message), 0644); err != nil {
			logger.WithError(err).Fatalf("failed to write message to %s", o.output)
		}
	} else {
		fmt.Print(message)
	}

	if o.archiveDir != "" {
		archive := gitinfo.New(o.archiveDir, logger)
		if err := archive.CommitAll(message); err != nil {
			logger.WithError(err).Fatal("failed to commit to the results archive")
		}
		logger.WithField("dir", o.archiveDir).Info("Committed results to archive")
	}
}
