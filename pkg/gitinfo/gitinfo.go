// Package gitinfo reads commit metadata from local checkouts and creates
// the archive commit. Metadata lookups are best-effort: when git or the
// checkout is unavailable the caller gets "unknown" and the run proceeds.
package gitinfo

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Unknown is the degraded value returned when a lookup fails.
const Unknown = "unknown"

// Repo wraps git invocations against a single local checkout.
type Repo struct {
	// dir is the checkout the commands run in.
	dir string
	// git is the path to the git binary.
	git string

	logger *logrus.Entry
}

func New(dir string, logger *logrus.Entry) *Repo {
	return &Repo{dir: dir, git: "git", logger: logger}
}

func (r *Repo) gitCommand(arg ...string) *exec.Cmd {
	cmd := exec.Command(r.git, arg...)
	cmd.Dir = r.dir
	r.logger.WithField("args", cmd.Args).WithField("dir", cmd.Dir).Debug("Constructed git command")
	return cmd
}

// Describe returns `git describe --tags --always` for HEAD, or Unknown.
func (r *Repo) Describe() string {
	return r.lookup("describe", "--tags", "--always")
}

// HeadSubject returns the subject line of the HEAD commit, or Unknown.
func (r *Repo) HeadSubject() string {
	return r.lookup("log", "-1", "--format=%s")
}

// ShortHash returns the abbreviated HEAD hash, or Unknown.
func (r *Repo) ShortHash() string {
	return r.lookup("rev-parse", "--short=8", "HEAD")
}

func (r *Repo) lookup(arg ...string) string {
	b, err := r.gitCommand(arg...).CombinedOutput()
	if err != nil {
		r.logger.WithError(err).WithField("output", string(b)).Debugf("git %s failed, degrading to %q", arg[0], Unknown)
		return Unknown
	}
	out := strings.TrimSpace(string(b))
	if out == "" {
		return Unknown
	}
	return out
}

// CommitAll stages everything in the checkout and commits it with message.
// Unlike the metadata lookups this does not degrade: archiving the results
// is the point of the run, so failures surface to the caller.
func (r *Repo) CommitAll(message string) error {
	if b, err := r.gitCommand("add", "-A").CombinedOutput(); err != nil {
		return fmt.Errorf("git add failed: %w, output: %s", err, string(b))
	}
	cmd := r.gitCommand("commit", "-F", "-")
	cmd.Stdin = strings.NewReader(message)
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git commit failed: %w, output: %s", err, string(b))
	}
	return nil
}
