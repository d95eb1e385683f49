package gitinfo

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// brokenRepo points at a git binary that cannot exist, so every command
// fails the same way it would on a runner without git installed.
func brokenRepo(t *testing.T) *Repo {
	return &Repo{dir: t.TempDir(), git: "git-binary-that-does-not-exist", logger: quietLogger()}
}

func TestLookupsDegradeToUnknown(t *testing.T) {
	repo := brokenRepo(t)
	if actual := repo.Describe(); actual != Unknown {
		t.Errorf("Describe() = %q, expected %q", actual, Unknown)
	}
	if actual := repo.HeadSubject(); actual != Unknown {
		t.Errorf("HeadSubject() = %q, expected %q", actual, Unknown)
	}
	if actual := repo.ShortHash(); actual != Unknown {
		t.Errorf("ShortHash() = %q, expected %q", actual, Unknown)
	}
}

func TestLookupsDegradeOutsideARepo(t *testing.T) {
	repo := New(t.TempDir(), quietLogger())
	if actual := repo.Describe(); actual != Unknown {
		t.Errorf("Describe() in an empty directory = %q, expected %q", actual, Unknown)
	}
}

func TestCommitAllSurfacesErrors(t *testing.T) {
	repo := brokenRepo(t)
	err := repo.CommitAll("blktests_nvme (linux v6.15): PASS\n")
	require.Error(t, err, "committing without a usable git binary must fail")
}
