package git

import (
	"fmt"
	"strings"

	"github.com/aicmt/aicmt/internal/gitcmd"
)

// RepositoryAccessError indicates that an inspection step could not read
// (or stage into) the repository: git missing, not a repository, no history.
type RepositoryAccessError struct {
	Action string
	Stderr string
	Err    error
}

func (e *RepositoryAccessError) Error() string {
	switch {
	case e.Stderr != "":
		return fmt.Sprintf("%s: %s", e.Action, e.Stderr)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Action, e.Err)
	default:
		return e.Action
	}
}

func (e *RepositoryAccessError) Unwrap() error { return e.Err }

// CommitExecutionError indicates that the commit command itself failed,
// for example a pre-commit hook rejection.
type CommitExecutionError struct {
	Stderr string
	Err    error
}

func (e *CommitExecutionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git commit failed: %s", e.Stderr)
	}
	return fmt.Sprintf("git commit failed: %v", e.Err)
}

func (e *CommitExecutionError) Unwrap() error { return e.Err }

func accessError(action string, result gitcmd.Result, err error) error {
	return &RepositoryAccessError{
		Action: action,
		Stderr: strings.TrimSpace(string(result.Stderr)),
		Err:    err,
	}
}
