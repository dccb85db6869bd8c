// Package git wraps the git executable for staged-change inspection and
// commit execution. Everything except StageAll and Commit is read-only.
package git

import (
	"strings"

	"github.com/aicmt/aicmt/internal/gitcmd"
)

// Options configures a Client.
type Options struct {
	Verbose bool
	// Dir overrides the working directory, used by tests.
	Dir string
}

// Client runs git commands for a single repository.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	return &Client{runner: gitcmd.Runner{Verbose: opts.Verbose, Dir: opts.Dir}}
}

// IsRepository reports whether the working directory is inside a git repo.
func (c *Client) IsRepository() bool {
	_, err := c.runner.Run("rev-parse", "--git-dir")
	return err == nil
}

// StagedDiff returns the unified diff of staged changes with trailing
// whitespace trimmed. An empty string means nothing is staged.
func (c *Client) StagedDiff() (string, error) {
	result, err := c.runner.RunLogged("diff", "--cached")
	if err != nil {
		return "", accessError("failed to read staged diff", result, err)
	}
	return result.StdoutString(true), nil
}

// StagedFiles returns the paths of files with staged changes.
func (c *Client) StagedFiles() ([]string, error) {
	result, err := c.runner.RunLogged("diff", "--cached", "--name-only")
	if err != nil {
		return nil, accessError("failed to list staged files", result, err)
	}

	var files []string
	for _, line := range strings.Split(result.StdoutString(true), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// LastCommitMessage returns the full message of the most recent commit.
// It fails with a RepositoryAccessError when the repository has no commits.
func (c *Client) LastCommitMessage() (string, error) {
	result, err := c.runner.RunLogged("log", "-1", "--pretty=%B")
	if err != nil {
		return "", accessError("failed to read previous commit message", result, err)
	}
	return strings.TrimSpace(result.StdoutString(false)), nil
}

// StageAll stages all tracked and untracked changes.
func (c *Client) StageAll() error {
	result, err := c.runner.RunLogged("add", "-A")
	if err != nil {
		return accessError("failed to stage changes", result, err)
	}
	return nil
}

// CommitArgs builds the argv (without the leading "git") for the commit
// invocation. The message is always a single literal argument. The dry-run
// preview and Commit share this builder so they cannot diverge.
func CommitArgs(message string, amend bool) []string {
	args := []string{"commit", "-m", message}
	if amend {
		args = append(args, "--amend")
	}
	return args
}

// Commit creates (or amends) a commit with the given message.
func (c *Client) Commit(message string, amend bool) error {
	result, err := c.runner.RunLogged(CommitArgs(message, amend)...)
	if err != nil {
		return &CommitExecutionError{
			Stderr: combinedOutput(result),
			Err:    err,
		}
	}
	return nil
}

// combinedOutput prefers stderr but falls back to stdout; git hooks often
// write their rejection reason to stdout.
func combinedOutput(result gitcmd.Result) string {
	if msg := result.StderrString(true); msg != "" {
		return msg
	}
	return strings.TrimSpace(result.StdoutString(false))
}
