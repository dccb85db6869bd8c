// Package workflow orchestrates the commit pipeline: stage, inspect,
// generate, execute, present.
package workflow

// GitClient abstracts git operations for testability.
type GitClient interface {
	StageAll() error
	StagedDiff() (string, error)
	StagedFiles() ([]string, error)
	LastCommitMessage() (string, error)
	Commit(message string, amend bool) error
}
