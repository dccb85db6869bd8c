package workflow

import (
	"context"

	"github.com/aicmt/aicmt/internal/formatter"
	"github.com/aicmt/aicmt/internal/git"
	"github.com/aicmt/aicmt/internal/provider"
	"github.com/aicmt/aicmt/internal/ui"
)

// Options is the resolved command-line configuration, immutable after
// startup.
type Options struct {
	// Message, when set, is committed as-is and generation is skipped.
	Message    string
	StageAll   bool
	Amend      bool
	DryRun     bool
	Verbose    bool
	CommitType string
	Scope      string
	Language   string
}

// Outcome describes how an invocation ended.
type Outcome int

const (
	// OutcomeSkipped means nothing was staged and no amend was requested.
	OutcomeSkipped Outcome = iota
	// OutcomeDryRun means the command was constructed but not executed.
	OutcomeDryRun
	// OutcomeExecuted means git created (or amended) the commit.
	OutcomeExecuted
)

// CommitFlow runs the pipeline once per invocation.
type CommitFlow struct {
	git       GitClient
	gen       provider.Generator
	presenter *ui.Presenter
	opts      Options
}

func NewCommitFlow(gitClient GitClient, gen provider.Generator, presenter *ui.Presenter, opts Options) *CommitFlow {
	presenter.Verbose = opts.Verbose
	return &CommitFlow{git: gitClient, gen: gen, presenter: presenter, opts: opts}
}

// Run executes the stages strictly in order. Every failure is terminal;
// nothing is retried and the backend is never switched mid-flight.
func (f *CommitFlow) Run(ctx context.Context) (Outcome, error) {
	if f.opts.StageAll {
		f.presenter.Step("Staging all changes")
		if err := f.git.StageAll(); err != nil {
			return OutcomeSkipped, err
		}
	}

	f.presenter.Step("Reading staged diff")
	diff, err := f.git.StagedDiff()
	if err != nil {
		return OutcomeSkipped, err
	}

	if diff == "" && !f.opts.Amend {
		f.presenter.NothingToCommit()
		return OutcomeSkipped, nil
	}

	previous := ""
	if f.opts.Amend {
		f.presenter.Step("Reading previous commit message")
		previous, err = f.git.LastCommitMessage()
		if err != nil {
			return OutcomeSkipped, err
		}
	}

	message, err := f.resolveMessage(ctx, diff, previous)
	if err != nil {
		return OutcomeSkipped, err
	}

	f.presenter.Message(message)

	if f.opts.DryRun {
		f.presenter.DryRun(git.CommitArgs(message, f.opts.Amend))
		return OutcomeDryRun, nil
	}

	if err := f.git.Commit(message, f.opts.Amend); err != nil {
		return OutcomeSkipped, err
	}

	f.presenter.Committed(f.opts.Amend)
	return OutcomeExecuted, nil
}

func (f *CommitFlow) resolveMessage(ctx context.Context, diff, previous string) (string, error) {
	if f.opts.Message != "" {
		f.presenter.Step("Using supplied commit message")
		return f.opts.Message, nil
	}

	files, err := f.git.StagedFiles()
	if err != nil {
		return "", err
	}

	f.presenter.Step("Generating commit message via %s backend", f.gen.Name())
	sp := ui.NewSpinner("Generating commit message...")
	sp.Start()
	message, err := f.gen.Generate(ctx, provider.Request{
		Diff:            diff,
		Files:           files,
		Language:        f.opts.Language,
		CommitType:      f.opts.CommitType,
		Scope:           f.opts.Scope,
		PreviousMessage: previous,
	})
	sp.Stop()
	if err != nil {
		return "", err
	}

	return formatter.CleanMessage(message), nil
}
