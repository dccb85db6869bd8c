package workflow

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aicmt/aicmt/internal/git"
	"github.com/aicmt/aicmt/internal/provider"
	"github.com/aicmt/aicmt/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGit struct {
	diff        string
	files       []string
	lastMessage string
	lastMsgErr  error
	stageErr    error
	commitErr   error

	stagedAll     bool
	committed     bool
	commitMessage string
	commitAmend   bool
}

func (g *fakeGit) StageAll() error {
	g.stagedAll = true
	return g.stageErr
}

func (g *fakeGit) StagedDiff() (string, error) { return g.diff, nil }

func (g *fakeGit) StagedFiles() ([]string, error) { return g.files, nil }

func (g *fakeGit) LastCommitMessage() (string, error) { return g.lastMessage, g.lastMsgErr }

func (g *fakeGit) Commit(message string, amend bool) error {
	if g.commitErr != nil {
		return g.commitErr
	}
	g.committed = true
	g.commitMessage = message
	g.commitAmend = amend
	return nil
}

type fakeGenerator struct {
	message string
	err     error

	calls   int
	lastReq provider.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req provider.Request) (string, error) {
	f.calls++
	f.lastReq = req
	return f.message, f.err
}

func (f *fakeGenerator) Name() string { return "fake" }

func newFlow(g *fakeGit, gen *fakeGenerator, opts Options) *CommitFlow {
	presenter := ui.NewPresenter(&bytes.Buffer{}, &bytes.Buffer{})
	return NewCommitFlow(g, gen, presenter, opts)
}

func TestNoStagedChangesIsCleanNoOp(t *testing.T) {
	g := &fakeGit{diff: ""}
	gen := &fakeGenerator{message: "feat: x"}

	outcome, err := newFlow(g, gen, Options{Language: "english"}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Zero(t, gen.calls)
	assert.False(t, g.committed)
}

func TestLiteralMessageSkipsGeneration(t *testing.T) {
	g := &fakeGit{diff: "some diff"}
	gen := &fakeGenerator{message: "unused"}

	outcome, err := newFlow(g, gen, Options{
		Message:  "fix: literal message",
		Language: "english",
	}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, outcome)
	assert.Zero(t, gen.calls)
	assert.Equal(t, "fix: literal message", g.commitMessage)
}

func TestScenarioDefaultFlow(t *testing.T) {
	g := &fakeGit{diff: "some diff", files: []string{"main.go"}}
	gen := &fakeGenerator{message: "feat: add pipeline"}

	outcome, err := newFlow(g, gen, Options{Language: "english"}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, outcome)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "english", gen.lastReq.Language)
	assert.Empty(t, gen.lastReq.CommitType)
	assert.Empty(t, gen.lastReq.Scope)
	assert.Empty(t, gen.lastReq.PreviousMessage)
	assert.False(t, g.commitAmend)
	assert.Equal(t, "feat: add pipeline", g.commitMessage)
}

func TestScenarioStageAllWithLanguage(t *testing.T) {
	g := &fakeGit{diff: "some diff"}
	gen := &fakeGenerator{message: "feat: agrega flujo"}

	_, err := newFlow(g, gen, Options{
		StageAll: true,
		Language: "spanish",
	}).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, g.stagedAll)
	assert.Equal(t, "spanish", gen.lastReq.Language)
}

func TestScenarioAmend(t *testing.T) {
	g := &fakeGit{diff: "some diff", lastMessage: "feat(core): first pass"}
	gen := &fakeGenerator{message: "feat(core): first pass, now with tests"}

	outcome, err := newFlow(g, gen, Options{
		Amend:    true,
		Language: "english",
	}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeExecuted, outcome)
	assert.Equal(t, "feat(core): first pass", gen.lastReq.PreviousMessage)
	assert.True(t, g.commitAmend)
}

func TestScenarioDryRunStillStages(t *testing.T) {
	g := &fakeGit{diff: "some diff"}
	gen := &fakeGenerator{message: "feat: preview only"}

	var out, errOut bytes.Buffer
	presenter := ui.NewPresenter(&out, &errOut)
	flow := NewCommitFlow(g, gen, presenter, Options{
		StageAll: true,
		DryRun:   true,
		Language: "english",
	})

	outcome, err := flow.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, OutcomeDryRun, outcome)
	assert.True(t, g.stagedAll, "staging is a real side effect independent of dry-run")
	assert.Equal(t, 1, gen.calls)
	assert.False(t, g.committed)
	assert.Contains(t, out.String(), "git commit -m 'feat: preview only'")
}

func TestDryRunPreviewMatchesExecution(t *testing.T) {
	message := "feat(payments): add refund flow"
	preview := git.CommitArgs(message, true)

	g := &fakeGit{diff: "d", lastMessage: "old"}
	gen := &fakeGenerator{message: message}
	_, err := newFlow(g, gen, Options{Amend: true, Language: "english"}).Run(context.Background())
	require.NoError(t, err)

	// The executed invocation is built from the same arguments the
	// preview printed.
	assert.Equal(t, preview, git.CommitArgs(g.commitMessage, g.commitAmend))
}

func TestScenarioGenerationFailure(t *testing.T) {
	g := &fakeGit{diff: "some diff"}
	gen := &fakeGenerator{err: &provider.GenerationError{Backend: "fake", Reason: "model returned an empty message"}}

	outcome, err := newFlow(g, gen, Options{Language: "english"}).Run(context.Background())

	require.Error(t, err)
	var genErr *provider.GenerationError
	assert.True(t, errors.As(err, &genErr))
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.False(t, g.committed, "no commit is attempted after a generation failure")
}

func TestAmendWithoutHistoryFailsBeforeGeneration(t *testing.T) {
	g := &fakeGit{
		diff:       "some diff",
		lastMsgErr: &git.RepositoryAccessError{Action: "failed to read previous commit message"},
	}
	gen := &fakeGenerator{message: "unused"}

	_, err := newFlow(g, gen, Options{Amend: true, Language: "english"}).Run(context.Background())

	require.Error(t, err)
	var accessErr *git.RepositoryAccessError
	assert.True(t, errors.As(err, &accessErr))
	assert.Zero(t, gen.calls)
}

func TestStageAllFailureIsFatal(t *testing.T) {
	g := &fakeGit{stageErr: &git.RepositoryAccessError{Action: "failed to stage changes"}}
	gen := &fakeGenerator{message: "unused"}

	_, err := newFlow(g, gen, Options{StageAll: true, Language: "english"}).Run(context.Background())

	require.Error(t, err)
	assert.Zero(t, gen.calls)
	assert.False(t, g.committed)
}

func TestCommitFailurePropagates(t *testing.T) {
	g := &fakeGit{
		diff:      "some diff",
		commitErr: &git.CommitExecutionError{Stderr: "pre-commit hook rejected"},
	}
	gen := &fakeGenerator{message: "feat: x"}

	_, err := newFlow(g, gen, Options{Language: "english"}).Run(context.Background())

	require.Error(t, err)
	var commitErr *git.CommitExecutionError
	assert.True(t, errors.As(err, &commitErr))
	assert.Contains(t, err.Error(), "pre-commit hook rejected")
}

func TestGeneratedMessageIsCleaned(t *testing.T) {
	g := &fakeGit{diff: "some diff"}
	gen := &fakeGenerator{message: "```\nFeat(ui): add spinner\n```"}

	_, err := newFlow(g, gen, Options{Language: "english"}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "feat(ui): add spinner", g.commitMessage)
}

func TestForcedTypeAndScopeReachGenerator(t *testing.T) {
	g := &fakeGit{diff: "some diff"}
	gen := &fakeGenerator{message: "feat(payments): add refund flow"}

	_, err := newFlow(g, gen, Options{
		CommitType: "feat",
		Scope:      "payments",
		Language:   "english",
	}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "feat", gen.lastReq.CommitType)
	assert.Equal(t, "payments", gen.lastReq.Scope)
	assert.True(t, len(g.commitMessage) <= 100)
	assert.True(t, strings.HasPrefix(g.commitMessage, "feat(payments):"))
}
