// Package provider generates commit messages from a staged diff. Two
// backends share one contract: a direct OpenAI-compatible API used when a
// credential is configured, and a public relay endpoint used otherwise.
package provider

import (
	"context"
	"fmt"
)

// Request carries everything the backend needs to write a commit message.
type Request struct {
	Diff            string
	Files           []string
	Language        string
	CommitType      string
	Scope           string
	PreviousMessage string
}

// Generator produces a single commit-message string for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// GenerationError wraps any backend failure: transport errors, non-success
// responses, and empty results. It is fatal for the invocation; the flow
// never retries or switches backends.
type GenerationError struct {
	Backend string
	Reason  string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s generation failed: %s: %v", e.Backend, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s generation failed: %s", e.Backend, e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }
