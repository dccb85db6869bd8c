// Package gitcmd runs git with shared logging and output capture.
package gitcmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes git commands. Dir and Env are overridable for tests.
type Runner struct {
	Verbose bool
	Dir     string
	Env     []string
	Logger  io.Writer
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	output := string(r.Stdout)
	if trim {
		return strings.TrimRight(output, " \t\r\n")
	}
	return output
}

func (r Result) StderrString(trim bool) string {
	output := string(r.Stderr)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Runner) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

func (r Runner) log(args []string) {
	if !r.Verbose {
		return
	}
	logger := r.Logger
	if logger == nil {
		logger = os.Stderr
	}
	fmt.Fprintf(logger, "Running: git %s\n", strings.Join(args, " "))
}

// Run executes a git command and captures stdout/stderr.
func (r Runner) Run(args ...string) (Result, error) {
	return r.run(args, false)
}

// RunLogged executes a git command, logs it when verbose, and captures
// stdout/stderr.
func (r Runner) RunLogged(args ...string) (Result, error) {
	return r.run(args, true)
}

func (r Runner) run(args []string, log bool) (Result, error) {
	if log {
		r.log(args)
	}
	cmd := r.command(args...)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}
