// Package ui renders progress and results to the terminal. It carries no
// business logic and never changes an outcome, only describes it.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const fallbackWidth = 72

// Presenter writes progress lines, banners, and previews.
type Presenter struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool

	header  *color.Color
	success *color.Color
	faint   *color.Color
}

func NewPresenter(out, errOut io.Writer) *Presenter {
	p := &Presenter{
		Out:     out,
		Err:     errOut,
		header:  color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
		faint:   color.New(color.Faint),
	}

	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		p.header.DisableColor()
		p.success.DisableColor()
		p.faint.DisableColor()
	}
	return p
}

// Step prints a progress line in verbose mode.
func (p *Presenter) Step(format string, args ...any) {
	if !p.Verbose {
		return
	}
	fmt.Fprintf(p.Err, format+"\n", args...)
}

// Message prints the ready-to-commit banner and the final message.
func (p *Presenter) Message(message string) {
	rule := p.faint.Sprint(strings.Repeat("─", p.width()))
	fmt.Fprintln(p.Err)
	p.header.Fprintln(p.Err, "Commit message")
	fmt.Fprintln(p.Err, rule)
	fmt.Fprintln(p.Out, message)
	fmt.Fprintln(p.Err, rule)
}

// DryRun prints the exact command a real invocation would execute.
func (p *Presenter) DryRun(args []string) {
	p.header.Fprintln(p.Err, "Dry run, no commit performed. Would execute:")
	fmt.Fprintf(p.Out, "git %s\n", shellJoin(args))
}

// Committed prints the success footer.
func (p *Presenter) Committed(amend bool) {
	if amend {
		p.success.Fprintln(p.Err, "Successfully amended the previous commit!")
		return
	}
	p.success.Fprintln(p.Err, "Successfully committed changes!")
}

// NothingToCommit prints the clean no-op notice.
func (p *Presenter) NothingToCommit() {
	fmt.Fprintln(p.Err, "No changes detected in the staging area.")
	fmt.Fprintln(p.Err, "Hint: use -a or --all to stage all changes first.")
}

func (p *Presenter) width() int {
	f, ok := p.Out.(*os.File)
	if !ok {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	if width > 120 {
		width = 120
	}
	return width
}

// shellJoin renders argv for display only; the real invocation never goes
// through a shell.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " \t\n'\"`$&|;<>()*?!") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		} else {
			quoted[i] = arg
		}
	}
	return strings.Join(quoted, " ")
}
