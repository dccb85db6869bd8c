// Package formatter normalizes model output into a clean commit message.
package formatter

import (
	"regexp"
	"strings"
)

var commitTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "perf", "test", "build", "ci", "chore", "revert",
}

var headerPattern = regexp.MustCompile(
	`(?i)^(` + strings.Join(commitTypes, "|") + `)(\([^)]+\))?(!)?:\s*(.+)$`)

// CleanMessage strips the wrapping models sometimes add around the raw
// message (code fences, quotes) and lowercases a recognized conventional
// header type. User-supplied literal messages are never passed through here.
func CleanMessage(message string) string {
	message = strings.TrimSpace(message)
	message = stripFences(message)
	message = stripQuotes(message)

	lines := strings.Split(message, "\n")
	if len(lines) == 0 {
		return message
	}

	if m := headerPattern.FindStringSubmatch(strings.TrimSpace(lines[0])); m != nil {
		lines[0] = strings.ToLower(m[1]) + m[2] + m[3] + ": " + m[4]
	}
	return strings.Join(lines, "\n")
}

func stripFences(message string) string {
	if !strings.HasPrefix(message, "```") {
		return message
	}

	lines := strings.Split(message, "\n")
	if len(lines) < 2 {
		return message
	}

	// Drop the opening fence (possibly carrying a language tag) and a
	// matching closing fence.
	lines = lines[1:]
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func stripQuotes(message string) string {
	for _, quote := range []string{`"`, "'", "`"} {
		if len(message) >= 2 && strings.HasPrefix(message, quote) && strings.HasSuffix(message, quote) {
			return strings.TrimSpace(message[1 : len(message)-1])
		}
	}
	return message
}

// Subject returns the first line of a commit message.
func Subject(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}
