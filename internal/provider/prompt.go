package provider

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// SystemPrompt frames the model as a commit-message writer.
const SystemPrompt = "You are a professional git commit message generator. " +
	"You write commit messages that comply with the Conventional Commits specification."

const defaultTemplate = `Summarize the following staged git changes as a single commit message.

{{- if .Files}}

Changed files:
{{range .Files}}{{.}}
{{end}}
{{- end}}

Diff:
{{.Diff}}

{{- if .PreviousMessage}}

This commit amends the previous one. Incorporate and reconcile the previous
message with the new changes instead of ignoring it:
{{.PreviousMessage}}
{{- end}}

Requirements:
- Use the Conventional Commits format "type(scope): subject".
{{- if .CommitType}}
- The type must be "{{.CommitType}}".
{{- else}}
- Pick the type by change intent: a bug fix is "fix", a new capability is "feat", a structural change with no behavior change is "refactor", test additions are "test", documentation-only changes are "docs".
{{- end}}
{{- if .Scope}}
- The scope must be "{{.Scope}}".
{{- end}}
- Write the message in {{.Language}}.
- Keep the subject line at or under 100 characters.
- Use the imperative mood.
- Return only the raw commit message with no surrounding quotes, code fences, or markup.`

// templateFile is the on-disk shape of a custom prompt template.
type templateFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

// LoadTemplate returns the prompt template body. With an empty path the
// built-in template is used; otherwise the YAML file at path is read and
// its template field returned.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return defaultTemplate, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("unable to read prompt template %s: %w", path, err)
	}

	var tpl templateFile
	if err := yaml.Unmarshal(content, &tpl); err != nil || tpl.Template == "" {
		// Plain-text template files are accepted as-is.
		return string(content), nil
	}
	return tpl.Template, nil
}

// BuildPrompt renders the user prompt for a request.
func BuildPrompt(req Request, templateBody string) (string, error) {
	if templateBody == "" {
		templateBody = defaultTemplate
	}

	tmpl, err := template.New("prompt").Parse(templateBody)
	if err != nil {
		return "", fmt.Errorf("invalid prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("unable to render prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
