package vivado

import (
	"strings"
	"text/template"
)

// Hook is a user-supplied tool command emitted verbatim into the build
// script. The template may reference {{.BuildName}}.
type Hook struct {
	Template string
}

type hookParams struct {
	BuildName string
}

// Render interpolates the hook template with the parameters of the current
// build.
func (h Hook) Render(buildName string) (string, error) {
	tpl, err := template.New("hook").Parse(h.Template)
	if err != nil {
		return "", &ConfigurationError{Reason: "invalid hook command template: " + err.Error()}
	}
	var b strings.Builder
	if err := tpl.Execute(&b, hookParams{BuildName: buildName}); err != nil {
		return "", &ConfigurationError{Reason: "invalid hook command template: " + err.Error()}
	}
	return b.String(), nil
}

// Hooks converts plain command templates into hooks.
func Hooks(templates []string) []Hook {
	hooks := make([]Hook, 0, len(templates))
	for _, t := range templates {
		hooks = append(hooks, Hook{Template: t})
	}
	return hooks
}

func renderHooks(hooks []Hook, buildName string) ([]string, error) {
	var lines []string
	for _, h := range hooks {
		line, err := h.Render(buildName)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
