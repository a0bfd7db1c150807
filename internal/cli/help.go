package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/ui/pretty"
)

// minFlagGap is the run of spaces pflag puts between a flag and its usage.
const minFlagGap = 2

// HelpFormatter renders Cobra help and usage with the shared terminal styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.SummaryTitle.Render,
		"command":    h.styles.Bold.Render,
		"subcommand": h.styles.Identifier.Render,
		"example":    h.styles.Dim.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"join":       strings.Join,
		"trim":       trimTrailingSpace,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trim }}

{{end}}` + usageTemplate

// flagUsages styles the pflag usage block: flag names highlighted, value
// types dimmed, descriptions left as is.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	idx := strings.Index(trimmed, strings.Repeat(" ", minFlagGap))
	if idx < 0 {
		return line
	}
	definition, description := trimmed[:idx], strings.TrimLeft(trimmed[idx:], " ")

	fields := strings.Fields(definition)
	for i, field := range fields {
		if name, ok := strings.CutPrefix(field, "-"); ok {
			comma := strings.HasSuffix(name, ",")
			fields[i] = h.styles.Code.Render("-" + strings.TrimSuffix(name, ","))
			if comma {
				fields[i] += ","
			}
			continue
		}
		fields[i] = h.styles.Dim.Render(field)
	}

	return indent + strings.Join(fields, " ") + "   " + description
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them from the root.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	render := func(name, text string, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad pads str with spaces to the given width.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingSpace removes trailing whitespace from every line of s.
func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
