package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/internal/ui/pretty"
)

// helpStyles styles the parts of command help.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{plain, plain, plain, plain, plain}
	}
	return helpStyles{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}{{ end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}{{ range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}{{ end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}{{ end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}{{ end }}
{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{ end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ trimRight . }}

{{ end }}`

// applyHelp installs styled help and usage output on cmd and its children.
// Color follows the --color flag of the invocation.
func applyHelp(cmd *cobra.Command) {
	render := func(command *cobra.Command, text string, out io.Writer) error {
		mode, err := command.Flags().GetString(flagColor)
		if err != nil {
			mode = pretty.ColorAuto
		}
		styles := newHelpStyles(pretty.IsColorEnabled(mode, out))

		tmpl, err := template.New("help").Funcs(template.FuncMap{
			"command":   styles.command.Render,
			"heading":   styles.heading.Render,
			"name":      styles.name.Render,
			"dim":       styles.dim.Render,
			"flags":     styles.flagUsages,
			"rpad":      rpad,
			"trimRight": trimTrailingWhitespace,
		}).Parse(text)
		if err != nil {
			return err
		}
		return tmpl.Execute(out, command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render(command, usageTemplate, command.OutOrStderr())
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command, helpTemplate+usageTemplate, command.OutOrStdout()); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages styles pflag's usage block: flag names in color, value types
// dimmed, descriptions unchanged.
func (s helpStyles) flagUsages(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for idx, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		split := strings.Index(trimmed, "   ")
		if split < 0 {
			continue
		}
		var parts []string
		for _, token := range strings.Fields(trimmed[:split]) {
			if strings.HasPrefix(token, "-") {
				comma := strings.HasSuffix(token, ",")
				token = s.flag.Render(strings.TrimSuffix(token, ","))
				if comma {
					token += ","
				}
			} else {
				token = s.dim.Render(token)
			}
			parts = append(parts, token)
		}
		lines[idx] = line[:len(line)-len(trimmed)] + strings.Join(parts, " ") + trimmed[split:]
	}
	return strings.Join(lines, "\n")
}

func rpad(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}

func trimTrailingWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for idx, line := range lines {
		lines[idx] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
