package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
)

type commandSource interface {
	Find(name string) (Command, error)
	Groups() map[string][]Command
	Definition(cmd Command) (*Definition, error)
}

type HelpCommand struct {
	BaseCommand
	source commandSource
}

func NewHelpCommand(source commandSource) *HelpCommand {
	h := &HelpCommand{
		BaseCommand: NewBaseCommand("help", "Display help for commands"),
		source:      source,
	}
	h.SetGroup("system")
	h.SetHelp("Lists every command, or shows usage, arguments and options of one command.")
	return h
}

func (h *HelpCommand) Configure(def *Definition) error {
	return def.AddArgument(&Argument{Name: "command_name", Description: "The command name"})
}

func (h *HelpCommand) Execute(ctx Context) (int, error) {
	name, _ := ctx.Input().Argument("command_name").(string)
	if name == "" {
		return 0, h.showGeneralHelp(ctx.Output())
	}

	cmd, err := h.source.Find(name)
	if err != nil {
		return 1, err
	}
	def, err := h.source.Definition(cmd)
	if err != nil {
		return 1, err
	}
	return 0, describeCommand(ctx.Output(), cmd, def)
}

type PrintableCommand struct {
	PaddedName  string
	Description string
}

var generalHelp = template.Must(template.New("help").Parse(`Usage:
  command [options] [arguments]

Options:
  -h, --help            Display help for the given command
  -n, --no-interaction  Do not ask any interactive question

{{ range $group, $commands := .Groups }}{{ $group }}:{{ range $commands }}
  {{.PaddedName}}  {{.Description}}{{ end }}

{{ end }}`))

func (h *HelpCommand) showGeneralHelp(out io.Writer) error {
	data := struct {
		Groups map[string][]PrintableCommand
	}{
		Groups: make(map[string][]PrintableCommand),
	}

	for groupName, commands := range h.source.Groups() {
		longest := 0
		for _, cmd := range commands {
			if len(cmd.Name()) > longest {
				longest = len(cmd.Name())
			}
		}

		formatter := "%-" + strconv.Itoa(longest) + "s"
		printable := make([]PrintableCommand, 0, len(commands))
		for _, cmd := range commands {
			printable = append(printable, PrintableCommand{
				PaddedName:  fmt.Sprintf(formatter, cmd.Name()),
				Description: cmd.Description(),
			})
		}
		data.Groups[groupName] = printable
	}

	return generalHelp.Execute(out, data)
}

var commandHelp = template.Must(template.New("command").Parse(`{{ if .Description }}Description:
  {{ .Description }}

{{ end }}Usage:
  {{ .Usage }}
{{ if .Arguments }}
Arguments:{{ range .Arguments }}
  {{ .PaddedName }}  {{ .Description }}{{ end }}
{{ end }}{{ if .Options }}
Options:{{ range .Options }}
  {{ .PaddedName }}  {{ .Description }}{{ end }}
{{ end }}{{ if .Help }}
Help:
  {{ .Help }}
{{ end }}`))

func describeCommand(out io.Writer, cmd Command, def *Definition) error {
	data := struct {
		Description string
		Usage       string
		Help        string
		Arguments   []PrintableCommand
		Options     []PrintableCommand
	}{
		Description: cmd.Description(),
		Usage:       synopsis(cmd.Name(), def),
		Help:        cmd.Help(),
	}

	var argNames, argDescs []string
	for _, arg := range def.Arguments() {
		if arg.Name == "command" {
			continue
		}
		argNames = append(argNames, arg.Name)
		argDescs = append(argDescs, arg.Description)
	}
	data.Arguments = pad(argNames, argDescs)

	var optNames, optDescs []string
	for _, opt := range def.Options() {
		optNames = append(optNames, optionLabel(opt))
		optDescs = append(optDescs, optionDescription(opt))
	}
	data.Options = pad(optNames, optDescs)

	return commandHelp.Execute(out, data)
}

func synopsis(name string, def *Definition) string {
	parts := []string{name}
	if len(def.Options()) > 0 {
		parts = append(parts, "[options]")
	}
	for _, arg := range def.Arguments() {
		if arg.Name == "command" {
			continue
		}
		element := "<" + arg.Name + ">"
		if arg.IsArray {
			element += "..."
		}
		if !arg.Required {
			element = "[" + element + "]"
		}
		parts = append(parts, element)
	}
	return strings.Join(parts, " ")
}

func optionLabel(opt *Option) string {
	label := "    --" + opt.Name
	if len(opt.Shortcuts) > 0 {
		label = "-" + strings.Join(opt.Shortcuts, "|") + ", --" + opt.Name
	}
	value := strings.ToUpper(opt.Name)
	switch {
	case opt.Mode.Has(ModeRequired):
		label += "=" + value
	case opt.Mode.Has(ModeOptional):
		label += "[=" + value + "]"
	}
	return label
}

func optionDescription(opt *Option) string {
	desc := opt.Description
	if opt.Default != nil {
		desc += fmt.Sprintf(" [default: %v]", opt.Default)
	}
	if opt.Mode.Has(ModeIsArray) {
		desc += " (multiple values allowed)"
	}
	return desc
}

func pad(names, descriptions []string) []PrintableCommand {
	longest := 0
	for _, name := range names {
		if len(name) > longest {
			longest = len(name)
		}
	}
	formatter := "%-" + strconv.Itoa(longest) + "s"

	out := make([]PrintableCommand, 0, len(names))
	for i, name := range names {
		out = append(out, PrintableCommand{
			PaddedName:  fmt.Sprintf(formatter, name),
			Description: descriptions[i],
		})
	}
	return out
}
