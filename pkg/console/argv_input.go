package console

import (
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// noValue marks an optional-value flag given without a value. Such flags
// read as nil, the same as an absent flag.
const noValue = "\x00"

type ArgvInput struct {
	store
	tokens []string
}

func NewArgvInput(args []string) *ArgvInput {
	return &ArgvInput{
		store:  newStore(),
		tokens: append([]string(nil), args...),
	}
}

func (in *ArgvInput) FirstArgument() string {
	for i, token := range in.tokens {
		if token == "--" {
			if i+1 < len(in.tokens) {
				return in.tokens[i+1]
			}
			return ""
		}
		if strings.HasPrefix(token, "-") {
			continue
		}
		return token
	}
	return ""
}

func (in *ArgvInput) Bind(def *Definition) error {
	in.reset(def)

	flags := pflag.NewFlagSet("clikit", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.SortFlags = false

	for _, opt := range in.definition.Options() {
		switch {
		case opt.Mode.Has(ModeNone):
			flags.BoolP(opt.Name, opt.Shortcut(), false, opt.Description)
		case opt.Mode.Has(ModeIsArray):
			flags.StringArrayP(opt.Name, opt.Shortcut(), nil, opt.Description)
		default:
			flags.StringP(opt.Name, opt.Shortcut(), "", opt.Description)
		}
		if opt.Mode.Has(ModeOptional) {
			flags.Lookup(opt.Name).NoOptDefVal = noValue
		}
	}

	if err := flags.Parse(aliasShortcuts(in.definition, in.tokens)); err != nil {
		return ErrInvalidInput.WithDetail("reason", err.Error()).WithCause(err)
	}

	flags.Visit(func(f *pflag.Flag) {
		in.options[f.Name] = flagValue(flags, in.definition.Option(f.Name), f)
	})

	return in.bindArguments(flags.Args())
}

// aliasShortcuts rewrites extra shortcuts to the option's first one, the
// only shorthand pflag registers. Rewriting stops at the first value-taking
// shortcut of a cluster, since the rest of the token is its value.
func aliasShortcuts(def *Definition, tokens []string) []string {
	out := append([]string(nil), tokens...)
	for i := 0; i < len(out); i++ {
		token := out[i]
		if token == "--" {
			break
		}
		if len(token) < 2 || token[0] != '-' || token[1] == '-' {
			continue
		}

		cluster := []rune(token[1:])
		consumesNext := false
		for j, r := range cluster {
			opt := def.OptionByShortcut(string(r))
			if opt == nil {
				break
			}
			cluster[j] = []rune(opt.Shortcut())[0]
			if opt.Mode.AcceptsValue() {
				consumesNext = j == len(cluster)-1 && opt.Mode.Has(ModeRequired)
				break
			}
		}
		out[i] = "-" + string(cluster)
		if consumesNext {
			i++
		}
	}
	return out
}

func flagValue(flags *pflag.FlagSet, opt *Option, f *pflag.Flag) any {
	switch {
	case opt.Mode.Has(ModeNone):
		value, _ := flags.GetBool(f.Name)
		return value
	case opt.Mode.Has(ModeIsArray):
		raw, _ := flags.GetStringArray(f.Name)
		values := make([]string, 0, len(raw))
		for _, v := range raw {
			if v != noValue {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return nil
		}
		return values
	default:
		value := f.Value.String()
		if value == noValue {
			return nil
		}
		return value
	}
}

func (in *ArgvInput) bindArguments(args []string) error {
	i := 0
	for _, arg := range in.definition.Arguments() {
		if i >= len(args) {
			break
		}
		if arg.IsArray {
			in.arguments[arg.Name] = append([]string(nil), args[i:]...)
			i = len(args)
			break
		}
		in.arguments[arg.Name] = args[i]
		i++
	}

	if i < len(args) {
		return ErrTooManyArguments.WithDetail("value", args[i])
	}
	return nil
}
