package console

import (
	"slices"
	"strings"
	"unicode/utf8"
)

type OptionMode int

const (
	ModeNone OptionMode = 1 << iota
	ModeRequired
	ModeOptional
	ModeIsArray
)

func (m OptionMode) Has(flag OptionMode) bool {
	return m&flag == flag
}

func (m OptionMode) AcceptsValue() bool {
	return m.Has(ModeRequired) || m.Has(ModeOptional)
}

type Option struct {
	Name        string
	Shortcuts   []string
	Mode        OptionMode
	Description string
	Default     any
}

func NewOption(name, shortcut string, mode OptionMode, description string, def any) (*Option, error) {
	name = strings.TrimPrefix(name, "--")
	if name == "" {
		return nil, ErrInvalidOptionName.WithDetail("name", name).WithDetail("reason", "name must not be empty")
	}

	shortcuts, err := parseShortcuts(name, shortcut)
	if err != nil {
		return nil, err
	}

	if reason := invalidMode(mode); reason != "" {
		return nil, ErrInvalidOptionMode.WithDetail("name", name).WithDetail("reason", reason)
	}

	if mode.Has(ModeNone) && def != nil {
		return nil, ErrInvalidOptionMode.
			WithDetail("name", name).
			WithDetail("reason", "an option that takes no value cannot have a default")
	}

	return &Option{
		Name:        name,
		Shortcuts:   shortcuts,
		Mode:        mode,
		Description: description,
		Default:     def,
	}, nil
}

func parseShortcuts(name, shortcut string) ([]string, error) {
	if shortcut == "" {
		return nil, nil
	}
	var shortcuts []string
	for _, alias := range strings.Split(shortcut, "|") {
		alias = strings.TrimPrefix(alias, "-")
		if utf8.RuneCountInString(alias) != 1 {
			return nil, ErrInvalidOptionName.
				WithDetail("name", name).
				WithDetail("reason", "shortcut "+alias+" must be a single character")
		}
		if slices.Contains(shortcuts, alias) {
			return nil, ErrDuplicateShortcut.WithDetail("shortcut", alias)
		}
		shortcuts = append(shortcuts, alias)
	}
	return shortcuts, nil
}

func (o *Option) Shortcut() string {
	if len(o.Shortcuts) == 0 {
		return ""
	}
	return o.Shortcuts[0]
}

func invalidMode(mode OptionMode) string {
	switch {
	case mode == 0:
		return "no mode set"
	case mode > ModeNone|ModeRequired|ModeOptional|ModeIsArray:
		return "unknown mode bits"
	case mode.Has(ModeNone) && mode != ModeNone:
		return "none cannot be combined with value modes"
	case mode.Has(ModeRequired) && mode.Has(ModeOptional):
		return "a value cannot be both required and optional"
	case mode.Has(ModeIsArray) && !mode.AcceptsValue():
		return "array options must accept a value"
	}
	return ""
}

type Argument struct {
	Name        string
	Required    bool
	IsArray     bool
	Description string
}

type Definition struct {
	arguments []*Argument
	options   []*Option
	shortcuts map[string]string
}

func NewDefinition() *Definition {
	return &Definition{shortcuts: make(map[string]string)}
}

func (d *Definition) AddArgument(arg *Argument) error {
	if arg == nil || arg.Name == "" {
		return ErrInvalidArgument.WithDetail("name", "").WithDetail("reason", "name must not be empty")
	}
	if d.Argument(arg.Name) != nil {
		return ErrDuplicateArgument.WithDetail("name", arg.Name)
	}
	if n := len(d.arguments); n > 0 {
		last := d.arguments[n-1]
		if last.IsArray {
			return ErrInvalidArgument.WithDetail("name", arg.Name).WithDetail("reason", "cannot follow array argument "+last.Name)
		}
		if arg.Required && !last.Required {
			return ErrInvalidArgument.WithDetail("name", arg.Name).WithDetail("reason", "a required argument cannot follow an optional one")
		}
	}
	d.arguments = append(d.arguments, arg)
	return nil
}

func (d *Definition) AddOption(opt *Option) error {
	if opt == nil {
		return ErrInvalidOptionName.WithDetail("name", "").WithDetail("reason", "option is nil")
	}
	if d.Option(opt.Name) != nil {
		return ErrDuplicateOption.WithDetail("name", opt.Name)
	}
	for _, shortcut := range opt.Shortcuts {
		if _, exists := d.shortcuts[shortcut]; exists {
			return ErrDuplicateShortcut.WithDetail("shortcut", shortcut)
		}
	}
	for _, shortcut := range opt.Shortcuts {
		d.shortcuts[shortcut] = opt.Name
	}
	d.options = append(d.options, opt)
	return nil
}

func (d *Definition) Argument(name string) *Argument {
	for _, arg := range d.arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

func (d *Definition) Option(name string) *Option {
	for _, opt := range d.options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

func (d *Definition) OptionByShortcut(shortcut string) *Option {
	if name, ok := d.shortcuts[shortcut]; ok {
		return d.Option(name)
	}
	return nil
}

func (d *Definition) Arguments() []*Argument {
	return append([]*Argument(nil), d.arguments...)
}

func (d *Definition) Options() []*Option {
	return append([]*Option(nil), d.options...)
}
