package param

import (
	"strings"

	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/errors"
)

type Kind int

const (
	KindBool Kind = iota + 1
	KindInt
	KindString
	KindPath
	KindChoice
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindPath:
		return "path"
	case KindChoice:
		return "choice"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

// Parameter is a named, typed, promptable command input. It is read-only
// once constructed.
type Parameter struct {
	name        string
	description string
	shortcut    string
	kind        Kind
	required    bool
	multiple    bool
	def         any
	rule        rule
	option      *console.Option
}

type Option func(p *Parameter) error

func NewBool(name, description string, opts ...Option) (*Parameter, error) {
	return newParameter(name, description, KindBool, &boolRule{}, opts)
}

func NewInt(name, description string, opts ...Option) (*Parameter, error) {
	return newParameter(name, description, KindInt, &intRule{}, opts)
}

func NewString(name, description string, opts ...Option) (*Parameter, error) {
	return newParameter(name, description, KindString, &stringRule{}, opts)
}

func NewPath(name, description string, opts ...Option) (*Parameter, error) {
	return newParameter(name, description, KindPath, &pathRule{}, opts)
}

func NewChoice(name, description string, choices []string, opts ...Option) (*Parameter, error) {
	if len(choices) == 0 {
		return nil, ErrInvalidParameter.WithDetail("name", name).WithDetail("reason", "a choice needs at least one candidate")
	}
	return newParameter(name, description, KindChoice, &choiceRule{choices: append([]string(nil), choices...)}, opts)
}

func NewCustom(name, description string, opts ...Option) (*Parameter, error) {
	return newParameter(name, description, KindCustom, &customRule{}, opts)
}

func Must(p *Parameter, err error) *Parameter {
	if err != nil {
		panic(err)
	}
	return p
}

func newParameter(name, description string, kind Kind, r rule, opts []Option) (*Parameter, error) {
	if name == "" {
		return nil, ErrInvalidParameter.WithDetail("name", name).WithDetail("reason", "name must not be empty")
	}

	p := &Parameter{
		name:        name,
		description: description,
		kind:        kind,
		rule:        r,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if c, ok := r.(*choiceRule); ok && c.multiSelect && p.multiple {
		return nil, ErrInvalidParameter.
			WithDetail("name", name).
			WithDetail("reason", "multi-select choices cannot also be repeated")
	}

	if err := p.checkDefault(); err != nil {
		return nil, err
	}

	option, err := console.NewOption(p.name, p.shortcut, p.Mode(), p.description, nil)
	switch {
	case errors.Is(err, console.ErrInvalidOptionMode):
		return nil, ErrInvalidMode.WithDetail("name", name).WithCause(err)
	case err != nil:
		return nil, ErrInvalidShortcut.WithDetail("name", name).WithDetail("shortcut", p.shortcut).WithCause(err)
	}
	p.option = option

	return p, nil
}

func (p *Parameter) checkDefault() error {
	if p.def == nil {
		return nil
	}

	var ok bool
	var expected string
	switch p.kind {
	case KindBool:
		_, ok = p.def.(bool)
		expected = "a bool"
	case KindInt:
		if p.multiple {
			_, ok = p.def.([]int)
			expected = "an []int"
		} else {
			_, ok = p.def.(int)
			expected = "an int"
		}
	case KindString, KindPath, KindChoice:
		if p.multiple {
			_, ok = p.def.([]string)
			expected = "a []string"
		} else {
			_, ok = p.def.(string)
			expected = "a string"
		}
	default:
		ok = true
	}

	if !ok {
		return ErrInvalidDefault.WithDetail("name", p.name).WithDetail("expected", expected)
	}
	return nil
}

func (p *Parameter) Name() string         { return p.name }
func (p *Parameter) Description() string  { return p.description }
func (p *Parameter) Kind() Kind           { return p.kind }
func (p *Parameter) Default() any         { return p.def }
func (p *Parameter) IsRequired() bool     { return p.required }
func (p *Parameter) AllowsMultiple() bool { return p.multiple }

func (p *Parameter) Shortcuts() []string {
	return append([]string(nil), p.option.Shortcuts...)
}

func (p *Parameter) Mode() console.OptionMode {
	mode := console.ModeOptional
	if p.kind == KindBool {
		mode = console.ModeNone
	}
	if p.multiple {
		mode |= console.ModeIsArray
	}
	return mode
}

func (p *Parameter) Option() *console.Option {
	c := *p.option
	c.Shortcuts = p.Shortcuts()
	return &c
}

func Required() Option {
	return func(p *Parameter) error {
		p.required = true
		return nil
	}
}

func Multiple() Option {
	return func(p *Parameter) error {
		p.multiple = true
		return nil
	}
}

func Shortcut(aliases ...string) Option {
	return func(p *Parameter) error {
		p.shortcut = strings.Join(aliases, "|")
		return nil
	}
}

func Default(v any) Option {
	return func(p *Parameter) error {
		p.def = v
		return nil
	}
}

func Min(n int) Option {
	return func(p *Parameter) error {
		r, ok := p.rule.(*intRule)
		if !ok {
			return unsupported(p, "min")
		}
		r.min = &n
		return nil
	}
}

func Max(n int) Option {
	return func(p *Parameter) error {
		r, ok := p.rule.(*intRule)
		if !ok {
			return unsupported(p, "max")
		}
		r.max = &n
		return nil
	}
}

func Pattern(expr string) Option {
	return func(p *Parameter) error {
		r, ok := p.rule.(*stringRule)
		if !ok {
			return unsupported(p, "pattern")
		}
		return r.setPattern(p.name, expr)
	}
}

func MustExist(kind PathKind) Option {
	return func(p *Parameter) error {
		r, ok := p.rule.(*pathRule)
		if !ok {
			return unsupported(p, "must-exist")
		}
		r.mustExist = true
		r.kind = kind
		return nil
	}
}

func MultiSelect() Option {
	return func(p *Parameter) error {
		r, ok := p.rule.(*choiceRule)
		if !ok {
			return unsupported(p, "multi-select")
		}
		r.multiSelect = true
		return nil
	}
}

func Validate(v console.Validator) Option {
	return func(p *Parameter) error {
		r, ok := p.rule.(*customRule)
		if !ok {
			return unsupported(p, "validate")
		}
		r.validator = v
		return nil
	}
}

func Normalize(n console.Normalizer) Option {
	return func(p *Parameter) error {
		r, ok := p.rule.(*customRule)
		if !ok {
			return unsupported(p, "normalize")
		}
		r.normalizer = n
		return nil
	}
}

func unsupported(p *Parameter, option string) error {
	return ErrUnsupportedOption.
		WithDetail("option", option).
		WithDetail("kind", p.kind.String()).
		WithDetail("name", p.name)
}
