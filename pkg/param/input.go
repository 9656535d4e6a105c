package param

import (
	"io"

	"github.com/shuldan/clikit/pkg/console"
)

// Input decorates the raw input of one command invocation. Param reads a
// declared parameter from its flag, from its default, or from a prompt, and
// writes the result back to the raw input so later reads agree.
type Input struct {
	console.Input
	params   map[string]*Parameter
	resolved map[string]any
	prompter console.Prompter
	output   io.Writer
}

func NewInput(raw console.Input, prompter console.Prompter, out io.Writer, params ...*Parameter) *Input {
	if out == nil {
		out = io.Discard
	}
	in := &Input{
		Input:    raw,
		params:   make(map[string]*Parameter, len(params)),
		resolved: make(map[string]any, len(params)),
		prompter: prompter,
		output:   out,
	}
	for _, p := range params {
		in.params[p.Name()] = p
	}
	return in
}

func (in *Input) Parameter(name string) (*Parameter, bool) {
	p, ok := in.params[name]
	return p, ok
}

func (in *Input) Param(name string) (any, error) {
	p, ok := in.params[name]
	if !ok {
		return nil, ErrUnknownParameter.WithDetail("name", name)
	}
	if value, ok := in.resolved[name]; ok {
		return value, nil
	}

	candidate := in.Input.Option(name)
	provided := isProvided(p, candidate)
	if !provided && !in.IsInteractive() {
		candidate = p.Default()
		provided = isProvided(p, candidate)
	}

	var value any
	var err error
	switch {
	case provided:
		value, err = resolve(p, candidate)
	case !in.IsInteractive() && p.IsRequired():
		err = ErrMissingRequired.WithDetail("name", name)
	case !in.IsInteractive():
		// optional without a default reads as nil
	case p.AllowsMultiple():
		value, err = in.askMany(p)
	default:
		value, err = in.askOne(p)
	}
	if err != nil {
		return nil, err
	}

	in.resolved[name] = value
	in.Input.SetOption(name, value)
	return value, nil
}

func (in *Input) SetOption(name string, value any) {
	delete(in.resolved, name)
	in.Input.SetOption(name, value)
}

func isProvided(p *Parameter, value any) bool {
	if p.AllowsMultiple() {
		return !isEmpty(value)
	}
	return value != nil
}

func resolve(p *Parameter, value any) (any, error) {
	if !p.AllowsMultiple() {
		return p.validateSupplied(p.rule.normalize(value))
	}

	items, ok := sliceItems(value)
	if !ok {
		return nil, ErrExpectedArray.WithDetail("name", p.Name())
	}

	resolved := make([]any, 0, len(items))
	for _, item := range items {
		v, err := p.validateSupplied(p.rule.normalize(item))
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, v)
	}
	return typedSlice(p.Kind(), resolved), nil
}

func (in *Input) askOne(p *Parameter) (any, error) {
	q := p.Question()
	if !p.IsRequired() {
		q.Validator = skipEmpty(q.Validator)
	}
	return in.prompter.Ask(in.Input, in.output, q)
}

func (in *Input) askMany(p *Parameter) (any, error) {
	q := p.Question()
	q.Default = nil

	var collected []any
	inner := q.Validator
	q.Validator = console.ValidatorFunc(func(value any) (any, error) {
		if !isEmpty(value) {
			return inner.Validate(value)
		}
		if p.IsRequired() && len(collected) == 0 && p.Default() == nil {
			return nil, ErrAtLeastOne.WithDetail("name", p.Name())
		}
		return nil, nil
	})

	for {
		answer, err := in.prompter.Ask(in.Input, in.output, q)
		if err != nil {
			return nil, err
		}
		if isEmpty(answer) {
			break
		}
		collected = append(collected, answer)
	}

	if len(collected) == 0 {
		if p.Default() != nil {
			return resolve(p, p.Default())
		}
		return nil, nil
	}
	return typedSlice(p.Kind(), collected), nil
}

func skipEmpty(inner console.Validator) console.Validator {
	return console.ValidatorFunc(func(value any) (any, error) {
		if isEmpty(value) {
			return nil, nil
		}
		return inner.Validate(value)
	})
}

func typedSlice(kind Kind, values []any) any {
	switch kind {
	case KindInt:
		ints := make([]int, 0, len(values))
		for _, v := range values {
			n, ok := v.(int)
			if !ok {
				return values
			}
			ints = append(ints, n)
		}
		return ints
	case KindString, KindPath, KindChoice:
		strs := make([]string, 0, len(values))
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				return values
			}
			strs = append(strs, s)
		}
		return strs
	}
	return values
}

func (in *Input) String(name string) (string, error) {
	v, err := in.Param(name)
	s, _ := v.(string)
	return s, err
}

func (in *Input) Int(name string) (int, error) {
	v, err := in.Param(name)
	n, _ := v.(int)
	return n, err
}

func (in *Input) Bool(name string) (bool, error) {
	v, err := in.Param(name)
	b, _ := v.(bool)
	return b, err
}

func (in *Input) Strings(name string) ([]string, error) {
	v, err := in.Param(name)
	s, _ := v.([]string)
	return s, err
}

func (in *Input) Ints(name string) ([]int, error) {
	v, err := in.Param(name)
	n, _ := v.([]int)
	return n, err
}
