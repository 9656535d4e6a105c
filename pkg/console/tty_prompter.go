package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	clierrors "github.com/shuldan/clikit/pkg/errors"
)

type TTYPrompter struct {
	fallback *StreamPrompter
}

func NewTTYPrompter() *TTYPrompter {
	return &TTYPrompter{fallback: NewStreamPrompter(os.Stdin)}
}

func DefaultPrompter() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewTTYPrompter()
	}
	return NewStreamPrompter(os.Stdin)
}

func (p *TTYPrompter) Ask(in Input, out io.Writer, q *Question) (any, error) {
	if in != nil && in.Stream() != nil {
		return p.fallback.Ask(in, out, q)
	}

	label := strings.TrimSuffix(strings.TrimSpace(q.Text), ":")

	switch {
	case q.Confirmation:
		return p.confirm(label, q)
	case len(q.Choices) > 0 && !q.MultiSelect:
		return p.choose(label, q)
	case q.Autocomplete != nil:
		return p.suggest(label, q)
	default:
		return p.prompt(label, q)
	}
}

func (p *TTYPrompter) confirm(label string, q *Question) (any, error) {
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	if def, ok := q.Default.(bool); ok && def {
		prompt.Default = "y"
	}

	answer, err := prompt.Run()
	switch {
	case errors.Is(err, promptui.ErrAbort):
		return q.resolve(false)
	case err != nil:
		return nil, p.translate(err)
	case answer == "":
		return q.resolve(q.Default)
	}
	return q.resolve(true)
}

func (p *TTYPrompter) choose(label string, q *Question) (any, error) {
	selector := promptui.Select{Label: label, Items: q.Choices}
	if def, ok := q.Default.(string); ok {
		for i, choice := range q.Choices {
			if choice == def {
				selector.CursorPos = i
			}
		}
	}

	_, value, err := selector.Run()
	if err != nil {
		return nil, p.translate(err)
	}
	return q.resolve(value)
}

func (p *TTYPrompter) suggest(label string, q *Question) (any, error) {
	fragment := ""
	if def, ok := q.Default.(string); ok {
		fragment = def
	}
	items := q.Autocomplete(fragment)
	if len(items) == 0 {
		return p.prompt(label, q)
	}

	selector := promptui.SelectWithAdd{Label: label, Items: items, AddLabel: "Other"}
	_, value, err := selector.Run()
	if err != nil {
		return nil, p.translate(err)
	}
	return q.resolve(value)
}

func (p *TTYPrompter) prompt(label string, q *Question) (any, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(answer string) error {
			_, err := q.resolve(p.value(q, answer))
			if err != nil {
				return errors.New(clierrors.Message(err))
			}
			return nil
		},
	}
	if q.Default != nil {
		prompt.Default = fmt.Sprint(q.Default)
	}

	answer, err := prompt.Run()
	if err != nil {
		return nil, p.translate(err)
	}
	return q.resolve(p.value(q, answer))
}

func (p *TTYPrompter) value(q *Question, answer string) any {
	if strings.TrimSpace(answer) == "" {
		return q.Default
	}
	return strings.TrimSpace(answer)
}

func (p *TTYPrompter) translate(err error) error {
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		return ErrInterrupted.WithCause(err)
	case errors.Is(err, promptui.ErrEOF):
		return ErrInputExhausted.WithCause(err)
	}
	return err
}
