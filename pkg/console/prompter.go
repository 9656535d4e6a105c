package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shuldan/clikit/pkg/errors"
)

type Prompter interface {
	Ask(in Input, out io.Writer, q *Question) (any, error)
}

type StreamPrompter struct {
	stdin   io.Reader
	readers map[io.Reader]*bufio.Reader
}

func NewStreamPrompter(stdin io.Reader) *StreamPrompter {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &StreamPrompter{
		stdin:   stdin,
		readers: make(map[io.Reader]*bufio.Reader),
	}
}

func (p *StreamPrompter) Ask(in Input, out io.Writer, q *Question) (any, error) {
	reader := p.reader(in)

	if len(q.Choices) > 0 {
		for i, choice := range q.Choices {
			_, _ = fmt.Fprintf(out, "  [%d] %s\n", i, choice)
		}
	}

	for attempt := 1; ; attempt++ {
		_, _ = fmt.Fprint(out, q.Text)

		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			_, _ = fmt.Fprintln(out)
			return nil, ErrInputExhausted
		}

		value, err := p.answer(q, strings.TrimRight(line, "\r\n"))
		if err == nil {
			return value, nil
		}

		_, _ = fmt.Fprintf(out, "%s\n", errors.Message(err))
		if q.MaxAttempts > 0 && attempt >= q.MaxAttempts {
			return nil, ErrTooManyAttempts.WithDetail("attempts", attempt).WithCause(err)
		}
	}
}

func (p *StreamPrompter) answer(q *Question, line string) (any, error) {
	var value any = strings.TrimSpace(line)
	if value == "" {
		value = q.Default
	} else if q.Confirmation {
		confirmed, ok := parseConfirmation(line)
		if !ok {
			return nil, ErrInvalidConfirmation
		}
		value = confirmed
	}
	return q.resolve(value)
}

func parseConfirmation(answer string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "true", "1":
		return true, true
	case "n", "no", "false", "0":
		return false, true
	}
	return false, false
}

func (p *StreamPrompter) reader(in Input) *bufio.Reader {
	stream := p.stdin
	if in != nil && in.Stream() != nil {
		stream = in.Stream()
	}
	if r, ok := p.readers[stream]; ok {
		return r
	}
	r := bufio.NewReader(stream)
	p.readers[stream] = r
	return r
}
