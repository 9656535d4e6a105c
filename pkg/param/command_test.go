package param

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shuldan/clikit/pkg/console"
)

type greetCommand struct {
	Command
	greeting string
}

func newGreetCommand() *greetCommand {
	return &greetCommand{
		Command: NewCommand("greet", "Greets someone",
			Must(NewString("name", "Who to greet", Required())),
			Must(NewInt("times", "How often", Default(1), Min(1))),
		),
	}
}

func (c *greetCommand) Execute(ctx console.Context) (int, error) {
	in := From(ctx)
	name, err := in.String("name")
	if err != nil {
		return 1, err
	}
	times, err := in.Int("times")
	if err != nil {
		return 1, err
	}
	c.greeting = strings.Repeat("hello "+name+" ", times)
	return 0, nil
}

func TestCommand_RunsThroughApplication(t *testing.T) {
	t.Parallel()

	cmd := newGreetCommand()
	app := console.NewApplication(console.WithPrompter(console.NewStreamPrompter(nil)))
	if err := app.Register(cmd); err != nil {
		t.Fatal(err)
	}

	in := console.NewArrayInput(map[string]any{"command": "greet", "--times": "2"})
	in.SetStream(strings.NewReader("ada\n"))

	var out bytes.Buffer
	code, err := app.Run(context.Background(), in, &out)
	if err != nil || code != 0 {
		t.Fatalf("code = %d, err = %v", code, err)
	}
	if cmd.greeting != "hello ada hello ada " {
		t.Errorf("greeting = %q", cmd.greeting)
	}
	if out.String() != "Who to greet: " {
		t.Errorf("output = %q", out.String())
	}
	if in.Option("name") != "ada" {
		t.Errorf("the answer should be written back to the raw input, got %v", in.Option("name"))
	}
}

func TestCommand_NonInteractiveMissingRequired(t *testing.T) {
	t.Parallel()

	app := console.NewApplication(console.WithPrompter(console.NewStreamPrompter(nil)))
	_ = app.Register(newGreetCommand())

	in := console.NewArrayInput(map[string]any{"command": "greet", "--no-interaction": nil})
	code, err := app.Run(context.Background(), in, &bytes.Buffer{})
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
}

func TestCommand_ConfigureRejectsDuplicates(t *testing.T) {
	t.Parallel()

	cmd := NewCommand("dup", "",
		Must(NewString("name", "Name")),
		Must(NewString("name", "Name again")),
	)
	if err := cmd.Configure(console.NewDefinition()); !errors.Is(err, console.ErrDuplicateOption) {
		t.Errorf("expected ErrDuplicateOption, got %v", err)
	}
}

func TestFrom_UndecoratedInput(t *testing.T) {
	t.Parallel()

	raw := console.NewArrayInput(nil)
	ctx := console.NewContext(context.Background(), raw, &bytes.Buffer{}, console.NewStreamPrompter(nil))

	in := From(ctx)
	if in.Input != raw {
		t.Error("From should wrap the raw input")
	}
	if _, err := in.Param("anything"); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
}
