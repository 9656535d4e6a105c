package chain

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shuldan/clikit/pkg/console"
)

func TestMapSpec_Map(t *testing.T) {
	t.Parallel()

	in := console.NewArrayInput(nil)
	in.SetArgument("name", "users")
	in.SetOption("tag", []string{"a", "b"})
	in.SetOption("extra", "c")

	spec := MapSpec{
		{From: "name", To: "--name"},
		{From: "--tag", To: "tags"},
		{From: "--extra", To: "tags"},
		{From: "missing", To: "target"},
		{From: "--absent", To: "--flag"},
	}

	got, err := spec.Map(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"--name": "users",
		"tags":   []any{"a", "b", "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestMapSpec_SingleSourceKeepsValue(t *testing.T) {
	t.Parallel()

	in := console.NewArrayInput(nil)
	in.SetOption("ids", []int{1, 2})

	got, err := MapSpec{{From: "--ids", To: "--ids"}}.Map(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"--ids": []int{1, 2}}, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestMapSpec_EmptyMapsNothing(t *testing.T) {
	t.Parallel()

	got, err := MapSpec(nil).Map(console.NewArrayInput(nil))
	if err != nil || len(got) != 0 {
		t.Errorf("Map = %v, %v", got, err)
	}
}
