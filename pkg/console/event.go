package console

import "io"

// TerminateEvent is published by value after every command run. Listeners
// change the final exit code through SetExitCode.
type TerminateEvent struct {
	Command  Command
	Input    Input
	Output   io.Writer
	exitCode *int
}

func NewTerminateEvent(cmd Command, in Input, out io.Writer, exitCode int) TerminateEvent {
	return TerminateEvent{
		Command:  cmd,
		Input:    in,
		Output:   out,
		exitCode: &exitCode,
	}
}

func (e TerminateEvent) ExitCode() int {
	if e.exitCode == nil {
		return 0
	}
	return *e.exitCode
}

func (e TerminateEvent) SetExitCode(code int) {
	if e.exitCode != nil {
		*e.exitCode = code
	}
}
