package console

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// DetectInteractive reports whether prompts can be shown. CLIKIT_NON_INTERACTIVE
// or CI set to a true value turns prompting off.
func DetectInteractive() bool {
	for _, key := range []string{"CLIKIT_NON_INTERACTIVE", "CI"} {
		if value, ok := os.LookupEnv(key); ok {
			if off, err := strconv.ParseBool(value); err == nil && off {
				return false
			}
		}
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
