package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"register":     {"verify resend", "login"},
	"login":        {"whoami", "token"},
	"logout":       {"login"},
	"whoami":       {"token", "logout"},
	"catalog list": {"catalog show <id>", "catalog landing"},
}

// PrintHints prints "See also" hints for a command. No-op in quiet mode or if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "orinu " + h
	}
	fmt.Fprintf(p.out, "\nVoir aussi: %s\n", strings.Join(cmds, ", "))
}
