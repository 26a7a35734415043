package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"oss.nandlabs.io/golly/cli"
)

// positionalArgs recovers the non-flag tokens that follow a command's
// own name(s) in os.Args.
//
// golly/cli.Context carries only named flags (ctx.Flags), not leftover
// positional arguments — the trailing id/json tokens spec.md §6's
// enqueue/dlq-retry/history commands take are dropped by cli.CLI.Execute
// before an Action ever sees them. This mirrors the split golly's own
// args.go (FetchArgs/isFlag) performs internally, reimplemented here
// because that split isn't exposed through Context.
//
// Every flag in this command tree must be written as --flag=value (not
// a separate "--flag value" token pair); positionalArgs has no way to
// tell a flag's space-separated value apart from a genuine positional
// argument, so space-separated flags are not supported.
func positionalArgs(ctx *cli.Context) []string {
	var out []string
	matched := 0
	for _, tok := range os.Args[1:] {
		if strings.HasPrefix(tok, "-") {
			continue
		}
		if matched < len(ctx.CommandStack) && tok == ctx.CommandStack[matched] {
			matched++
			continue
		}
		out = append(out, tok)
	}
	return out
}

// parseLimit reads --limit=N, defaulting to 0 (meaning "no limit") when
// the flag is absent or empty.
func parseLimit(ctx *cli.Context) (int, error) {
	limitStr, ok := ctx.GetFlag("limit")
	if !ok || limitStr == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid --limit=%q: must be a non-negative integer", limitStr)
	}
	return n, nil
}
