package main

import (
	"os"

	"course-converter/internal/logger"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the CLI and returns the process exit status. The logger is
// flushed on every path since os.Exit skips deferred calls.
func execute(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	_ = logger.Sync()
	if err != nil {
		return 1
	}
	return 0
}
