package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"retag/internal/pipeline"
)

func main() {
	os.Exit(exitCode(newRootCommand().Execute(), os.Stderr))
}

// exitCode maps a command error onto the process status: 0 for success,
// 2 for an operator abort, 1 for everything else. Cancellation is silent;
// other errors are reported on w.
func exitCode(err error, w io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pipeline.ErrAborted):
		fmt.Fprintln(w, "Import aborted.")
		return 2
	case errors.Is(err, context.Canceled):
		return 1
	default:
		fmt.Fprintln(w, err)
		return 1
	}
}
