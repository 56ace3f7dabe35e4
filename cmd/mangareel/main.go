package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			// Interrupted mid-run; nothing was committed.
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "mangareel:", err)
		os.Exit(1)
	}
}
