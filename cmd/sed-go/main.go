// Command sed-go is a stream editor. Run 'sed-go --help' for the flags.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			// already reported
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitLoad)
	}
}
