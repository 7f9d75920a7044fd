// Command pphc computes Indonesian taxes from the command line and prints
// the itemized breakdown.
//
// Usage: pphc <pph21|pph22|pph23|pph4-2|ppn|ppnbm|tables|token|version|help> [flags]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
