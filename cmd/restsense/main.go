// Command restsense issues REST calls through the restsense client and
// hosts a demo server for the named result types.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
