// Command semkit checks and runs semkit application descriptions.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/semkit/cmd/semkit/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
