package cmd

import (
	"fmt"

	"github.com/go-drift/semkit/pkg/describe"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the semkit version and the newest description format it reads.",
		Usage: "semkit version",
		Run:   runVersion,
	})
}

func runVersion([]string) error {
	fmt.Fprintf(stdout, "semkit version %s (built %s, description format %s)\n",
		Version, BuildTime, describe.FormatVersion)
	return nil
}
