// Command linear is a command-line client for the Linear.app GraphQL API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/royreznik/linear-cli/internal/linear"
	"github.com/royreznik/linear-cli/internal/ui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// An authentication failure means the stored credential is
		// unusable; clear it so the next invocation prompts a fresh
		// login instead of retrying a dead token.
		var authErr *linear.AuthError
		if errors.As(err, &authErr) && vlt != nil {
			_ = vlt.Clear()
		}
		fmt.Fprintln(os.Stderr, ui.FailStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
