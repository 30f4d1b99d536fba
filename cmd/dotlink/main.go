package main

import (
	"os"

	"github.com/arthur-debert/dotlink/internal/cli"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/ui/output"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if r, rerr := output.New(os.Stderr, "text", "auto"); rerr == nil {
			_ = r.RenderError(err)
		}
		os.Exit(errors.ExitCode(err))
	}
}
