package main

import (
	"os"

	"github.com/denlabs/den/cmd"
	"github.com/denlabs/den/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
