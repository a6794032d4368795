package main

import (
	"fmt"
	"os"

	"github.com/Nivl/git-odb/internal/env"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		exitError(err)
	}

	root := newRootCmd(cwd, env.NewFromOs())
	if err = root.Execute(); err != nil {
		exitError(err)
	}
}

func exitError(err error) {
	fmt.Fprintln(os.Stderr, "fatal:", err)
	os.Exit(exitCode(err))
}
