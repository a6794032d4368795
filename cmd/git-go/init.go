package main

import (
	"fmt"
	"io"

	git "github.com/Nivl/git-odb"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty Git repository or reinitialize an existing one",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return initCmd(cmd.OutOrStdout(), cfg)
	}

	return cmd
}

func initCmd(out io.Writer, cfg *globalFlags) error {
	c, err := loadConfig(cfg, true)
	if err != nil {
		return err
	}
	r, err := git.InitRepositoryWithParams(c, git.Options{
		Logger: cfg.logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized empty Git repository in %s\n", r.Config.GitDirPath)
	return r.Close()
}
