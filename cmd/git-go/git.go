package main

import (
	"os"

	"github.com/Nivl/git-odb/internal/env"
	"github.com/Nivl/git-odb/internal/pathutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type globalFlags struct {
	C         pflag.Value // simpler version of git's -C: https://git-scm.com/docs/git#Documentation/git.txt--Cltpathgt
	LogLevel  string
	LogFormat string

	env    *env.Env
	logger *zap.Logger
}

func newRootCmd(cwd string, e *env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "git-go",
		Short:         "git object database implementation in pure Go",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg := &globalFlags{
		env:    e,
		logger: zap.NewNop(),
	}
	cfg.C = pathutil.NewDirPathFlagWithDefault(cwd)
	cmd.PersistentFlags().VarP(cfg.C, "C", "C", "Run as if git was started in the provided path instead of the current working directory.")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "error", "The log level [debug,info,warn,error].")
	cmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", "text", "The log format [text,json].")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		cfg.logger = logger
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		// Sync fails on some terminals, there is nothing we can do about it
		_ = cfg.logger.Sync()
	}

	// porcelain
	cmd.AddCommand(newInitCmd(cfg))

	// plumbing
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newHashObjectCmd(cfg))
	cmd.AddCommand(newLsTreeCmd(cfg))
	cmd.AddCommand(newWriteTreeCmd(cfg))
	cmd.AddCommand(newCommitTreeCmd(cfg))

	return cmd
}
