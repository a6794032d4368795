package main

import (
	"fmt"
	"io"

	"github.com/Nivl/git-odb/ginternals"
	"github.com/Nivl/git-odb/ginternals/githash"
	"github.com/Nivl/git-odb/internal/errutil"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

type commitTreeParams struct {
	treeName   string
	parentName string
	message    string
}

func newCommitTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit-tree TREE [-p PARENT] -m MESSAGE",
		Short: "Create a new commit object",
		Args:  cobra.ExactArgs(1),
	}

	parent := cmd.Flags().StringP("parent", "p", "", "Id of a parent commit object.")
	message := cmd.Flags().StringP("message", "m", "", "A paragraph in the commit log message.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("message") {
			return xerrors.Errorf("a message is required: %w", ginternals.ErrInvalidArgument)
		}
		return commitTreeCmd(cmd.OutOrStdout(), cfg, commitTreeParams{
			treeName:   args[0],
			parentName: *parent,
			message:    *message,
		})
	}
	return cmd
}

func commitTreeCmd(out io.Writer, cfg *globalFlags, p commitTreeParams) (err error) {
	treeID, err := parseOid(p.treeName)
	if err != nil {
		return err
	}
	parentID := githash.NullOid
	if p.parentName != "" {
		parentID, err = parseOid(p.parentName)
		if err != nil {
			return err
		}
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	c, err := r.CommitTree(treeID, p.message, parentID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, c.ID().String())
	return nil
}
