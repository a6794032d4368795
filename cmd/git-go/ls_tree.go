package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Nivl/git-odb/internal/errutil"
	"github.com/spf13/cobra"
)

type lsTreeParams struct {
	treeName string
	nameOnly bool
}

func newLsTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-tree --name-only TREE",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
	}

	nameOnly := cmd.Flags().Bool("name-only", false, "List only filenames, one per line.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsTreeCmd(cmd.OutOrStdout(), cfg, lsTreeParams{
			treeName: args[0],
			nameOnly: *nameOnly,
		})
	}
	return cmd
}

func lsTreeCmd(out io.Writer, cfg *globalFlags, p lsTreeParams) (err error) {
	if !p.nameOnly {
		return errors.New("only --name-only is supported")
	}

	oid, err := parseOid(p.treeName)
	if err != nil {
		return err
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	names, err := r.ListTreeNames(oid)
	if err != nil {
		return err
	}
	fmt.Fprint(out, names)
	return nil
}
