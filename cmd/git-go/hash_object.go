package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Nivl/git-odb/ginternals/object"
	"github.com/Nivl/git-odb/internal/errutil"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

type hashObjectParams struct {
	filePath string
	write    bool
}

func newHashObjectCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-object FILE",
		Short: "Compute object ID and optionally creates a blob from a file",
		Args:  cobra.ExactArgs(1),
	}

	write := cmd.Flags().BoolP("write", "w", false, "Actually write the object into the object database.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return hashObjectCmd(cmd.OutOrStdout(), cfg, hashObjectParams{
			filePath: args[0],
			write:    *write,
		})
	}

	return cmd
}

func hashObjectCmd(out io.Writer, cfg *globalFlags, p hashObjectParams) (err error) {
	if !filepath.IsAbs(p.filePath) {
		p.filePath = filepath.Join(cfg.C.String(), p.filePath)
	}

	// No need for a repository if we don't write anything
	if !p.write {
		content, err := os.ReadFile(p.filePath)
		if err != nil {
			return xerrors.Errorf("could not read %s: %w", p.filePath, err)
		}
		fmt.Fprintln(out, object.NewBlobFromContent(content).ID().String())
		return nil
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	blob, err := r.HashFile(p.filePath, true)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, blob.ID().String())
	return nil
}
