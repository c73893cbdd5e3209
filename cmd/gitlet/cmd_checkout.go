package main

import (
	"errors"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch> | -- <file> | <commit> -- <file>",
		Short: "Switch branches or restore a file from a commit",
		Long: `Switch branches or restore a file from a commit.

  gitlet checkout <branch>            switch to branch, replacing the working tree
  gitlet checkout -- <file>           restore file from the current commit
  gitlet checkout <commit> -- <file>  restore file from the given commit

The file forms leave the staging area untouched.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}

			dash := cmd.ArgsLenAtDash()
			switch {
			case dash == -1 && len(args) == 1:
				err := r.CheckoutBranch(args[0])
				return withMessage(err, repo.ErrCurrentBranchOp, "No need to checkout the current branch.")
			case dash == 0 && len(args) == 1:
				path, err := s.filePath(args[0])
				if err != nil {
					return err
				}
				err = r.CheckoutFile(path)
				return withMessage(err, repo.ErrFileNotFound, "File does not exist in that commit.")
			case dash == 1 && len(args) == 2:
				path, err := s.filePath(args[1])
				if err != nil {
					return err
				}
				err = r.CheckoutFileAt(args[0], path)
				return withMessage(err, repo.ErrFileNotFound, "File does not exist in that commit.")
			default:
				return errors.New("incorrect operands: expected <branch>, -- <file> or <commit> -- <file>")
			}
		},
	}
}
