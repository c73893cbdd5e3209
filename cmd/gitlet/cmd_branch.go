package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newBranchCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "Create a branch at the current commit, or list branches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return r.CreateBranchAtHead(args[0])
			}

			branches, err := r.ListBranches()
			if err != nil {
				return err
			}
			current, _ := r.CurrentBranch()

			out := cmd.OutOrStdout()
			for _, b := range branches {
				if b == current {
					fmt.Fprintf(out, "%s %s\n", color.YellowString("*"), b)
				} else {
					fmt.Fprintf(out, "  %s\n", b)
				}
			}
			return nil
		},
	}
}

func newRmBranchCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-branch <name>",
		Short: "Delete a branch pointer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}
			err = r.DeleteBranch(args[0])
			err = withMessage(err, repo.ErrUnknownBranch, "A branch with that name does not exist.")
			return withMessage(err, repo.ErrCurrentBranchOp, "Cannot remove the current branch.")
		},
	}
}
