package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch>",
		Short: "Merge a branch into the current branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.openRepo()
			if err != nil {
				return err
			}

			report, err := r.Merge(args[0])
			if err != nil {
				return withMessage(err, repo.ErrUnknownBranch, "A branch with that name does not exist.")
			}

			out := cmd.OutOrStdout()
			switch report.Outcome {
			case repo.MergeAncestor:
				fmt.Fprintln(out, "Given branch is an ancestor of the current branch.")
			case repo.MergeFastForward:
				fmt.Fprintln(out, "Current branch fast-forwarded.")
			default:
				for _, name := range report.Conflicts() {
					fmt.Fprintf(out, "%s %s\n", color.RedString("conflict:"), name)
				}
				if report.HasConflicts {
					fmt.Fprintln(out, "Encountered a merge conflict.")
				}
			}
			return nil
		},
	}
}
